package gbif

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/faunamap/pkg/cache"
)

// Query describes an occurrence search.
type Query struct {
	Country        string
	StateProvince  string
	Kingdom        string
	Classes        []string
	ScientificName string
	BasisOfRecord  []string
	HasCoordinate  bool

	// Latitude, Longitude and RadiusKm restrict records to a circle.
	Latitude  *float64
	Longitude *float64
	RadiusKm  int

	// Limit overrides the configured page size.
	Limit int
	// MaxRecords overrides the configured cap of raw records.
	MaxRecords int
}

// Values returns the search parameters of a query without paging.
// Lists are sent as repeated parameters.
func (q Query) Values() url.Values {
	res := url.Values{}
	add := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			res.Add(k, v)
		}
	}

	add("country", q.Country)
	add("stateProvince", q.StateProvince)
	add("kingdom", q.Kingdom)
	add("scientificName", q.ScientificName)
	for _, v := range q.Classes {
		add("class", v)
	}
	for _, v := range q.BasisOfRecord {
		add("basisOfRecord", v)
	}
	if q.HasCoordinate {
		res.Set("hasCoordinate", "true")
	}
	if q.Latitude != nil && q.Longitude != nil && q.RadiusKm > 0 {
		res.Set("geoDistance", strings.Join([]string{
			strconv.FormatFloat(*q.Latitude, 'f', 4, 64),
			strconv.FormatFloat(*q.Longitude, 'f', 4, 64),
			strconv.Itoa(q.RadiusKm) + "km",
		}, ","))
	}
	return res
}

// PageValues returns search parameters with paging.
func (q Query) PageValues(offset, limit int) url.Values {
	res := q.Values()
	res.Set("offset", strconv.Itoa(offset))
	res.Set("limit", strconv.Itoa(limit))
	return res
}

// CacheParams converts parameters to a cache key set. Repeated values are
// joined by commas in their original order.
func CacheParams(v url.Values) cache.Params {
	res := make(cache.Params, len(v))
	for k, vals := range v {
		res[k] = strings.Join(vals, ",")
	}
	return res
}
