package gbif_test

import (
	"testing"

	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryValues(t *testing.T) {
	q := gbif.Query{
		Country:       "RU",
		StateProvince: "Amur",
		Classes:       []string{"Mammalia", "Aves"},
		BasisOfRecord: []string{"HUMAN_OBSERVATION", "OBSERVATION"},
		HasCoordinate: true,
	}
	v := q.Values()
	assert.Equal(t, "RU", v.Get("country"))
	assert.Equal(t, []string{"Mammalia", "Aves"}, v["class"])
	assert.Equal(t, "true", v.Get("hasCoordinate"))
	assert.Empty(t, v.Get("kingdom"))
	assert.Empty(t, v.Get("offset"))

	p := q.PageValues(600, 300)
	assert.Equal(t, "600", p.Get("offset"))
	assert.Equal(t, "300", p.Get("limit"))

	params := gbif.CacheParams(p)
	assert.Equal(t, "Mammalia,Aves", params["class"])
	assert.Equal(t, "600", params["offset"])
}

func TestQueryGeoDistance(t *testing.T) {
	q := gbif.Query{
		Latitude:  occurrence.Float(53.5),
		Longitude: occurrence.Float(127.25),
		RadiusKm:  50,
	}
	assert.Equal(t, "53.5000,127.2500,50km", q.Values().Get("geoDistance"))

	q.RadiusKm = 0
	assert.Empty(t, q.Values().Get("geoDistance"))
}

// TestCacheParamsDifferByOffset verifies that pages of one query get
// separate cache entries.
func TestCacheParamsDifferByOffset(t *testing.T) {
	q := gbif.Query{Country: "RU"}
	k1 := cache.Key(gbif.CacheParams(q.PageValues(0, 300)))
	k2 := cache.Key(gbif.CacheParams(q.PageValues(300, 300)))
	assert.NotEqual(t, k1, k2)
}

func TestRecordFromMap(t *testing.T) {
	m := map[string]any{
		"key":              float64(4011),
		"scientificName":   "Ursus arctos Linnaeus, 1758",
		"kingdom":          "Animalia",
		"class":            "Mammalia",
		"decimalLatitude":  float64(50.1),
		"decimalLongitude": "127.5",
		"speciesKey":       float64(2433433),
		"eventDate":        "2021-06-01T10:00:00",
		"locality":         12,
	}
	r := gbif.RecordFromMap(m)
	assert.Equal(t, int64(4011), r.Key)
	assert.Equal(t, "Ursus arctos Linnaeus, 1758", r.ScientificName)
	require.NotNil(t, r.Latitude)
	assert.Equal(t, 50.1, *r.Latitude)
	require.NotNil(t, r.Longitude)
	assert.Equal(t, 127.5, *r.Longitude)
	assert.Equal(t, 2433433, r.SpeciesKey)
	assert.Equal(t, "", r.Locality)
	assert.Equal(t, "", r.Phylum)
	assert.Equal(t, occurrence.Remote, r.Source)

	r = gbif.RecordFromMap(map[string]any{"decimalLatitude": "n/a"})
	assert.Nil(t, r.Latitude)
}

func TestNameCache(t *testing.T) {
	c := gbif.NewNameCache()
	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, "Бурый медведь")
	c.Set(2, "")
	res, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "Бурый медведь", res)
	res, ok = c.Get(2)
	assert.True(t, ok)
	assert.Empty(t, res)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Taxon("family|Ursidae")
	assert.False(t, ok)
	c.SetTaxon("family|Ursidae", "Медвежьи")
	res, ok = c.Taxon("family|Ursidae")
	assert.True(t, ok)
	assert.Equal(t, "Медвежьи", res)
	assert.Equal(t, 2, c.Len())
}
