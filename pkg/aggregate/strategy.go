package aggregate

import (
	"context"

	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
)

// Aggregator collects records of regions.
type Aggregator interface {
	// Remote tries region queries in order and returns records of the first
	// one that gives any. The known-species search is the last resort.
	Remote(ctx context.Context, e region.Entry) []occurrence.Record

	// MergedRecords returns remote records merged with the local database,
	// enriched with translations and passed through the significance
	// filter with the given minimal number of occurrences.
	MergedRecords(
		ctx context.Context,
		e region.Entry,
		minOccurrences int,
	) []occurrence.Record

	// Significant applies the significance filter to records.
	Significant(
		records []occurrence.Record,
		minOccurrences int,
	) []occurrence.Record
}

// ObservationBasis lists provenance tags of the strict query.
var ObservationBasis = []string{"HUMAN_OBSERVATION", "OBSERVATION"}

// VertebrateClasses are requested by the class-list query.
var VertebrateClasses = []string{
	"Mammalia", "Aves", "Reptilia", "Amphibia", "Insecta",
}

// KnownSpecies are well-known animals searched one by one when region
// queries give nothing.
var KnownSpecies = []string{
	"Ursus arctos",
	"Canis lupus",
	"Vulpes vulpes",
	"Lepus timidus",
	"Sciurus vulgaris",
	"Cervus elaphus",
	"Alces alces",
	"Capreolus capreolus",
	"Lynx lynx",
	"Martes zibellina",
	"Mustela erminea",
	"Meles meles",
	"Castor fiber",
	"Sus scrofa",
	"Erinaceus europaeus",
	"Lacerta agilis",
	"Natrix natrix",
	"Bombina bombina",
	"Rana temporaria",
}

const (
	// KnownSpeciesLimit is the number of known species searched.
	KnownSpeciesLimit = 10
	// KnownSpeciesRecords is the number of records per known species.
	KnownSpeciesRecords = 10
	// DirectRadiusKm is the radius of the direct coordinate query.
	DirectRadiusKm = 50
	// DirectRecords caps the direct coordinate query.
	DirectRecords = 200
)

// RegionQueries returns region queries from the strictest: observations
// with coordinates, animals with coordinates and a list of classes with
// coordinates.
func RegionQueries(country string, e region.Entry) []gbif.Query {
	return []gbif.Query{
		{
			Country:       country,
			StateProvince: e.Key,
			BasisOfRecord: ObservationBasis,
			HasCoordinate: true,
		},
		{
			Country:       country,
			StateProvince: e.Key,
			Kingdom:       "Animalia",
			HasCoordinate: true,
		},
		{
			Country:       country,
			StateProvince: e.Key,
			Classes:       VertebrateClasses,
			HasCoordinate: true,
		},
	}
}

// KnownSpeciesQueries returns one small query per known species.
func KnownSpeciesQueries(country string, e region.Entry) []gbif.Query {
	names := KnownSpecies[:min(KnownSpeciesLimit, len(KnownSpecies))]
	res := make([]gbif.Query, 0, len(names))
	for _, v := range names {
		res = append(res, gbif.Query{
			Country:        country,
			StateProvince:  e.Key,
			ScientificName: v,
			HasCoordinate:  true,
			Limit:          KnownSpeciesRecords,
			MaxRecords:     KnownSpeciesRecords,
		})
	}
	return res
}

// CoordinateQuery returns animals around a point.
func CoordinateQuery(country string, lat, lon float64) gbif.Query {
	return gbif.Query{
		Country:       country,
		Kingdom:       "Animalia",
		HasCoordinate: true,
		Latitude:      occurrence.Float(lat),
		Longitude:     occurrence.Float(lon),
		RadiusKm:      DirectRadiusKm,
		Limit:         DirectRecords,
		MaxRecords:    DirectRecords,
	}
}
