// Package lifecycle defines the top-level operations of faunamap: finding
// animals of regions and exporting region features.
package lifecycle

import (
	"context"

	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/store"
)

// Finder runs the occurrence pipeline: fetching, merging, enrichment,
// statistics and storage.
type Finder interface {
	// Region returns the record set of a region by its native name.
	// A stored set is returned unless force is true. A region without
	// records is not saved and is not an error.
	Region(ctx context.Context, native string, force bool) (store.RegionRecordSet, error)

	// Coordinates locates the region of a point and returns its record
	// set. If the region gives no records, animals around the point are
	// searched directly.
	Coordinates(ctx context.Context, lat, lon float64, force bool) (store.RegionRecordSet, error)

	// Survey probes how much data the service has for regions.
	Survey(ctx context.Context, candidates []region.Entry) []SurveyResult

	// Summaries describes stored regions.
	Summaries() []store.Summary
}

// SurveyResult is the availability of data for one region.
type SurveyResult struct {
	Region region.Entry
	// Count is the number of records of the region upstream.
	Count int
	// Kingdoms counts kingdoms of a small sample of records.
	Kingdoms map[string]int
	// Failed is true if the count probe did not succeed.
	Failed bool
}
