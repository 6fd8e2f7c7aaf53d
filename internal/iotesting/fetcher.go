package iotesting

import (
	"context"
	"iter"
	"strings"
	"sync"

	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
)

// FakeFetcher is a scripted gbif.Fetcher. It answers from its fields and
// records every call.
type FakeFetcher struct {
	// Records returns records of a query. Nil means no records.
	Records func(q gbif.Query) []occurrence.Record
	// Counts returns the count of a query. If nil, the length of Records
	// is used.
	Counts func(q gbif.Query) int
	// Vernaculars maps species keys to common names.
	Vernaculars map[int]string
	// Species maps taxon names to species keys.
	Species map[string]int

	mu              sync.Mutex
	queries         []gbif.Query
	vernacularCalls int
	searchCalls     int
	summary         gbif.Summary
}

var _ gbif.Fetcher = (*FakeFetcher)(nil)

func (ff *FakeFetcher) FetchAll(
	ctx context.Context,
	q gbif.Query,
) iter.Seq[occurrence.Record] {
	return func(yield func(occurrence.Record) bool) {
		ff.mu.Lock()
		ff.queries = append(ff.queries, q)
		ff.mu.Unlock()

		var sum gbif.Summary
		defer func() {
			ff.mu.Lock()
			ff.summary = sum
			ff.mu.Unlock()
		}()

		if ff.Records == nil {
			return
		}
		recs := ff.Records(q)
		sum.Batches = 1
		sum.RawRecords = len(recs)
		for _, r := range recs {
			if ctx.Err() != nil {
				sum.Partial = true
				return
			}
			sum.Records++
			if !yield(r) {
				return
			}
		}
	}
}

func (ff *FakeFetcher) Summary() gbif.Summary {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.summary
}

func (ff *FakeFetcher) Count(_ context.Context, q gbif.Query) (int, error) {
	ff.mu.Lock()
	ff.queries = append(ff.queries, q)
	ff.mu.Unlock()

	switch {
	case ff.Counts != nil:
		return ff.Counts(q), nil
	case ff.Records != nil:
		return len(ff.Records(q)), nil
	default:
		return 0, nil
	}
}

func (ff *FakeFetcher) Sample(
	_ context.Context,
	q gbif.Query,
	n int,
) ([]occurrence.Record, error) {
	if ff.Records == nil {
		return nil, nil
	}
	recs := ff.Records(q)
	return recs[:min(n, len(recs))], nil
}

func (ff *FakeFetcher) Vernacular(
	_ context.Context,
	names *gbif.NameCache,
	speciesKey int,
) string {
	if names != nil {
		if res, ok := names.Get(speciesKey); ok {
			return res
		}
	}
	ff.mu.Lock()
	ff.vernacularCalls++
	ff.mu.Unlock()

	res := ff.Vernaculars[speciesKey]
	if names != nil {
		names.Set(speciesKey, res)
	}
	return res
}

func (ff *FakeFetcher) SearchSpecies(_ context.Context, name string) (int, bool) {
	ff.mu.Lock()
	ff.searchCalls++
	ff.mu.Unlock()

	key, ok := ff.Species[strings.TrimSpace(name)]
	return key, ok
}

// Queries returns queries of FetchAll and Count calls.
func (ff *FakeFetcher) Queries() []gbif.Query {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return append([]gbif.Query(nil), ff.queries...)
}

// VernacularCalls returns the number of vernacular lookups that missed
// the name cache.
func (ff *FakeFetcher) VernacularCalls() int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.vernacularCalls
}

// SearchCalls returns the number of species searches.
func (ff *FakeFetcher) SearchCalls() int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.searchCalls
}
