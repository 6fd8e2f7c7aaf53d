// Package gbif describes queries to the GBIF occurrence and species
// services and the contract of a resilient fetcher. Network access lives
// in internal/iogbif.
package gbif

import (
	"context"
	"iter"

	"github.com/gnames/faunamap/pkg/occurrence"
)

// Fetcher retrieves occurrence records and species information.
// Methods never panic. Network failures give empty or partial results.
type Fetcher interface {
	// FetchAll pages through occurrence search results of a query and
	// yields records classified as animals. The sequence is lazy and
	// restarts from the first page on every iteration. Transient failures
	// are retried, persistent ones end the sequence early.
	FetchAll(ctx context.Context, q Query) iter.Seq[occurrence.Record]

	// Summary describes the last completed or interrupted FetchAll run.
	Summary() Summary

	// Count returns the approximate number of records of a query.
	Count(ctx context.Context, q Query) (int, error)

	// Sample returns up to n unclassified records of a query.
	Sample(ctx context.Context, q Query, n int) ([]occurrence.Record, error)

	// Vernacular returns a vernacular name of a species in the configured
	// language. Results, including misses, are memoized in names. An
	// empty string means there is no such name.
	Vernacular(ctx context.Context, names *NameCache, speciesKey int) string

	// SearchSpecies finds the key of a taxon by its name.
	SearchSpecies(ctx context.Context, name string) (int, bool)
}

// Summary contains counters of one FetchAll run.
type Summary struct {
	// Batches is the number of occurrence pages received, from the
	// network or cache.
	Batches int
	// CachedBatches is the part of Batches served by the cache.
	CachedBatches int
	// RawRecords is the number of records received before classification.
	RawRecords int
	// Records is the number of accepted records.
	Records int
	// Retries is the total number of retried requests.
	Retries int
	// Total is the result of the count probe.
	Total int
	// Partial is true when fetching stopped because of a failure.
	Partial bool
	// Reason explains why a partial run stopped.
	Reason string
}
