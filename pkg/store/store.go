// Package store describes persisted region record sets and their index.
// The files are the only contract with mapping and training tools.
package store

import (
	"maps"
	"slices"
	"time"

	"github.com/gnames/faunamap/pkg/biostat"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
)

// Store keeps one record set per region key.
type Store interface {
	// Save overwrites the record set of its region and updates the index.
	Save(set RegionRecordSet) error

	// Load returns a stored record set. Missing or unreadable files give
	// false.
	Load(key string) (RegionRecordSet, bool)

	// Index returns the region index. An unreadable index is empty.
	Index() Index
}

// RegionRecordSet is everything known about one region.
type RegionRecordSet struct {
	Key           string              `json:"region_key"`
	Native        string              `json:"region_name"`
	LastUpdated   time.Time           `json:"last_updated"`
	TotalRecords  int                 `json:"total_records"`
	UniqueSpecies int                 `json:"unique_species"`
	Records       []occurrence.Record `json:"animals"`
	Stats         biostat.Stats       `json:"biodiversity_stats"`
}

// NewRecordSet builds a record set of a region.
func NewRecordSet(
	e region.Entry,
	records []occurrence.Record,
	stats biostat.Stats,
	now time.Time,
) RegionRecordSet {
	return RegionRecordSet{
		Key:           e.Key,
		Native:        e.Native,
		LastUpdated:   now,
		TotalRecords:  len(records),
		UniqueSpecies: stats.TotalSpecies,
		Records:       records,
		Stats:         stats,
	}
}

// Summary is a short description of a stored region.
type Summary struct {
	Key           string
	Native        string
	LastUpdated   time.Time
	TotalRecords  int
	UniqueSpecies int
	// SignificantRecords is the number of records that pass the
	// significance filter of summaries.
	SignificantRecords int
	ClassDistribution  map[string]int
}

// Summary describes the record set.
func (s RegionRecordSet) Summary() Summary {
	return Summary{
		Key:               s.Key,
		Native:            s.Native,
		LastUpdated:       s.LastUpdated,
		TotalRecords:      s.TotalRecords,
		UniqueSpecies:     s.UniqueSpecies,
		ClassDistribution: s.Stats.ClassDistribution,
	}
}

// IndexEntry points to the file of a region.
type IndexEntry struct {
	Native       string    `json:"region_name"`
	File         string    `json:"file"`
	LastUpdated  time.Time `json:"last_updated"`
	TotalRecords int       `json:"total_records"`
}

// Index maps region keys to their files.
type Index map[string]IndexEntry

// Keys returns sorted region keys.
func (idx Index) Keys() []string {
	return slices.Sorted(maps.Keys(idx))
}

// FileName returns the name of the file of a region.
func FileName(key string) string {
	return key + ".json"
}
