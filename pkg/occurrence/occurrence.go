// Package occurrence defines the occurrence record shared by fetching,
// aggregation, statistics and storage.
//
// Optional attributes are empty strings, zero keys or nil coordinates.
// They are rendered as Unspecified only by Display at output boundaries.
package occurrence

import (
	"strconv"
	"strings"
)

// Unspecified is the sentinel shown to users for absent values.
const Unspecified = "unspecified"

// Source tells where a record came from.
type Source string

const (
	// Remote records come from the occurrence-search service.
	Remote Source = "remote"
	// LocalDB records are synthesized from the curated local database.
	LocalDB Source = "local_db"
)

// Record is one observation of an organism.
// JSON field names follow the occurrence-search service so that stored
// region files remain readable by external consumers.
type Record struct {
	// Key is the identifier of the occurrence upstream.
	Key int64 `json:"key,omitempty"`

	// ScientificName is the deduplication key of a record within a region.
	ScientificName string `json:"scientificName,omitempty"`

	// CanonicalName is ScientificName without authorship.
	CanonicalName string `json:"canonicalName,omitempty"`

	Kingdom string `json:"kingdom,omitempty"`
	Phylum  string `json:"phylum,omitempty"`
	Class   string `json:"class,omitempty"`
	Order   string `json:"order,omitempty"`
	Family  string `json:"family,omitempty"`
	Genus   string `json:"genus,omitempty"`
	Species string `json:"species,omitempty"`

	Latitude  *float64 `json:"decimalLatitude,omitempty"`
	Longitude *float64 `json:"decimalLongitude,omitempty"`

	Locality      string `json:"locality,omitempty"`
	StateProvince string `json:"stateProvince,omitempty"`
	Country       string `json:"country,omitempty"`

	// EventDate is an ISO-like date string, often a date range.
	EventDate string `json:"eventDate,omitempty"`

	// BasisOfRecord is the provenance tag, for example HUMAN_OBSERVATION.
	BasisOfRecord string `json:"basisOfRecord,omitempty"`

	// SpeciesKey is used to look up vernacular names.
	SpeciesKey int `json:"speciesKey,omitempty"`

	Source Source `json:"source"`

	// Region is the native region name for records of the local database.
	Region string `json:"region,omitempty"`

	// CommonName is a localized vernacular name.
	CommonName string `json:"commonName,omitempty"`

	// NameSource tells where CommonName came from.
	NameSource string `json:"nameSource,omitempty"`

	// Translation keeps localized names of the ranks.
	Translation Translation `json:"translation,omitzero"`
}

// Translation contains localized names of the taxonomic ranks of a record.
type Translation struct {
	Phylum  string `json:"phylum,omitempty"`
	Class   string `json:"class,omitempty"`
	Order   string `json:"order,omitempty"`
	Family  string `json:"family,omitempty"`
	Genus   string `json:"genus,omitempty"`
	Species string `json:"species,omitempty"`
}

// DisplayClass returns the localized class when known, the Latin class
// otherwise.
func (r Record) DisplayClass() string {
	if r.Translation.Class != "" {
		return r.Translation.Class
	}
	return r.Class
}

// HasCoordinates is true when both latitude and longitude are present.
func (r Record) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Year returns the leading 4-digit year of the event date.
// The second value is false if the date is absent or does not start with
// a year.
func (r Record) Year() (int, bool) {
	d := strings.TrimSpace(r.EventDate)
	if len(d) < 4 {
		return 0, false
	}
	for _, c := range d[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(d[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Display returns s or Unspecified if s is empty.
func Display(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unspecified
	}
	return s
}

// DisplayCoord formats an optional coordinate.
func DisplayCoord(f *float64) string {
	if f == nil {
		return Unspecified
	}
	return strconv.FormatFloat(*f, 'f', 4, 64)
}

// Float returns a pointer to f. It is a helper for optional coordinates.
func Float(f float64) *float64 {
	return &f
}
