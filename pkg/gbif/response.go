package gbif

import (
	"strconv"
	"strings"

	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/gnlib"
)

// SearchResponse is a page of occurrence search results. Results are kept
// as generic maps so that one malformed field does not spoil the page.
type SearchResponse struct {
	Offset       int              `json:"offset"`
	Limit        int              `json:"limit"`
	EndOfRecords bool             `json:"endOfRecords"`
	Count        int              `json:"count"`
	Results      []map[string]any `json:"results"`
}

// Batch is the classified outcome of one page. It is the payload of
// cached pages.
type Batch struct {
	Records      []occurrence.Record `json:"records"`
	RawCount     int                 `json:"raw_count"`
	EndOfRecords bool                `json:"end_of_records"`
}

// VernacularResponse lists vernacular names of a species.
type VernacularResponse struct {
	Results []Vernacular `json:"results"`
}

// Vernacular is a language-tagged common name.
type Vernacular struct {
	VernacularName string `json:"vernacularName"`
	Language       string `json:"language"`
}

// SpeciesResponse is a page of species search results.
type SpeciesResponse struct {
	Results []Species `json:"results"`
}

// Species is a taxon of the species search.
type Species struct {
	Key            int    `json:"key"`
	ScientificName string `json:"scientificName"`
	CanonicalName  string `json:"canonicalName"`
	Rank           string `json:"rank"`
}

// RecordFromMap converts a raw search result to a record. Fields of
// unexpected types become absent values.
func RecordFromMap(m map[string]any) occurrence.Record {
	return occurrence.Record{
		Key:            int64(intVal(m["key"])),
		ScientificName: str(m["scientificName"]),
		Kingdom:        str(m["kingdom"]),
		Phylum:         str(m["phylum"]),
		Class:          str(m["class"]),
		Order:          str(m["order"]),
		Family:         str(m["family"]),
		Genus:          str(m["genus"]),
		Species:        str(m["species"]),
		Latitude:       floatVal(m["decimalLatitude"]),
		Longitude:      floatVal(m["decimalLongitude"]),
		Locality:       str(m["locality"]),
		StateProvince:  str(m["stateProvince"]),
		Country:        str(m["country"]),
		EventDate:      str(m["eventDate"]),
		BasisOfRecord:  str(m["basisOfRecord"]),
		SpeciesKey:     intVal(m["speciesKey"]),
		Source:         occurrence.Remote,
	}
}

func str(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

func floatVal(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func intVal(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
