// Package classify decides which occurrence records count as informative
// animal data. It is a pure package: both predicates depend only on the
// fields of a record.
package classify

import (
	"strings"

	"github.com/gnames/faunamap/pkg/occurrence"
)

// Tag is the outcome of classification of a record.
type Tag int

const (
	// Indeterminate means no indicator fired. Such records are rejected.
	Indeterminate Tag = iota
	// Animal is the only accepted tag.
	Animal
	// Plant means only plant indicators fired.
	Plant
	// Fungus means only fungus indicators fired.
	Fungus
	// Excluded means plant or fungus indicators fired together with animal
	// ones. Plant and fungus evidence wins, the record is rejected.
	Excluded
)

var tagNames = map[Tag]string{
	Indeterminate: "indeterminate",
	Animal:        "animal",
	Plant:         "plant",
	Fungus:        "fungus",
	Excluded:      "excluded",
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "unknown"
}

// IsAccepted returns true only for Animal.
func (t Tag) IsAccepted() bool {
	return t == Animal
}

// Classify tags a record by its kingdom, phylum, class and basisOfRecord.
// Comparison is case-insensitive. Indicators are evaluated in one fixed
// order: plant, fungus, animal.
func Classify(r occurrence.Record) Tag {
	fired := firedCategories(r)

	switch {
	case fired[plant]:
		if fired[animal] {
			return Excluded
		}
		return Plant
	case fired[fungus]:
		if fired[animal] {
			return Excluded
		}
		return Fungus
	case fired[animal]:
		return Animal
	default:
		return Indeterminate
	}
}

func firedCategories(r occurrence.Record) map[category]bool {
	res := make(map[category]bool, 3)
	fields := map[rank]string{
		kingdomRank: r.Kingdom,
		phylumRank:  r.Phylum,
		classRank:   r.Class,
	}
	for rnk, val := range fields {
		val = normalize(val)
		if val == "" {
			continue
		}
		if cat, ok := indicators[rnk][val]; ok {
			res[cat] = true
		}
	}

	basis := normalize(r.BasisOfRecord)
	for _, marker := range plantBasisMarkers {
		if strings.Contains(basis, marker) {
			res[plant] = true
			break
		}
	}
	return res
}

// IsInformative reports whether the scientific name of a record looks like
// a species name. The name must be present, must not be a bare name of a
// higher taxon, and must either contain a space or end with one of the
// common Latin species suffixes.
//
// The suffix check is a heuristic, some valid names are rejected and some
// invalid ones pass.
func IsInformative(r occurrence.Record) bool {
	name := normalize(r.ScientificName)
	if name == "" {
		return false
	}
	if isRankName(name, r) {
		return false
	}
	if strings.Contains(name, " ") {
		return true
	}
	for _, suffix := range speciesSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func isRankName(name string, r occurrence.Record) bool {
	for _, tbl := range indicators {
		if _, ok := tbl[name]; ok {
			return true
		}
	}
	for _, v := range extraRankNames {
		if name == v {
			return true
		}
	}
	higher := []string{r.Kingdom, r.Phylum, r.Class, r.Order, r.Family}
	for _, v := range higher {
		if name == normalize(v) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
