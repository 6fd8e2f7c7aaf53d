// Package aggregate merges remote and curated records of a region and
// applies the significance filter.
package aggregate

import (
	"strings"

	"github.com/gnames/faunamap/pkg/classify"
	"github.com/gnames/faunamap/pkg/occurrence"
)

// Merge returns remote records followed by local records whose names do
// not appear among the records taken before them. Remote records are
// never dropped. A local record is a duplicate if its scientific name
// matches a scientific or canonical name already taken.
func Merge(remote, local []occurrence.Record) []occurrence.Record {
	res := make([]occurrence.Record, 0, len(remote)+len(local))
	seen := make(map[string]struct{})
	mark := func(r occurrence.Record) {
		for _, v := range []string{r.ScientificName, r.CanonicalName} {
			if k := nameKey(v); k != "" {
				seen[k] = struct{}{}
			}
		}
	}

	for _, r := range remote {
		res = append(res, r)
		mark(r)
	}

	for _, r := range local {
		k := nameKey(r.ScientificName)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		if k = nameKey(r.CanonicalName); k != "" {
			if _, ok := seen[k]; ok {
				continue
			}
		}
		res = append(res, r)
		mark(r)
	}
	return res
}

// Counts returns the number of records per scientific name. Names are
// compared the way Merge compares them, so keys are lowercased with
// collapsed spaces. Records without a name are not counted.
func Counts(records []occurrence.Record) map[string]int {
	res := make(map[string]int)
	for _, r := range records {
		if k := nameKey(r.ScientificName); k != "" {
			res[k]++
		}
	}
	return res
}

// Filter is the significance filter.
type Filter struct {
	// MinOccurrences is the minimal number of records of a species.
	MinOccurrences int
	// ExcludedClasses are compared case-insensitively with both the Latin
	// and the translated class of a record.
	ExcludedClasses []string
}

// Apply keeps records that have a name, belong to a species with at least
// MinOccurrences records, have neither class in the excluded list and
// pass the informativeness check. Order is preserved.
func (f Filter) Apply(records []occurrence.Record) []occurrence.Record {
	counts := Counts(records)
	excluded := make(map[string]struct{}, len(f.ExcludedClasses))
	for _, v := range f.ExcludedClasses {
		excluded[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	var res []occurrence.Record
	for _, r := range records {
		k := nameKey(r.ScientificName)
		if k == "" {
			continue
		}
		if counts[k] < f.MinOccurrences {
			continue
		}
		if isExcluded(excluded, r.Class, r.Translation.Class) {
			continue
		}
		if !classify.IsInformative(r) {
			continue
		}
		res = append(res, r)
	}
	return res
}

func isExcluded(excluded map[string]struct{}, classes ...string) bool {
	for _, v := range classes {
		cls := strings.ToLower(strings.TrimSpace(v))
		if cls == "" {
			continue
		}
		if _, ok := excluded[cls]; ok {
			return true
		}
	}
	return false
}

func nameKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
