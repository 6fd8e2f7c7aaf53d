// Package region maps native region names to canonical ASCII keys.
//
// The mapping is driven by one authoritative table (see the regions.yaml
// asset). Names that are not in the table get a key derived by Fallback,
// so resolution is total and deterministic.
package region

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// UnknownKey is the key of a region that could not be determined.
	UnknownKey = "unknown"
	// UnknownNative is the native name of a region that could not be
	// determined.
	UnknownNative = "Неизвестный регион"
	// ZoneAll is a zone every region belongs to.
	ZoneAll = "all"
)

// minContainmentLen is the shortest input that takes part in partial
// matching.
const minContainmentLen = 4

// Entry describes one region.
type Entry struct {
	// Native is the display name of a region in its own language.
	Native string `yaml:"native"`
	// Key is the ASCII identifier used for storage and remote queries.
	Key string `yaml:"key"`
	// Aliases are alternative native or English spellings.
	Aliases []string `yaml:"aliases,omitempty"`
	// Zones are coarse natural areas used by the local species database.
	Zones []string `yaml:"zones,omitempty"`
	// Lat and Lon locate the center of a region.
	Lat float64 `yaml:"lat,omitempty"`
	Lon float64 `yaml:"lon,omitempty"`
	// Survey marks regions probed by the availability survey by default.
	Survey bool `yaml:"survey,omitempty"`
}

// HasZone checks if a region belongs to a zone. Every region belongs to
// ZoneAll.
func (e Entry) HasZone(zone string) bool {
	return zone == ZoneAll || slices.Contains(e.Zones, zone)
}

// IsUnknown is true for the sentinel region.
func (e Entry) IsUnknown() bool {
	return e.Key == UnknownKey
}

// Unknown returns the sentinel region.
func Unknown() Entry {
	return Entry{Native: UnknownNative, Key: UnknownKey}
}

// Locator finds the region of a point. Points that cannot be located
// belong to the Unknown region.
type Locator interface {
	Locate(ctx context.Context, lat, lon float64) Entry
}

// Table is the document format of the regions asset.
type Table struct {
	Regions []Entry `yaml:"regions"`
}

// Resolver finds regions by native names, aliases or keys.
type Resolver struct {
	entries []Entry
	exact   map[string]int
	byKey   map[string]int
	// cores are folded native names without administrative suffixes.
	cores []string
	// partial contains indices of entries sorted by length of their
	// cores, longest first.
	partial []int
}

// Parse reads a regions table in YAML format.
func Parse(data []byte) (*Resolver, error) {
	var tbl Table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, err
	}
	return New(tbl.Regions), nil
}

// New creates a Resolver. Entries without a native name or key are
// ignored. When a name repeats, the first entry wins.
func New(entries []Entry) *Resolver {
	res := &Resolver{
		exact: make(map[string]int),
		byKey: make(map[string]int),
	}
	for _, e := range entries {
		e.Native = strings.TrimSpace(e.Native)
		e.Key = strings.TrimSpace(e.Key)
		if e.Native == "" || e.Key == "" {
			continue
		}
		idx := len(res.entries)
		res.entries = append(res.entries, e)
		res.cores = append(res.cores, core(e.Native))

		if _, ok := res.byKey[fold(e.Key)]; !ok {
			res.byKey[fold(e.Key)] = idx
		}
		names := append([]string{e.Native}, e.Aliases...)
		for _, n := range names {
			n = fold(n)
			if _, ok := res.exact[n]; n != "" && !ok {
				res.exact[n] = idx
			}
		}
		res.partial = append(res.partial, idx)
	}

	slices.SortStableFunc(res.partial, func(a, b int) int {
		la := utf8.RuneCountInString(res.cores[a])
		lb := utf8.RuneCountInString(res.cores[b])
		if c := cmp.Compare(lb, la); c != 0 {
			return c
		}
		return cmp.Compare(res.entries[a].Native, res.entries[b].Native)
	})
	return res
}

// Resolve returns the region of a native name. The order of lookups is:
// exact native name or alias, exact key, the same name without
// administrative suffixes, a table name that contains the input, a table
// name contained in the input, and finally Fallback. Partial matching
// ignores administrative suffixes and tries longer table names first.
// Empty input gives the Unknown region.
func (r *Resolver) Resolve(native string) Entry {
	native = strings.TrimSpace(native)
	name := fold(native)
	if name == "" || name == fold(UnknownNative) {
		return Unknown()
	}

	if idx, ok := r.exact[name]; ok {
		return r.entries[idx]
	}
	if idx, ok := r.byKey[name]; ok {
		return r.entries[idx]
	}

	if idx, ok := r.partialMatch(core(native)); ok {
		return r.entries[idx]
	}

	key := Fallback(native)
	if key == UnknownKey {
		return Unknown()
	}
	return Entry{Native: native, Key: key}
}

// Key is a shortcut for Resolve(native).Key.
func (r *Resolver) Key(native string) string {
	return r.Resolve(native).Key
}

// ByKey finds a region of the table by its key.
func (r *Resolver) ByKey(key string) (Entry, bool) {
	idx, ok := r.byKey[fold(key)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Entries returns all regions in the order of the table.
func (r *Resolver) Entries() []Entry {
	return slices.Clone(r.entries)
}

// SurveyCandidates returns regions marked for the availability survey.
func (r *Resolver) SurveyCandidates() []Entry {
	var res []Entry
	for _, e := range r.entries {
		if e.Survey {
			res = append(res, e)
		}
	}
	return res
}

func (r *Resolver) partialMatch(name string) (int, bool) {
	if utf8.RuneCountInString(name) < minContainmentLen {
		return 0, false
	}
	for _, idx := range r.partial {
		if r.cores[idx] == name {
			return idx, true
		}
	}
	for _, idx := range r.partial {
		if strings.Contains(r.cores[idx], name) {
			return idx, true
		}
	}
	for _, idx := range r.partial {
		tbl := r.cores[idx]
		if utf8.RuneCountInString(tbl) >= minContainmentLen &&
			strings.Contains(name, tbl) {
			return idx, true
		}
	}
	return 0, false
}

// core removes administrative suffixes from a folded name.
func core(s string) string {
	s = fold(s)
	for _, suf := range adminSuffixes {
		s = strings.ReplaceAll(s, suf, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ё", "е")
	return strings.Join(strings.Fields(s), " ")
}
