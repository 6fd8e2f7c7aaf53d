// Package taxon translates names of taxa into the configured language and
// fills common names of records.
package taxon

import (
	"context"
	"strings"

	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
	"gopkg.in/yaml.v3"
)

// Rank is a translated taxonomic rank.
type Rank string

const (
	Phylum  Rank = "phylum"
	Class   Rank = "class"
	Order   Rank = "order"
	Family  Rank = "family"
	Genus   Rank = "genus"
	Species Rank = "species"
)

// Ranks lists translated ranks from the highest.
var Ranks = []Rank{Phylum, Class, Order, Family, Genus, Species}

// Name sources of common names.
const (
	SourceLocalDB    = "local_db"
	SourceGBIF       = "gbif"
	SourceDictionary = "dictionary"
)

// Translator translates taxa. Translations never fail, unknown names are
// returned as they are.
type Translator interface {
	// Translate returns the localized name of a taxon. An empty name gives
	// an empty result.
	Translate(ctx context.Context, name string, rank Rank) string

	// Enrich fills translations of the ranks of a record and its common
	// name if it is missing. Vernacular lookups and rank translations are
	// memoized in names, which may be nil.
	Enrich(ctx context.Context, names *gbif.NameCache, r *occurrence.Record)
}

// Dictionary is a static list of translations.
type Dictionary struct {
	names map[string]string
}

// ParseDictionary decodes a YAML document where translations are grouped
// by rank. Groups are merged, the first translation of a name wins.
func ParseDictionary(data []byte) (Dictionary, error) {
	var doc map[Rank]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Dictionary{}, err
	}
	res := Dictionary{names: make(map[string]string)}
	for _, rank := range Ranks {
		for k, v := range doc[rank] {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if _, ok := res.names[k]; ok || k == "" || v == "" {
				continue
			}
			res.names[k] = v
		}
	}
	return res, nil
}

// Lookup returns a translation of a name.
func (d Dictionary) Lookup(name string) (string, bool) {
	res, ok := d.names[strings.TrimSpace(name)]
	return res, ok
}

// Len returns the number of translations.
func (d Dictionary) Len() int {
	return len(d.names)
}

// CacheParams returns the cache address of a translation.
func CacheParams(name string, rank Rank) cache.Params {
	return cache.Params{"name": name, "rank": string(rank)}
}

// Value returns the name of a rank of a record.
func Value(r occurrence.Record, rank Rank) string {
	switch rank {
	case Phylum:
		return r.Phylum
	case Class:
		return r.Class
	case Order:
		return r.Order
	case Family:
		return r.Family
	case Genus:
		return r.Genus
	case Species:
		return r.Species
	}
	return ""
}

// SetTranslation assigns a translation of a rank.
func SetTranslation(t *occurrence.Translation, rank Rank, val string) {
	switch rank {
	case Phylum:
		t.Phylum = val
	case Class:
		t.Class = val
	case Order:
		t.Order = val
	case Family:
		t.Family = val
	case Genus:
		t.Genus = val
	case Species:
		t.Species = val
	}
}
