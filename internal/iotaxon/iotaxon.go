// Package iotaxon implements taxon.Translator with a static dictionary, a
// file cache of remote lookups and GBIF vernacular names.
package iotaxon

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/localdb"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/taxon"
	"github.com/gnames/gnfmt"
)

type translator struct {
	dict    taxon.Dictionary
	cache   cache.Cache
	ttl     time.Duration
	fetcher gbif.Fetcher
	local   *localdb.DB
	enc     gnfmt.GNjson
}

// New creates a translator. Remote translations are kept in c for ttl.
// The fetcher and the local database are optional.
func New(
	dict taxon.Dictionary,
	c cache.Cache,
	ttl time.Duration,
	f gbif.Fetcher,
	db *localdb.DB,
) taxon.Translator {
	return &translator{
		dict:    dict,
		cache:   c,
		ttl:     ttl,
		fetcher: f,
		local:   db,
	}
}

// Translate checks the dictionary and the cache before asking GBIF. Names
// without a vernacular name translate to themselves.
func (t *translator) Translate(
	ctx context.Context,
	name string,
	rank taxon.Rank,
) string {
	return t.translate(ctx, nil, name, rank)
}

// translate is Translate with an optional session memo, so the cache file
// is consulted once per name and session.
func (t *translator) translate(
	ctx context.Context,
	names *gbif.NameCache,
	name string,
	rank taxon.Rank,
) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if res, ok := t.dict.Lookup(name); ok {
		return res
	}

	memoKey := string(rank) + "|" + name
	if names != nil {
		if res, ok := names.Taxon(memoKey); ok {
			return res
		}
	}

	var res string
	params := taxon.CacheParams(name, rank)
	if data, ok := t.cache.Get(params); ok {
		if err := t.enc.Decode(data, &res); err == nil && res != "" {
			remember(names, memoKey, res)
			return res
		}
	}

	res = name
	if t.fetcher != nil {
		if key, ok := t.fetcher.SearchSpecies(ctx, name); ok {
			if v := t.fetcher.Vernacular(ctx, nil, key); v != "" {
				res = v
			}
		}
	}
	if ctx.Err() != nil {
		return res
	}

	remember(names, memoKey, res)
	data, err := t.enc.Encode(res)
	if err == nil {
		err = t.cache.Put(params, data, t.ttl)
	}
	if err != nil {
		slog.Warn("Cannot cache translation", "name", name, "error", err)
	}
	return res
}

// Enrich translates ranks from phylum to genus and fills the common name
// from the local database, GBIF or the dictionary, in that order.
func (t *translator) Enrich(
	ctx context.Context,
	names *gbif.NameCache,
	r *occurrence.Record,
) {
	for _, rank := range taxon.Ranks {
		if rank == taxon.Species {
			continue
		}
		if v := taxon.Value(*r, rank); v != "" {
			tr := t.translate(ctx, names, v, rank)
			taxon.SetTranslation(&r.Translation, rank, tr)
		}
	}

	if r.CommonName == "" {
		r.CommonName, r.NameSource = t.commonName(ctx, names, *r)
	}
	if r.CommonName != "" {
		r.Translation.Species = r.CommonName
	}
}

func (t *translator) commonName(
	ctx context.Context,
	names *gbif.NameCache,
	r occurrence.Record,
) (string, string) {
	candidates := []string{r.CanonicalName, r.ScientificName, r.Species}

	if t.local != nil {
		for _, v := range candidates {
			if res, ok := t.local.CommonName(v); ok {
				return res, taxon.SourceLocalDB
			}
		}
	}

	if t.fetcher != nil && r.SpeciesKey > 0 {
		if res := t.fetcher.Vernacular(ctx, names, r.SpeciesKey); res != "" {
			return res, taxon.SourceGBIF
		}
	}

	for _, v := range candidates {
		if res, ok := t.dict.Lookup(v); ok {
			return res, taxon.SourceDictionary
		}
	}
	return "", ""
}

func remember(names *gbif.NameCache, key, val string) {
	if names != nil {
		names.SetTaxon(key, val)
	}
}
