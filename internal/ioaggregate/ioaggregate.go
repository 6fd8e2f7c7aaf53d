// Package ioaggregate implements aggregate.Aggregator on top of a fetcher,
// the local species database and a translator.
package ioaggregate

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/faunamap/pkg/aggregate"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/localdb"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/taxon"
)

type aggregator struct {
	country  string
	excluded []string
	fetcher  gbif.Fetcher
	local    *localdb.DB
	tr       taxon.Translator
}

// New creates an aggregator. The local database and the translator are
// optional.
func New(
	cfg *config.Config,
	f gbif.Fetcher,
	db *localdb.DB,
	tr taxon.Translator,
) aggregate.Aggregator {
	return &aggregator{
		country:  cfg.GBIF.Country,
		excluded: cfg.Filter.ExcludedClasses,
		fetcher:  f,
		local:    db,
		tr:       tr,
	}
}

func (a *aggregator) Remote(
	ctx context.Context,
	e region.Entry,
) []occurrence.Record {
	if e.IsUnknown() {
		return nil
	}

	for i, q := range aggregate.RegionQueries(a.country, e) {
		recs := slices.Collect(a.fetcher.FetchAll(ctx, q))
		sum := a.fetcher.Summary()
		slog.Info("Region query finished",
			"region", e.Key,
			"strategy", i+1,
			"records", len(recs),
			"partial", sum.Partial,
		)
		if len(recs) > 0 {
			return recs
		}
		if ctx.Err() != nil {
			return nil
		}
	}

	var res []occurrence.Record
	for _, q := range aggregate.KnownSpeciesQueries(a.country, e) {
		if ctx.Err() != nil {
			break
		}
		recs := slices.Collect(a.fetcher.FetchAll(ctx, q))
		slog.Debug("Known species query finished",
			"region", e.Key,
			"name", q.ScientificName,
			"records", len(recs),
		)
		res = append(res, recs...)
	}
	slog.Info("Known species search finished",
		"region", e.Key, "records", len(res),
	)
	return res
}

func (a *aggregator) MergedRecords(
	ctx context.Context,
	e region.Entry,
	minOccurrences int,
) []occurrence.Record {
	remote := a.Remote(ctx, e)

	var local []occurrence.Record
	if a.local != nil {
		local = a.local.ForRegion(e)
	}

	res := aggregate.Merge(remote, local)
	if a.tr != nil {
		names := gbif.NewNameCache()
		for i := range res {
			a.tr.Enrich(ctx, names, &res[i])
		}
	}
	return a.Significant(res, minOccurrences)
}

func (a *aggregator) Significant(
	records []occurrence.Record,
	minOccurrences int,
) []occurrence.Record {
	f := aggregate.Filter{
		MinOccurrences:  minOccurrences,
		ExcludedClasses: a.excluded,
	}
	return f.Apply(records)
}
