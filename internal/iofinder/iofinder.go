// Package iofinder implements lifecycle.Finder. It ties together region
// resolution, geocoding, aggregation, statistics and storage.
package iofinder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/faunamap/pkg/aggregate"
	"github.com/gnames/faunamap/pkg/biostat"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/lifecycle"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/store"
	"github.com/gnames/faunamap/pkg/taxon"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// sampleSize is the number of records used to estimate kingdoms of a
// region during survey.
const sampleSize = 20

// Components are collaborators of the finder. Locator and Translator
// are optional.
type Components struct {
	Resolver   *region.Resolver
	Locator    region.Locator
	Fetcher    gbif.Fetcher
	Aggregator aggregate.Aggregator
	Translator taxon.Translator
	Store      store.Store
}

// FinderImpl implements lifecycle.Finder.
type FinderImpl struct {
	cfg *config.Config
	Components
	now func() time.Time
}

// Option configures FinderImpl.
type Option func(*FinderImpl)

// OptClock replaces time.Now.
func OptClock(now func() time.Time) Option {
	return func(f *FinderImpl) {
		if now != nil {
			f.now = now
		}
	}
}

// New creates a finder.
func New(cfg *config.Config, c Components, opts ...Option) *FinderImpl {
	res := &FinderImpl{cfg: cfg, Components: c, now: time.Now}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Region returns records of a region by its native name.
func (f *FinderImpl) Region(
	ctx context.Context,
	native string,
	force bool,
) (store.RegionRecordSet, error) {
	e := f.Resolver.Resolve(native)
	if e.IsUnknown() {
		return store.RegionRecordSet{}, RegionNotResolvedError(native)
	}
	return f.regionSet(ctx, e, force)
}

func (f *FinderImpl) regionSet(
	ctx context.Context,
	e region.Entry,
	force bool,
) (store.RegionRecordSet, error) {
	if !force {
		if set, ok := f.Store.Load(e.Key); ok {
			gn.Info(fmt.Sprintf(
				"Using stored data of <em>%s</em> from %s",
				e.Native, set.LastUpdated.Format(time.DateOnly),
			))
			return set, nil
		}
	}

	return f.search(ctx, e)
}

func (f *FinderImpl) search(
	ctx context.Context,
	e region.Entry,
) (store.RegionRecordSet, error) {
	start := time.Now()
	gn.Info(fmt.Sprintf("Searching animals of <em>%s</em>", e.Native))
	slog.Info("Region search started", "region", e.Key, "native", e.Native)

	recs := f.Aggregator.MergedRecords(ctx, e, f.cfg.Filter.MinDisplay)
	if err := ctx.Err(); err != nil {
		return store.RegionRecordSet{}, CancelledError(err)
	}

	return f.finish(e, recs, start)
}

// finish computes statistics and saves a non-empty record set of a known
// region.
func (f *FinderImpl) finish(
	e region.Entry,
	recs []occurrence.Record,
	start time.Time,
) (store.RegionRecordSet, error) {
	stats := biostat.Compute(recs, f.statParams())
	set := store.NewRecordSet(e, recs, stats, f.now())

	if len(recs) == 0 {
		gn.Warn(fmt.Sprintf("No animals found for <em>%s</em>", e.Native))
		slog.Warn("Region has no records", "region", e.Key)
		return set, nil
	}

	if !e.IsUnknown() {
		if err := f.Store.Save(set); err != nil {
			return set, err
		}
	}

	dur := time.Since(start)
	slog.Info("Region search finished",
		"region", e.Key,
		"records", len(recs),
		"species", stats.TotalSpecies,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(fmt.Sprintf(
		"Found %s records of %s species in %s",
		humanize.Comma(int64(len(recs))),
		humanize.Comma(int64(stats.TotalSpecies)),
		gnfmt.TimeString(dur.Seconds()),
	))
	return set, nil
}

func (f *FinderImpl) statParams() biostat.Params {
	year := f.cfg.Stats.ReferenceYear
	if year == 0 {
		year = f.now().Year()
	}
	return biostat.Params{
		ReferenceYear: year,
		WindowYears:   f.cfg.Stats.WindowYears,
	}
}

// Coordinates returns records of the region of a point. Animals around
// the point are searched when the region gives nothing.
func (f *FinderImpl) Coordinates(
	ctx context.Context,
	lat, lon float64,
	force bool,
) (store.RegionRecordSet, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return store.RegionRecordSet{}, InvalidCoordinatesError(lat, lon)
	}

	e := region.Unknown()
	if f.Locator != nil {
		e = f.Locator.Locate(ctx, lat, lon)
	}
	slog.Info("Point located", "lat", lat, "lon", lon, "region", e.Key)

	if !e.IsUnknown() {
		gn.Info(fmt.Sprintf("Point belongs to <em>%s</em>", e.Native))
		set, err := f.regionSet(ctx, e, force)
		if err != nil || set.TotalRecords > 0 {
			return set, err
		}
	} else {
		gn.Warn("Cannot determine region of the point")
	}

	return f.direct(ctx, e, lat, lon)
}

func (f *FinderImpl) direct(
	ctx context.Context,
	e region.Entry,
	lat, lon float64,
) (store.RegionRecordSet, error) {
	start := time.Now()
	gn.Info(fmt.Sprintf(
		"Searching animals within %d km of the point",
		aggregate.DirectRadiusKm,
	))
	q := aggregate.CoordinateQuery(f.cfg.GBIF.Country, lat, lon)
	recs := slices.Collect(f.Fetcher.FetchAll(ctx, q))
	if err := ctx.Err(); err != nil {
		return store.RegionRecordSet{}, CancelledError(err)
	}

	if f.Translator != nil {
		names := gbif.NewNameCache()
		for i := range recs {
			f.Translator.Enrich(ctx, names, &recs[i])
		}
	}
	recs = f.Aggregator.Significant(recs, f.cfg.Filter.MinDisplay)
	return f.finish(e, recs, start)
}

// Survey probes availability of records for candidate regions. A failed
// probe of one region does not stop the survey.
func (f *FinderImpl) Survey(
	ctx context.Context,
	candidates []region.Entry,
) []lifecycle.SurveyResult {
	res := make([]lifecycle.SurveyResult, 0, len(candidates))

	var bar *pb.ProgressBar
	if f.cfg.WithProgress {
		bar = pb.Full.Start(len(candidates))
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, e := range candidates {
		if ctx.Err() != nil {
			break
		}
		res = append(res, f.probe(ctx, e))
		if bar != nil {
			bar.Increment()
		}
	}
	return res
}

func (f *FinderImpl) probe(
	ctx context.Context,
	e region.Entry,
) lifecycle.SurveyResult {
	res := lifecycle.SurveyResult{Region: e, Kingdoms: make(map[string]int)}
	q := gbif.Query{Country: f.cfg.GBIF.Country, StateProvince: e.Key}

	count, err := f.Fetcher.Count(ctx, q)
	if err != nil {
		slog.Warn("Count probe failed", "region", e.Key, "error", err)
		res.Failed = true
		return res
	}
	res.Count = count
	if count == 0 {
		return res
	}

	sample, err := f.Fetcher.Sample(ctx, q, sampleSize)
	if err != nil {
		slog.Warn("Sample failed", "region", e.Key, "error", err)
		return res
	}
	for _, r := range sample {
		res.Kingdoms[occurrence.Display(r.Kingdom)]++
	}
	return res
}

// Summaries describes stored regions in the order of their keys.
func (f *FinderImpl) Summaries() []store.Summary {
	idx := f.Store.Index()
	res := make([]store.Summary, 0, len(idx))
	for _, k := range idx.Keys() {
		set, ok := f.Store.Load(k)
		if !ok {
			slog.Warn("Stored region is not readable", "region", k)
			continue
		}
		sum := set.Summary()
		sig := f.Aggregator.Significant(set.Records, f.cfg.Filter.MinSummary)
		sum.SignificantRecords = len(sig)
		sum.ClassDistribution = make(map[string]int)
		for _, r := range sig {
			sum.ClassDistribution[occurrence.Display(r.DisplayClass())]++
		}
		res = append(res, sum)
	}
	return res
}
