package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnames/faunamap/internal/ioaggregate"
	"github.com/gnames/faunamap/internal/iocache"
	"github.com/gnames/faunamap/internal/ioexport"
	"github.com/gnames/faunamap/internal/iofinder"
	"github.com/gnames/faunamap/internal/iofs"
	"github.com/gnames/faunamap/internal/iogbif"
	"github.com/gnames/faunamap/internal/iogeocode"
	"github.com/gnames/faunamap/internal/iolocaldb"
	"github.com/gnames/faunamap/internal/iostore"
	"github.com/gnames/faunamap/internal/iotaxon"
	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/parserpool"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/taxon"
)

// caches are the file caches of faunamap by their names.
type caches struct {
	api    cache.Cache
	coords cache.Cache
	names  cache.Cache
}

func newCaches(home string) caches {
	return caches{
		api:    iocache.New(config.APICachePath(home)),
		coords: iocache.New(config.CoordinatesCachePath(home)),
		names:  iocache.New(config.TranslationsCachePath(home)),
	}
}

type namedCache struct {
	name  string
	cache cache.Cache
}

func (cs caches) list() []namedCache {
	return []namedCache{
		{name: "occurrences", cache: cs.api},
		{name: "coordinates", cache: cs.coords},
		{name: "translations", cache: cs.names},
	}
}

// app holds components created for one command run.
type app struct {
	resolver *region.Resolver
	finder   *iofinder.FinderImpl
	pool     parserpool.Pool
}

// newApp wires all collaborators of the finder.
func newApp(cfg *config.Config) (*app, error) {
	home := cfg.HomeDir
	res, err := iofs.Regions(home)
	if err != nil {
		return nil, err
	}

	dict, err := taxon.ParseDictionary([]byte(iofs.TaxaYAML))
	if err != nil {
		return nil, iofs.ReadFileError("taxa.yaml", err)
	}

	db, err := iolocaldb.Load(config.LocalDBPath(home), iofs.LocalAnimalsJSON)
	if err != nil {
		return nil, err
	}

	cs := newCaches(home)
	pool := parserpool.NewPool(cfg.JobsNumber)
	f := iogbif.New(cfg, cs.api, iogbif.OptParser(pool))

	ttl := time.Duration(cfg.Cache.TranslationTTLDays) * 24 * time.Hour
	tr := iotaxon.New(dict, cs.names, ttl, f, db)
	st := iostore.New(config.RegionsDir(home), config.RegionIndexPath(home))

	finder := iofinder.New(cfg, iofinder.Components{
		Resolver:   res,
		Locator:    iogeocode.New(cfg, res, cs.coords),
		Fetcher:    f,
		Aggregator: ioaggregate.New(cfg, f, db, tr),
		Translator: tr,
		Store:      st,
	})

	return &app{resolver: res, finder: finder, pool: pool}, nil
}

func (a *app) close() {
	a.pool.Close()
}

func newExporter(cfg *config.Config) *ioexport.ExporterImpl {
	st := iostore.New(
		config.RegionsDir(cfg.HomeDir),
		config.RegionIndexPath(cfg.HomeDir),
	)
	return ioexport.New(cfg, st)
}

// signalContext is cancelled by Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}
