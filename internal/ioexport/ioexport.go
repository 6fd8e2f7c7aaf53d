// Package ioexport implements lifecycle.Exporter. It writes one row of
// biodiversity features per stored region into a SQLite file.
package ioexport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// Table is the name of the features table.
const Table = "region_features"

// ExporterImpl implements lifecycle.Exporter.
type ExporterImpl struct {
	cfg   *config.Config
	store store.Store
	enc   gnfmt.GNjson
}

// New creates an exporter of regions kept in st.
func New(cfg *config.Config, st store.Store) *ExporterImpl {
	return &ExporterImpl{cfg: cfg, store: st, enc: gnfmt.GNjson{}}
}

// Feature is a row of the features table.
type Feature struct {
	store.RegionRecordSet
	// MeanLat and MeanLon are averages of record coordinates. They are nil
	// when no record has coordinates.
	MeanLat *float64
	MeanLon *float64
}

var columns = []string{
	"region_key TEXT PRIMARY KEY",
	"region_name TEXT NOT NULL",
	"last_updated TEXT NOT NULL",
	"total_records INTEGER NOT NULL",
	"unique_species INTEGER NOT NULL",
	"mammal_species INTEGER NOT NULL",
	"bird_species INTEGER NOT NULL",
	"reptile_species INTEGER NOT NULL",
	"amphibian_species INTEGER NOT NULL",
	"fish_species INTEGER NOT NULL",
	"insect_species INTEGER NOT NULL",
	"other_species INTEGER NOT NULL",
	"mammal_ratio REAL NOT NULL",
	"bird_ratio REAL NOT NULL",
	"reptile_ratio REAL NOT NULL",
	"amphibian_ratio REAL NOT NULL",
	"fish_ratio REAL NOT NULL",
	"insect_ratio REAL NOT NULL",
	"other_ratio REAL NOT NULL",
	"shannon_diversity REAL NOT NULL",
	"dominant_class TEXT",
	"dominant_class_ratio REAL NOT NULL",
	"rare_species_ratio REAL NOT NULL",
	"records_per_species REAL NOT NULL",
	"recent_records INTEGER NOT NULL",
	"max_year_records INTEGER NOT NULL",
	"data_freshness INTEGER NOT NULL",
	"mean_lat REAL",
	"mean_lon REAL",
	"centroid BLOB",
	"class_distribution TEXT",
}

// Export loads all stored regions and replaces the features table of the
// SQLite file at path.
func (e *ExporterImpl) Export(ctx context.Context, path string) (int, error) {
	start := time.Now()
	feats, err := e.load(ctx)
	if err != nil {
		return 0, err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, ExportOpenError(path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, ExportOpenError(path, err)
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return 0, ExportOpenError(path, err)
	}

	if err = e.write(ctx, db, feats); err != nil {
		return 0, ExportWriteError(path, err)
	}

	slog.Info("Export finished",
		"path", path,
		"regions", len(feats),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(fmt.Sprintf("Exported %s regions to <em>%s</em>",
		humanize.Comma(int64(len(feats))), path))
	return len(feats), nil
}

// load reads stored regions concurrently. The order of features follows
// the order of index keys.
func (e *ExporterImpl) load(ctx context.Context) ([]Feature, error) {
	keys := e.store.Index().Keys()
	res := make([]Feature, len(keys))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.JobsNumber, 1))
	for i, k := range keys {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			set, ok := e.store.Load(k)
			if !ok {
				return ExportLoadError(k)
			}
			res[i] = NewFeature(set)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// NewFeature computes mean coordinates of a record set.
func NewFeature(set store.RegionRecordSet) Feature {
	res := Feature{RegionRecordSet: set}
	var lat, lon float64
	var n int
	for _, r := range set.Records {
		if !r.HasCoordinates() {
			continue
		}
		lat += *r.Latitude
		lon += *r.Longitude
		n++
	}
	if n > 0 {
		lat /= float64(n)
		lon /= float64(n)
		res.MeanLat = &lat
		res.MeanLon = &lon
	}
	return res
}

func (e *ExporterImpl) write(
	ctx context.Context,
	db *sql.DB,
	feats []Feature,
) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		"DROP TABLE IF EXISTS " + Table,
		fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
			Table, strings.Join(columns, ",\n  ")),
	}
	for _, s := range stmts {
		if _, err = tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = strings.Fields(c)[0]
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Table, strings.Join(names, ", "), marks)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range feats {
		if _, err = stmt.ExecContext(ctx, e.row(f)...); err != nil {
			return fmt.Errorf("region %s: %w", f.Key, err)
		}
	}
	return tx.Commit()
}

func (e *ExporterImpl) row(f Feature) []any {
	s := f.Stats
	dist, err := e.enc.Encode(s.ClassDistribution)
	if err != nil {
		slog.Warn("Cannot encode class distribution",
			"region", f.Key, "error", err)
	}
	var dominant any
	if s.DominantClass != "" {
		dominant = s.DominantClass
	}
	return []any{
		f.Key,
		f.Native,
		f.LastUpdated.UTC().Format(time.RFC3339),
		f.TotalRecords,
		f.UniqueSpecies,
		s.MammalSpecies,
		s.BirdSpecies,
		s.ReptileSpecies,
		s.AmphibianSpecies,
		s.FishSpecies,
		s.InsectSpecies,
		s.OtherSpecies,
		s.MammalRatio,
		s.BirdRatio,
		s.ReptileRatio,
		s.AmphibianRatio,
		s.FishRatio,
		s.InsectRatio,
		s.OtherRatio,
		s.ShannonDiversity,
		dominant,
		s.DominantClassRatio,
		s.RareSpeciesRatio,
		s.RecordsPerSpecies,
		s.RecentRecords,
		s.MaxYearRecords,
		s.LatestYear,
		f.MeanLat,
		f.MeanLon,
		centroid(f),
		string(dist),
	}
}

// centroid encodes the mean point of records as EWKB with SRID 4326.
func centroid(f Feature) []byte {
	if f.MeanLat == nil || f.MeanLon == nil {
		return nil
	}
	pt := geom.NewPointFlat(geom.XY, []float64{*f.MeanLon, *f.MeanLat}).
		SetSRID(4326)
	res, err := ewkb.Marshal(pt, ewkb.NDR)
	if err != nil {
		slog.Warn("Cannot encode centroid", "region", f.Key, "error", err)
		return nil
	}
	return res
}
