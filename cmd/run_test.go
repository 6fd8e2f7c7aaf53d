package cmd

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/faunamap/internal/ioexport"
	"github.com/gnames/faunamap/internal/iotesting"
	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig replaces the global configuration for one test.
func withConfig(t *testing.T) *config.Config {
	t.Helper()
	old := cfg
	cfg = iotesting.TestConfig(t)
	t.Cleanup(func() { cfg = old })
	return cfg
}

func TestRunExportEmpty(t *testing.T) {
	c := withConfig(t)

	require.NoError(t, runExport(""))
	path := config.ExportPath(c.HomeDir)
	_, err := os.Stat(path)
	require.NoError(t, err, "default export file should exist")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var count int
	err = db.QueryRow("SELECT count(*) FROM " + ioexport.Table).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunExportOutput(t *testing.T) {
	withConfig(t)

	path := filepath.Join(t.TempDir(), "features.sqlite")
	require.NoError(t, runExport(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRunCache(t *testing.T) {
	c := withConfig(t)
	cs := newCaches(c.HomeDir)
	err := cs.api.Put(cache.Params{"offset": "0"}, []byte(`{"results":[]}`), time.Hour)
	require.NoError(t, err)
	err = cs.names.Put(cache.Params{"name": "Aves"}, []byte(`"Птицы"`), time.Hour)
	require.NoError(t, err)

	require.NoError(t, runCache(false))
	assert.Equal(t, 1, cs.api.Stats().Entries, "stats do not change entries")

	require.NoError(t, runCache(true))
	for _, nc := range cs.list() {
		assert.Zero(t, nc.cache.Stats().Entries, nc.name)
	}
}

func TestNewApp(t *testing.T) {
	c := withConfig(t)

	a, err := newApp(c)
	require.NoError(t, err)
	defer a.close()
	assert.NotEmpty(t, a.resolver.SurveyCandidates())
	assert.Empty(t, a.finder.Summaries())
}

func TestNewAppBrokenRegions(t *testing.T) {
	c := withConfig(t)
	iotesting.WriteRegionsYAML(t, c, "regions: [broken")

	_, err := newApp(c)
	assert.Error(t, err)
}
