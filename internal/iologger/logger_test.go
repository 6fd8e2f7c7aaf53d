package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	defer slog.SetDefault(slog.Default())
	defer Close()

	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}
	require.NoError(t, Init(dir, cfg))

	slog.Info("hidden")
	slog.Warn("shown", "region", "Amur")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"region":"Amur"`)
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	dir := filepath.Join(t.TempDir(), "missing")
	err := Init(dir, cfg)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, []any{"faunamap.log", dir}, gnErr.Vars)
	assert.Contains(t, err.Error(), "faunamap.log")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, out := range tests {
		assert.Equal(t, out, parseLevel(in), in)
	}
}
