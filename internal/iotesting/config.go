// Package iotesting provides shared test utilities: configurations that
// never touch the real home directory and a scripted occurrence fetcher.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/faunamap/pkg/config"
)

// TestConfig returns a configuration with HomeDir in a temporary
// directory, no politeness delay and no progress bars.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.TestConfig(t)
//	    // files go to cfg.HomeDir, removed via t.Cleanup()
//	}
func TestConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptGBIFRequestDelayMs(0),
		config.OptWithProgress(false),
	})
	cfg.Update(opts)
	return cfg
}

// WriteRegionsYAML writes a regions table to the config directory of
// cfg and returns its path.
//
// Usage:
//
//	iotesting.WriteRegionsYAML(t, cfg, `
//	regions:
//	  - native: Амурская область
//	    key: Amur
//	`)
func WriteRegionsYAML(t *testing.T, cfg *config.Config, content string) string {
	t.Helper()

	path := config.RegionsFilePath(cfg.HomeDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write regions.yaml: %v", err)
	}
	return path
}
