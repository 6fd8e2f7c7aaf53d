// Package iofs prepares directories of faunamap and writes embedded
// default files there.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/region"
)

//go:embed config.yaml
var ConfigYAML string

// RegionsYAML is the default regions table.
//
//go:embed regions.yaml
var RegionsYAML string

// TaxaYAML is the dictionary of taxon translations.
//
//go:embed taxa.yaml
var TaxaYAML string

// LocalAnimalsJSON is the default local species database.
//
//go:embed local_animals.json
var LocalAnimalsJSON []byte

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DataDir(homeDir),
		config.RegionsDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), []byte(ConfigYAML))
}

// EnsureRegionsFile writes the default regions table unless the user
// already has one.
func EnsureRegionsFile(homeDir string) error {
	return ensureFile(config.RegionsFilePath(homeDir), []byte(RegionsYAML))
}

// EnsureLocalDB writes the default local species database unless it
// exists.
func EnsureLocalDB(homeDir string) error {
	return ensureFile(config.LocalDBPath(homeDir), LocalAnimalsJSON)
}

// ReadRegions returns the content of the user regions table, or the
// embedded table if the file is missing.
func ReadRegions(homeDir string) ([]byte, error) {
	path := config.RegionsFilePath(homeDir)
	res, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []byte(RegionsYAML), nil
	}
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// Regions creates a resolver from the user regions table.
func Regions(homeDir string) (*region.Resolver, error) {
	data, err := ReadRegions(homeDir)
	if err != nil {
		return nil, err
	}
	res, err := region.Parse(data)
	if err != nil {
		return nil, RegionsTableError(config.RegionsFilePath(homeDir), err)
	}
	return res, nil
}

func ensureFile(path string, content []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := touchDir(filepath.Dir(path)); err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}
