package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "faunamap"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/faunamap by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/faunamap by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory path for region data and the local
// species database. Returns ~/.local/share/faunamap by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/faunamap/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/faunamap/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RegionsFilePath returns the path to the user-editable regions table.
func RegionsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "regions.yaml")
}

// RegionsDir returns the directory that keeps one JSON file per region.
func RegionsDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "regions")
}

// RegionIndexPath returns the path to the region-key index.
func RegionIndexPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "regions_keys.json")
}

// LocalDBPath returns the path to the curated local species database.
func LocalDBPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "local_animals.json")
}

// APICachePath returns the path to the memoized API responses.
func APICachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "api_cache.json")
}

// CoordinatesCachePath returns the path to the reverse-geocoding cache.
func CoordinatesCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "coordinates_regions.json")
}

// TranslationsCachePath returns the path to the taxon translation cache.
func TranslationsCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "taxonomy_translations.json")
}

// ExportPath returns the default location of the feature export database.
func ExportPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "region_features.sqlite")
}
