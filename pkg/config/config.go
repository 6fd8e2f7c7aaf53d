// Package config provides configuration management for faunamap.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - GBIF: base_url, country, language, batch_size, max_records, timeouts,
//     request_delay_ms, max_retries, backoffs
//   - Cache: ttl_hours, translation_ttl_days
//   - Filter: min_display, min_summary, excluded_classes
//   - Stats: reference_year, window_years
//   - Geocode: url, user_agent, language, ttl_days
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//   - WithProgress (progress bars on terminal)
//
// # Environment Variables
//
// Use FAUNAMAP_ prefix with underscores for nesting:
//
//	FAUNAMAP_GBIF_COUNTRY=RU
//	FAUNAMAP_GBIF_BATCH_SIZE=300
//	FAUNAMAP_LOG_LEVEL=info
//	FAUNAMAP_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete faunamap configuration.
type Config struct {
	// GBIF contains settings of the occurrence and species API.
	GBIF GBIFConfig `mapstructure:"gbif" yaml:"gbif"`

	// Cache contains settings of the API response and translation caches.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Filter contains the significance filter settings.
	Filter FilterConfig `mapstructure:"filter" yaml:"filter"`

	// Stats contains settings for biodiversity statistics.
	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`

	// Geocode contains settings of the reverse-geocoding service.
	Geocode GeocodeConfig `mapstructure:"geocode" yaml:"geocode"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for local parallel
	// operations such as loading region files for export.
	// Network requests are always sequential.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache, data and logs directories
	// reside. It must be set by CLI during init, there is no default value
	// for it.
	HomeDir string

	// WithProgress enables terminal progress bars during fetching.
	WithProgress bool
}

// GBIFConfig contains settings for the GBIF API.
type GBIFConfig struct {
	// BaseURL is the root of the API, for example https://api.gbif.org/v1.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Country is the ISO 3166-1 alpha-2 code used in occurrence queries.
	Country string `mapstructure:"country" yaml:"country"`

	// Language is the ISO 639-2 code of vernacular names to look up.
	Language string `mapstructure:"language" yaml:"language"`

	// BatchSize is the page size of occurrence requests.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// MaxRecords caps the number of raw records requested per query.
	MaxRecords int `mapstructure:"max_records" yaml:"max_records"`

	// TimeoutSec is the timeout of occurrence search requests.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// SpeciesTimeoutSec is the timeout of species and vernacular requests.
	SpeciesTimeoutSec int `mapstructure:"species_timeout_sec" yaml:"species_timeout_sec"`

	// RequestDelayMs is the politeness delay between network requests.
	RequestDelayMs int `mapstructure:"request_delay_ms" yaml:"request_delay_ms"`

	// MaxRetries is the retry ceiling for one page.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// OverloadBackoffMs is multiplied by the retry number after HTTP 503.
	OverloadBackoffMs int `mapstructure:"overload_backoff_ms" yaml:"overload_backoff_ms"`

	// TimeoutBackoffMs is the fixed delay before retrying a timed out request.
	TimeoutBackoffMs int `mapstructure:"timeout_backoff_ms" yaml:"timeout_backoff_ms"`
}

// CacheConfig contains time-to-live settings of file caches.
type CacheConfig struct {
	// TTLHours is the validity of memoized API batches.
	TTLHours int `mapstructure:"ttl_hours" yaml:"ttl_hours"`

	// TranslationTTLDays is the validity of remotely resolved translations.
	TranslationTTLDays int `mapstructure:"translation_ttl_days" yaml:"translation_ttl_days"`
}

// FilterConfig contains settings of the significance filter.
type FilterConfig struct {
	// MinDisplay is the minimal number of occurrences of a species
	// to show it in region listings.
	MinDisplay int `mapstructure:"min_display" yaml:"min_display"`

	// MinSummary is the minimal number of occurrences of a species
	// to include it into summary analysis.
	MinSummary int `mapstructure:"min_summary" yaml:"min_summary"`

	// ExcludedClasses are low-interest classes (Latin or localized names)
	// that are dropped by the significance filter.
	ExcludedClasses []string `mapstructure:"excluded_classes" yaml:"excluded_classes"`
}

// StatsConfig contains settings of biodiversity statistics.
type StatsConfig struct {
	// ReferenceYear ends the recent activity window. Zero means the current
	// year.
	ReferenceYear int `mapstructure:"reference_year" yaml:"reference_year"`

	// WindowYears is the length of the recent activity window.
	WindowYears int `mapstructure:"window_years" yaml:"window_years"`
}

// GeocodeConfig contains settings of the reverse-geocoding service.
type GeocodeConfig struct {
	// URL is the root of a Nominatim-compatible service.
	URL string `mapstructure:"url" yaml:"url"`

	// UserAgent identifies faunamap to the service.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// Language of returned region names.
	Language string `mapstructure:"language" yaml:"language"`

	// TTLDays is the validity of cached coordinate lookups.
	TTLDays int `mapstructure:"ttl_days" yaml:"ttl_days"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// DefaultExcludedClasses lists classes of low interest for region reports:
// insects, arachnids, worms, mollusks and similar invertebrates.
var DefaultExcludedClasses = []string{
	"Insecta", "Arachnida", "Clitellata", "Polychaeta", "Oligochaeta",
	"Gastropoda", "Bivalvia", "Collembola", "Entognatha", "Diplopoda",
	"Chilopoda", "Malacostraca", "Maxillopoda", "Ostracoda", "Turbellaria",
	"Насекомые", "Паукообразные", "Брюхоногие", "Двустворчатые",
	"Многоножки", "Кольчатые черви",
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		GBIF: GBIFConfig{
			BaseURL:           "https://api.gbif.org/v1",
			Country:           "RU",
			Language:          "rus",
			BatchSize:         300,
			MaxRecords:        3_000,
			TimeoutSec:        30,
			SpeciesTimeoutSec: 10,
			RequestDelayMs:    500,
			MaxRetries:        3,
			OverloadBackoffMs: 10_000,
			TimeoutBackoffMs:  5_000,
		},
		Cache: CacheConfig{
			TTLHours:           24,
			TranslationTTLDays: 30,
		},
		Filter: FilterConfig{
			MinDisplay:      1,
			MinSummary:      2,
			ExcludedClasses: DefaultExcludedClasses,
		},
		Stats: StatsConfig{
			WindowYears: 5,
		},
		Geocode: GeocodeConfig{
			URL:       "https://nominatim.openstreetmap.org",
			UserAgent: "faunamap",
			Language:  "ru",
			TTLDays:   30,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
