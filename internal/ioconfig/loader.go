// Package ioconfig reads config.yaml and FAUNAMAP_ environment variables.
// This is an impure package that handles file system and environment.
package ioconfig

import (
	"strings"

	"github.com/gnames/faunamap/internal/iofs"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "FAUNAMAP"

// Load reads the config file of homeDir and returns options of the
// values it sets. Environment variables take precedence over the file.
func Load(homeDir string) ([]config.Option, error) {
	var err error
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return res.ToOptions(), nil
}

func initEnvVars(v *viper.Viper) {
	// We bind variables manually so it is clear which of them are allowed.
	// They match the fields of config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("gbif.base_url", "FAUNAMAP_GBIF_BASE_URL")
	_ = v.BindEnv("gbif.country", "FAUNAMAP_GBIF_COUNTRY")
	_ = v.BindEnv("gbif.language", "FAUNAMAP_GBIF_LANGUAGE")
	_ = v.BindEnv("gbif.batch_size", "FAUNAMAP_GBIF_BATCH_SIZE")
	_ = v.BindEnv("gbif.max_records", "FAUNAMAP_GBIF_MAX_RECORDS")
	_ = v.BindEnv("gbif.timeout_sec", "FAUNAMAP_GBIF_TIMEOUT_SEC")
	_ = v.BindEnv("gbif.species_timeout_sec", "FAUNAMAP_GBIF_SPECIES_TIMEOUT_SEC")
	_ = v.BindEnv("gbif.request_delay_ms", "FAUNAMAP_GBIF_REQUEST_DELAY_MS")
	_ = v.BindEnv("gbif.max_retries", "FAUNAMAP_GBIF_MAX_RETRIES")
	_ = v.BindEnv("gbif.overload_backoff_ms", "FAUNAMAP_GBIF_OVERLOAD_BACKOFF_MS")
	_ = v.BindEnv("gbif.timeout_backoff_ms", "FAUNAMAP_GBIF_TIMEOUT_BACKOFF_MS")

	_ = v.BindEnv("cache.ttl_hours", "FAUNAMAP_CACHE_TTL_HOURS")
	_ = v.BindEnv("cache.translation_ttl_days", "FAUNAMAP_CACHE_TRANSLATION_TTL_DAYS")

	_ = v.BindEnv("filter.min_display", "FAUNAMAP_FILTER_MIN_DISPLAY")
	_ = v.BindEnv("filter.min_summary", "FAUNAMAP_FILTER_MIN_SUMMARY")
	_ = v.BindEnv("filter.excluded_classes", "FAUNAMAP_FILTER_EXCLUDED_CLASSES")

	_ = v.BindEnv("stats.reference_year", "FAUNAMAP_STATS_REFERENCE_YEAR")
	_ = v.BindEnv("stats.window_years", "FAUNAMAP_STATS_WINDOW_YEARS")

	_ = v.BindEnv("geocode.url", "FAUNAMAP_GEOCODE_URL")
	_ = v.BindEnv("geocode.user_agent", "FAUNAMAP_GEOCODE_USER_AGENT")
	_ = v.BindEnv("geocode.language", "FAUNAMAP_GEOCODE_LANGUAGE")
	_ = v.BindEnv("geocode.ttl_days", "FAUNAMAP_GEOCODE_TTL_DAYS")

	_ = v.BindEnv("log.level", "FAUNAMAP_LOG_LEVEL")
	_ = v.BindEnv("log.format", "FAUNAMAP_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "FAUNAMAP_LOG_DESTINATION")

	_ = v.BindEnv("jobs_number", "FAUNAMAP_JOBS_NUMBER")

	v.AutomaticEnv()
}
