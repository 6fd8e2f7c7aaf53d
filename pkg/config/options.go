package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGBIFBaseURL sets the root URL of the GBIF API.
func OptGBIFBaseURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("GBIF Base URL", s) {
			c.GBIF.BaseURL = s
		}
	}
}

// OptGBIFCountry sets the country code used in occurrence queries.
func OptGBIFCountry(s string) Option {
	s = strings.ToUpper(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("GBIF Country", s) {
			c.GBIF.Country = s
		}
	}
}

// OptGBIFLanguage sets the language code of vernacular names.
func OptGBIFLanguage(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("GBIF Language", s) {
			c.GBIF.Language = s
		}
	}
}

// OptGBIFBatchSize sets the page size of occurrence requests.
// GBIF does not return more than 300 records per page.
func OptGBIFBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Batch Size", i) {
			c.GBIF.BatchSize = min(i, 300)
		}
	}
}

// OptGBIFMaxRecords sets the cap of raw records requested per query.
func OptGBIFMaxRecords(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Max Records", i) {
			c.GBIF.MaxRecords = i
		}
	}
}

// OptGBIFTimeoutSec sets the timeout of occurrence requests.
func OptGBIFTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Timeout", i) {
			c.GBIF.TimeoutSec = i
		}
	}
}

// OptGBIFSpeciesTimeoutSec sets the timeout of species requests.
func OptGBIFSpeciesTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Species Timeout", i) {
			c.GBIF.SpeciesTimeoutSec = i
		}
	}
}

// OptGBIFRequestDelayMs sets the politeness delay between requests.
// Zero disables the delay.
func OptGBIFRequestDelayMs(i int) Option {
	return func(c *Config) {
		if isNonNegativeInt("GBIF Request Delay", i) {
			c.GBIF.RequestDelayMs = i
		}
	}
}

// OptGBIFMaxRetries sets the retry ceiling of one page.
func OptGBIFMaxRetries(i int) Option {
	return func(c *Config) {
		if isNonNegativeInt("GBIF Max Retries", i) {
			c.GBIF.MaxRetries = i
		}
	}
}

// OptGBIFOverloadBackoffMs sets the backoff step after HTTP 503.
func OptGBIFOverloadBackoffMs(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Overload Backoff", i) {
			c.GBIF.OverloadBackoffMs = i
		}
	}
}

// OptGBIFTimeoutBackoffMs sets the backoff after a timed out request.
func OptGBIFTimeoutBackoffMs(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Timeout Backoff", i) {
			c.GBIF.TimeoutBackoffMs = i
		}
	}
}

// OptCacheTTLHours sets the validity of memoized API batches.
func OptCacheTTLHours(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache TTL Hours", i) {
			c.Cache.TTLHours = i
		}
	}
}

// OptCacheTranslationTTLDays sets the validity of cached translations.
func OptCacheTranslationTTLDays(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache Translation TTL Days", i) {
			c.Cache.TranslationTTLDays = i
		}
	}
}

// OptFilterMinDisplay sets the minimal occurrences for region listings.
func OptFilterMinDisplay(i int) Option {
	return func(c *Config) {
		if isValidInt("Filter Min Display", i) {
			c.Filter.MinDisplay = i
		}
	}
}

// OptFilterMinSummary sets the minimal occurrences for summary analysis.
func OptFilterMinSummary(i int) Option {
	return func(c *Config) {
		if isValidInt("Filter Min Summary", i) {
			c.Filter.MinSummary = i
		}
	}
}

// OptFilterExcludedClasses replaces the list of excluded classes.
// An empty list keeps the current value.
func OptFilterExcludedClasses(ss []string) Option {
	var res []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Filter.ExcludedClasses = res
		}
	}
}

// OptStatsReferenceYear sets the last year of the recent activity window.
func OptStatsReferenceYear(i int) Option {
	return func(c *Config) {
		if isValidInt("Stats Reference Year", i) {
			c.Stats.ReferenceYear = i
		}
	}
}

// OptStatsWindowYears sets the length of the recent activity window.
func OptStatsWindowYears(i int) Option {
	return func(c *Config) {
		if isValidInt("Stats Window Years", i) {
			c.Stats.WindowYears = i
		}
	}
}

// OptGeocodeURL sets the root URL of the reverse-geocoding service.
func OptGeocodeURL(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidURL("Geocode URL", s) {
			c.Geocode.URL = s
		}
	}
}

// OptGeocodeUserAgent sets the user agent sent to the geocoder.
func OptGeocodeUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode User Agent", s) {
			c.Geocode.UserAgent = s
		}
	}
}

// OptGeocodeLanguage sets the language of returned region names.
func OptGeocodeLanguage(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Geocode Language", s) {
			c.Geocode.Language = s
		}
	}
}

// OptGeocodeTTLDays sets the validity of cached coordinate lookups.
func OptGeocodeTTLDays(i int) Option {
	return func(c *Config) {
		if isValidInt("Geocode TTL Days", i) {
			c.Geocode.TTLDays = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for local
// parallel operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, data and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptWithProgress enables or disables progress bars.
// Runtime-only field - not in ToOptions().
func OptWithProgress(b bool) Option {
	return func(c *Config) {
		c.WithProgress = b
	}
}
