package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, WithProgress).
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.GBIF.BaseURL
	if s != "" {
		res = append(res, OptGBIFBaseURL(s))
	}
	s = c.GBIF.Country
	if s != "" {
		res = append(res, OptGBIFCountry(s))
	}
	s = c.GBIF.Language
	if s != "" {
		res = append(res, OptGBIFLanguage(s))
	}
	i = c.GBIF.BatchSize
	if i > 0 {
		res = append(res, OptGBIFBatchSize(i))
	}
	i = c.GBIF.MaxRecords
	if i > 0 {
		res = append(res, OptGBIFMaxRecords(i))
	}
	i = c.GBIF.TimeoutSec
	if i > 0 {
		res = append(res, OptGBIFTimeoutSec(i))
	}
	i = c.GBIF.SpeciesTimeoutSec
	if i > 0 {
		res = append(res, OptGBIFSpeciesTimeoutSec(i))
	}
	i = c.GBIF.RequestDelayMs
	if i > 0 {
		res = append(res, OptGBIFRequestDelayMs(i))
	}
	i = c.GBIF.MaxRetries
	if i > 0 {
		res = append(res, OptGBIFMaxRetries(i))
	}
	i = c.GBIF.OverloadBackoffMs
	if i > 0 {
		res = append(res, OptGBIFOverloadBackoffMs(i))
	}
	i = c.GBIF.TimeoutBackoffMs
	if i > 0 {
		res = append(res, OptGBIFTimeoutBackoffMs(i))
	}

	i = c.Cache.TTLHours
	if i > 0 {
		res = append(res, OptCacheTTLHours(i))
	}
	i = c.Cache.TranslationTTLDays
	if i > 0 {
		res = append(res, OptCacheTranslationTTLDays(i))
	}

	i = c.Filter.MinDisplay
	if i > 0 {
		res = append(res, OptFilterMinDisplay(i))
	}
	i = c.Filter.MinSummary
	if i > 0 {
		res = append(res, OptFilterMinSummary(i))
	}
	if len(c.Filter.ExcludedClasses) > 0 {
		res = append(res, OptFilterExcludedClasses(c.Filter.ExcludedClasses))
	}

	i = c.Stats.ReferenceYear
	if i > 0 {
		res = append(res, OptStatsReferenceYear(i))
	}
	i = c.Stats.WindowYears
	if i > 0 {
		res = append(res, OptStatsWindowYears(i))
	}

	s = c.Geocode.URL
	if s != "" {
		res = append(res, OptGeocodeURL(s))
	}
	s = c.Geocode.UserAgent
	if s != "" {
		res = append(res, OptGeocodeUserAgent(s))
	}
	s = c.Geocode.Language
	if s != "" {
		res = append(res, OptGeocodeLanguage(s))
	}
	i = c.Geocode.TTLDays
	if i > 0 {
		res = append(res, OptGeocodeTTLDays(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isNonNegativeInt(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'", name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
