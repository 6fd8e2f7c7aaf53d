// Package iogeocode implements region.Locator with a Nominatim-compatible
// reverse-geocoding service and a file cache of located points.
package iogeocode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/gnfmt"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const timeout = 10 * time.Second

const (
	// breakerFailures is the number of consecutive failures that stops
	// requests to the service.
	breakerFailures = 3
	// breakerPause is how long requests stay stopped.
	breakerPause = time.Minute
)

type locator struct {
	cfg      config.GeocodeConfig
	resolver *region.Resolver
	cache    cache.Cache
	ttl      time.Duration
	client   *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[point]
	enc      gnfmt.GNjson
}

// Option configures the locator.
type Option func(*locator)

// OptHTTPClient replaces the default HTTP client.
func OptHTTPClient(c *http.Client) Option {
	return func(l *locator) {
		if c != nil {
			l.client = c
		}
	}
}

// OptRate replaces the default pace of one request per second.
func OptRate(r rate.Limit) Option {
	return func(l *locator) {
		l.limiter = rate.NewLimiter(r, 1)
	}
}

// New creates a locator. Native names returned by the service are
// resolved to regions with res.
func New(
	cfg *config.Config,
	res *region.Resolver,
	c cache.Cache,
	opts ...Option,
) region.Locator {
	l := &locator{
		cfg:      cfg.Geocode,
		resolver: res,
		cache:    c,
		ttl:      time.Duration(cfg.Geocode.TTLDays) * 24 * time.Hour,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		enc:      gnfmt.GNjson{},
	}
	l.breaker = gobreaker.NewCircuitBreaker[point](gobreaker.Settings{
		Name:    "geocoder",
		Timeout: breakerPause,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Geocoder state changed",
				"from", from.String(), "to", to.String(),
			)
		},
	})
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// point is the cached outcome of a lookup.
type point struct {
	Native  string            `json:"region_name"`
	Address map[string]string `json:"address,omitempty"`
}

type reverseResponse struct {
	Address map[string]any `json:"address"`
}

// Locate returns the region of a point. Failed lookups are not cached.
func (l *locator) Locate(ctx context.Context, lat, lon float64) region.Entry {
	params := cache.Params{"coordinates": CacheKey(lat, lon)}

	var p point
	if data, ok := l.cache.Get(params); ok {
		if err := l.enc.Decode(data, &p); err == nil && p.Native != "" {
			return l.resolver.Resolve(p.Native)
		}
	}

	p, err := l.breaker.Execute(func() (point, error) {
		return l.reverse(ctx, lat, lon)
	})
	if err != nil {
		slog.Warn("Reverse geocoding failed",
			"lat", lat, "lon", lon, "error", err,
		)
		return region.Unknown()
	}
	if p.Native == "" {
		return region.Unknown()
	}

	data, err := l.enc.Encode(p)
	if err == nil {
		err = l.cache.Put(params, data, l.ttl)
	}
	if err != nil {
		slog.Warn("Cannot cache coordinates", "error", err)
	}
	return l.resolver.Resolve(p.Native)
}

// CacheKey rounds coordinates to four decimals.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f_%.4f", lat, lon)
}

func (l *locator) reverse(ctx context.Context, lat, lon float64) (point, error) {
	var res point
	if err := l.limiter.Wait(ctx); err != nil {
		return res, err
	}

	vals := url.Values{}
	vals.Set("format", "json")
	vals.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	vals.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	vals.Set("accept-language", l.cfg.Language)
	u := l.cfg.URL + "/reverse?" + vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return res, err
	}
	req.Header.Set("User-Agent", l.cfg.UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return res, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return res, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return res, err
	}

	var rr reverseResponse
	if err = l.enc.Decode(body, &rr); err != nil {
		return res, err
	}

	res.Address = make(map[string]string)
	for k, v := range rr.Address {
		if s, ok := v.(string); ok {
			res.Address[k] = s
		}
	}
	for _, k := range []string{"state", "region", "county"} {
		if v := strings.TrimSpace(res.Address[k]); v != "" {
			res.Native = v
			break
		}
	}
	return res, nil
}
