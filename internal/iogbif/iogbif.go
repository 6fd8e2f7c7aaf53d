// Package iogbif implements gbif.Fetcher over the GBIF REST API.
//
// Requests are sequential and paced by a rate limiter. Occurrence pages
// are memoized in a cache.Cache and retried on overload (HTTP 503) and on
// timeouts. Any other failure ends a run with the records collected so
// far.
package iogbif

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/faunamap/pkg/classify"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/parserpool"
	"github.com/gnames/faunamap/pkg/retry"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	occurrencePath = "/occurrence/search"
	speciesPath    = "/species/search"
)

type fetcher struct {
	cfg          config.GBIFConfig
	cache        cache.Cache
	ttl          time.Duration
	parser       parserpool.Pool
	client       *http.Client
	limiter      *rate.Limiter
	sleep        retry.SleepFunc
	timeout      time.Duration
	spTimeout    time.Duration
	withProgress bool
	enc          gnfmt.GNjson
	summary      gbif.Summary
}

// Option configures the fetcher.
type Option func(*fetcher)

// OptParser sets a name parser used to fill canonical names of records.
func OptParser(p parserpool.Pool) Option {
	return func(f *fetcher) {
		f.parser = p
	}
}

// OptHTTPClient replaces the default HTTP client.
func OptHTTPClient(c *http.Client) Option {
	return func(f *fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// OptSleep replaces the backoff sleep, mostly in tests.
func OptSleep(fn retry.SleepFunc) Option {
	return func(f *fetcher) {
		if fn != nil {
			f.sleep = fn
		}
	}
}

// OptTimeouts overrides configured request timeouts of occurrence and
// species calls.
func OptTimeouts(occ, species time.Duration) Option {
	return func(f *fetcher) {
		if occ > 0 {
			f.timeout = occ
		}
		if species > 0 {
			f.spTimeout = species
		}
	}
}

// New creates a fetcher. Pages are memoized in c for the configured
// cache time-to-live.
func New(cfg *config.Config, c cache.Cache, opts ...Option) gbif.Fetcher {
	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.GBIF.RequestDelayMs > 0 {
		delay := time.Duration(cfg.GBIF.RequestDelayMs) * time.Millisecond
		lim = rate.NewLimiter(rate.Every(delay), 1)
	}
	res := &fetcher{
		cfg:          cfg.GBIF,
		cache:        c,
		ttl:          time.Duration(cfg.Cache.TTLHours) * time.Hour,
		client:       &http.Client{},
		limiter:      lim,
		sleep:        retry.Sleep,
		timeout:      time.Duration(cfg.GBIF.TimeoutSec) * time.Second,
		spTimeout:    time.Duration(cfg.GBIF.SpeciesTimeoutSec) * time.Second,
		withProgress: cfg.WithProgress,
		enc:          gnfmt.GNjson{},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// FetchAll pages through the results of q. The count probe goes first
// and is never cached. Paging stops on an empty or short page, on the
// end-of-records flag, on the record cap or on a failure.
func (f *fetcher) FetchAll(
	ctx context.Context,
	q gbif.Query,
) iter.Seq[occurrence.Record] {
	return func(yield func(occurrence.Record) bool) {
		var sum gbif.Summary
		defer func() { f.summary = sum }()

		limit := f.cfg.BatchSize
		if q.Limit > 0 {
			limit = q.Limit
		}
		maxRecs := f.cfg.MaxRecords
		if q.MaxRecords > 0 {
			maxRecs = q.MaxRecords
		}

		log := slog.With(
			"session", uuid.New().String(),
			"query", q.Values().Encode(),
		)

		total, err := f.Count(ctx, q)
		if err != nil {
			log.Warn("Count probe failed", "error", err)
		}
		sum.Total = total

		var bar *pb.ProgressBar
		if f.withProgress && total > 0 {
			bar = pb.Full.Start(min(total, maxRecs))
			bar.Set(pb.CleanOnFinish, true)
			defer bar.Finish()
		}

		for offset := 0; offset < maxRecs; offset += limit {
			b, cached, retries, err := f.batch(ctx, q, offset, limit)
			sum.Retries += retries
			if err != nil {
				sum.Partial = true
				sum.Reason = err.Error()
				log.Warn("Fetching stopped early",
					"offset", offset,
					"records", sum.Records,
					"error", err,
				)
				return
			}
			sum.Batches++
			if cached {
				sum.CachedBatches++
			}
			sum.RawRecords += b.RawCount
			if bar != nil {
				bar.Add(b.RawCount)
			}

			for _, r := range b.Records {
				sum.Records++
				if !yield(r) {
					return
				}
			}

			if b.RawCount == 0 || b.RawCount < limit || b.EndOfRecords {
				break
			}
		}
		log.Info("Fetching finished",
			"batches", sum.Batches,
			"cached", sum.CachedBatches,
			"raw", sum.RawRecords,
			"records", sum.Records,
			"retries", sum.Retries,
		)
	}
}

func (f *fetcher) Summary() gbif.Summary {
	return f.summary
}

// Count runs a search with zero limit.
func (f *fetcher) Count(ctx context.Context, q gbif.Query) (int, error) {
	var resp gbif.SearchResponse
	err := f.getJSON(ctx, occurrencePath, q.PageValues(0, 0), f.timeout, &resp)
	if err != nil {
		return 0, RequestError(occurrencePath, err)
	}
	return resp.Count, nil
}

// Sample returns up to n records of the first page without classification
// and without cache.
func (f *fetcher) Sample(
	ctx context.Context,
	q gbif.Query,
	n int,
) ([]occurrence.Record, error) {
	if n <= 0 {
		return nil, nil
	}
	var resp gbif.SearchResponse
	err := f.getJSON(ctx, occurrencePath, q.PageValues(0, n), f.timeout, &resp)
	if err != nil {
		return nil, RequestError(occurrencePath, err)
	}
	res := make([]occurrence.Record, 0, len(resp.Results))
	for _, m := range resp.Results {
		res = append(res, f.record(m))
	}
	return res, nil
}

// Vernacular is not retried, a failed lookup is memoized as a miss.
func (f *fetcher) Vernacular(
	ctx context.Context,
	names *gbif.NameCache,
	speciesKey int,
) string {
	if speciesKey <= 0 {
		return ""
	}
	if names != nil {
		if res, ok := names.Get(speciesKey); ok {
			return res
		}
	}

	var res string
	var resp gbif.VernacularResponse
	path := "/species/" + strconv.Itoa(speciesKey) + "/vernacularNames"
	err := f.getJSON(ctx, path, nil, f.spTimeout, &resp)
	if err != nil {
		slog.Debug("Vernacular lookup failed", "key", speciesKey, "error", err)
	}
	for _, v := range resp.Results {
		if strings.EqualFold(v.Language, f.cfg.Language) &&
			strings.TrimSpace(v.VernacularName) != "" {
			res = strings.TrimSpace(v.VernacularName)
			break
		}
	}

	if names != nil && ctx.Err() == nil {
		names.Set(speciesKey, res)
	}
	return res
}

// SearchSpecies returns the key of the first search hit.
func (f *fetcher) SearchSpecies(ctx context.Context, name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	vals := url.Values{}
	vals.Set("q", name)
	vals.Set("limit", "1")
	var resp gbif.SpeciesResponse
	err := f.getJSON(ctx, speciesPath, vals, f.spTimeout, &resp)
	if err != nil {
		slog.Debug("Species search failed", "name", name, "error", err)
		return 0, false
	}
	if len(resp.Results) == 0 || resp.Results[0].Key == 0 {
		return 0, false
	}
	return resp.Results[0].Key, true
}

// batch returns a classified page from the cache or from the network.
func (f *fetcher) batch(
	ctx context.Context,
	q gbif.Query,
	offset, limit int,
) (gbif.Batch, bool, int, error) {
	var res gbif.Batch
	vals := q.PageValues(offset, limit)
	params := gbif.CacheParams(vals)

	if data, ok := f.cache.Get(params); ok {
		if err := f.enc.Decode(data, &res); err == nil {
			return res, true, 0, nil
		}
		slog.Warn("Ignoring undecodable cache entry", "offset", offset)
		res = gbif.Batch{}
	}

	resp, retries, err := retry.Do(ctx, f.policy(),
		func(ctx context.Context) (*gbif.SearchResponse, error) {
			var resp gbif.SearchResponse
			err := f.getJSON(ctx, occurrencePath, vals, f.timeout, &resp)
			if err != nil {
				return nil, err
			}
			return &resp, nil
		},
	)
	if err != nil {
		return res, false, retries, err
	}

	res.RawCount = len(resp.Results)
	res.EndOfRecords = resp.EndOfRecords
	for _, m := range resp.Results {
		r := f.record(m)
		if classify.Classify(r).IsAccepted() {
			res.Records = append(res.Records, r)
		}
	}

	data, err := f.enc.Encode(res)
	if err == nil {
		err = f.cache.Put(params, data, f.ttl)
	}
	if err != nil {
		slog.Warn("Cannot cache batch", "offset", offset, "error", err)
	}
	return res, false, retries, nil
}

func (f *fetcher) record(m map[string]any) occurrence.Record {
	res := gbif.RecordFromMap(m)
	if f.parser != nil {
		res.CanonicalName = f.parser.Canonical(res.ScientificName)
	}
	return res
}

func (f *fetcher) policy() retry.Policy {
	overload := retry.Linear(
		time.Duration(f.cfg.OverloadBackoffMs) * time.Millisecond,
	)
	timeout := retry.Fixed(
		time.Duration(f.cfg.TimeoutBackoffMs) * time.Millisecond,
	)
	return retry.Policy{
		MaxRetries: f.cfg.MaxRetries,
		Retryable: func(err error) bool {
			return isOverload(err) || isTimeout(err)
		},
		Backoff: func(n int, err error) time.Duration {
			if isOverload(err) {
				return overload(n, err)
			}
			return timeout(n, err)
		},
		OnRetry: func(n int, err error, delay time.Duration) {
			slog.Warn("Retrying request",
				"retry", n,
				"delay", delay.String(),
				"error", err,
			)
		},
		Sleep: f.sleep,
	}
}

// getJSON waits for the rate limiter, performs a GET request with its own
// timeout and decodes the body into out. Errors are returned unwrapped so
// that the retry policy can inspect them.
func (f *fetcher) getJSON(
	ctx context.Context,
	path string,
	vals url.Values,
	timeout time.Duration,
	out any,
) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	u := f.cfg.BaseURL + path
	if len(vals) > 0 {
		u += "?" + vals.Encode()
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return f.timeoutOr(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return f.timeoutOr(ctx, reqCtx, err)
	}

	if err = f.enc.Decode(body, out); err != nil {
		return fmt.Errorf("cannot decode %s: %w", u, err)
	}
	return nil
}

// timeoutOr marks errors caused by the request deadline as timeouts, while
// cancellation of the parent context stays as it is.
func (f *fetcher) timeoutOr(ctx, reqCtx context.Context, err error) error {
	if ctx.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return errors.Join(errTimeout, err)
	}
	return err
}
