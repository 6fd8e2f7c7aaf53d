// Package iocache implements cache.Cache as one JSON document on disk.
//
// Every call reads the document, modifies it and writes it back. There is
// no locking, concurrent use by several processes is not supported.
package iocache

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/faunamap/pkg/cache"
	"github.com/gnames/gnfmt"
)

type fileCache struct {
	path string
	now  func() time.Time
	enc  gnfmt.GNjson
}

// Option configures the file cache.
type Option func(*fileCache)

// OptClock replaces the wall clock, mostly in tests.
func OptClock(now func() time.Time) Option {
	return func(fc *fileCache) {
		if now != nil {
			fc.now = now
		}
	}
}

// New creates a cache kept in the file at path. The file and its
// directory are created on the first write.
func New(path string, opts ...Option) cache.Cache {
	res := &fileCache{
		path: path,
		now:  time.Now,
		enc:  gnfmt.GNjson{Pretty: true},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Get returns the payload of a valid entry and updates usage counters.
func (fc *fileCache) Get(params cache.Params) ([]byte, bool) {
	doc := fc.load()
	doc.Statistics.TotalRequests++

	var res []byte
	e, ok := doc.Cache[cache.Key(params)]
	ok = ok && e.Valid(fc.now())
	if ok {
		doc.Statistics.CacheHits++
		res = e.Data
	}

	if err := fc.save(doc); err != nil {
		slog.Warn("Cannot save cache statistics", "path", fc.path, "error", err)
	}
	return res, ok
}

// Put stores the payload and purges expired entries.
func (fc *fileCache) Put(
	params cache.Params,
	payload []byte,
	ttl time.Duration,
) error {
	now := fc.now()
	doc := fc.load()
	if n := doc.Purge(now); n > 0 {
		slog.Debug("Purged expired cache entries", "count", n)
	}
	doc.Cache[cache.Key(params)] = cache.Entry{
		Data:      payload,
		CreatedAt: now,
		TTLHours:  ttl.Hours(),
	}
	return fc.save(doc)
}

// Stats returns usage counters and the number of valid entries.
func (fc *fileCache) Stats() cache.Stats {
	doc := fc.load()
	res := doc.Statistics
	now := fc.now()
	res.Entries = 0
	for _, v := range doc.Cache {
		if v.Valid(now) {
			res.Entries++
		}
	}
	return res
}

// Clear removes all entries and statistics.
func (fc *fileCache) Clear() error {
	return fc.save(cache.NewDocument())
}

// load reads the document. Missing or corrupt files give an empty
// document.
func (fc *fileCache) load() *cache.Document {
	res := cache.NewDocument()
	data, err := os.ReadFile(fc.path)
	if errors.Is(err, os.ErrNotExist) {
		return res
	}
	if err != nil {
		slog.Warn("Cannot read cache, starting empty", "path", fc.path, "error", err)
		return res
	}

	if err = fc.enc.Decode(data, res); err != nil {
		slog.Warn("Corrupt cache, starting empty", "path", fc.path, "error", err)
		return cache.NewDocument()
	}
	if res.Cache == nil {
		res.Cache = make(map[string]cache.Entry)
	}
	return res
}

func (fc *fileCache) save(doc *cache.Document) error {
	data, err := fc.enc.Encode(doc)
	if err != nil {
		return WriteCacheError(fc.path, err)
	}
	if err = os.MkdirAll(filepath.Dir(fc.path), 0755); err != nil {
		return WriteCacheError(fc.path, err)
	}
	if err = os.WriteFile(fc.path, data, 0644); err != nil {
		return WriteCacheError(fc.path, err)
	}
	return nil
}
