// Package cache defines a content-addressed cache of remote responses.
//
// Entries are addressed by a digest of request parameters and expire after
// their time-to-live. Expired entries are invisible to Get and are purged
// on the next Put.
package cache

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
)

// Params is a set of request parameters.
type Params map[string]string

// Cache stores payloads by parameter sets.
type Cache interface {
	// Get returns the payload of a valid entry.
	Get(params Params) ([]byte, bool)

	// Put stores a payload with its time-to-live and purges expired
	// entries.
	Put(params Params, payload []byte, ttl time.Duration) error

	// Stats returns request and hit counters.
	Stats() Stats

	// Clear removes all entries and resets statistics.
	Clear() error
}

// Entry is one memoized payload.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	TTLHours  float64         `json:"ttl_hours"`
}

// TTL returns the time-to-live of the entry.
func (e Entry) TTL() time.Duration {
	return time.Duration(e.TTLHours * float64(time.Hour))
}

// Valid checks if the entry is younger than its time-to-live.
func (e Entry) Valid(now time.Time) bool {
	return now.Sub(e.CreatedAt) < e.TTL()
}

// Stats keeps usage counters of a cache.
type Stats struct {
	TotalRequests int `json:"total_requests"`
	CacheHits     int `json:"cache_hits"`
	Entries       int `json:"entries"`
}

// HitRatio returns the share of requests answered from cache.
func (s Stats) HitRatio() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.TotalRequests)
}

// Document is the persisted form of a cache.
type Document struct {
	Cache      map[string]Entry `json:"cache"`
	Statistics Stats            `json:"statistics"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Cache: make(map[string]Entry)}
}

// Purge removes entries that are not valid at the given time and returns
// the number of removed entries.
func (d *Document) Purge(now time.Time) int {
	var res int
	for k, v := range d.Cache {
		if !v.Valid(now) {
			delete(d.Cache, k)
			res++
		}
	}
	return res
}

// Key returns a digest of parameters that does not depend on their order.
func Key(params Params) string {
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(params)) {
		sb.WriteString(k)
		sb.WriteByte(0x1f)
		sb.WriteString(params[k])
		sb.WriteByte(0x1e)
	}
	return gnuuid.New(sb.String()).String()
}
