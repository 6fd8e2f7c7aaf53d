package iogbif_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gnames/faunamap/internal/iocache"
	"github.com/gnames/faunamap/internal/iogbif"
	"github.com/gnames/faunamap/pkg/config"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGBIF serves total animal records and counts page requests.
type fakeGBIF struct {
	mu        sync.Mutex
	total     int
	pages     int
	offsets   []int
	status    func(page int) int
	delay     time.Duration
	noEnd     bool
	plantsOdd bool
}

func (fg *fakeGBIF) pageCalls() int {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	return fg.pages
}

func (fg *fakeGBIF) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/occurrence/search":
		fg.search(w, r)
	case "/species/search":
		q := r.URL.Query().Get("q")
		res := map[string]any{"results": []any{}}
		if q == "Ursus arctos" {
			res["results"] = []any{map[string]any{
				"key": 2433433, "scientificName": "Ursus arctos Linnaeus, 1758",
			}}
		}
		_ = json.NewEncoder(w).Encode(res)
	case "/species/2433433/vernacularNames":
		fg.mu.Lock()
		fg.pages++
		fg.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				map[string]any{"vernacularName": "Brown bear", "language": "eng"},
				map[string]any{"vernacularName": "Бурый медведь", "language": "rus"},
			},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (fg *fakeGBIF) search(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	offset, _ := strconv.Atoi(vals.Get("offset"))
	limit, _ := strconv.Atoi(vals.Get("limit"))

	if limit == 0 {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": fg.total, "results": []any{}, "endOfRecords": false,
		})
		return
	}

	fg.mu.Lock()
	fg.pages++
	page := fg.pages
	fg.offsets = append(fg.offsets, offset)
	fg.mu.Unlock()

	if fg.delay > 0 {
		select {
		case <-time.After(fg.delay):
		case <-r.Context().Done():
			return
		}
	}

	if fg.status != nil {
		if code := fg.status(page); code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
	}

	var results []any
	for i := offset; i < min(offset+limit, fg.total); i++ {
		rec := map[string]any{
			"key":              i + 1,
			"scientificName":   fmt.Sprintf("Animalus number%d", i),
			"kingdom":          "Animalia",
			"class":            "Mammalia",
			"decimalLatitude":  55.75,
			"decimalLongitude": 37.62,
			"eventDate":        "2021-05-01",
		}
		if fg.plantsOdd && i%2 == 1 {
			rec["kingdom"] = "Plantae"
			rec["class"] = "Magnoliopsida"
		}
		results = append(results, rec)
	}
	end := offset+limit >= fg.total
	if fg.noEnd {
		end = false
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"offset":       offset,
		"limit":        limit,
		"count":        fg.total,
		"endOfRecords": end,
		"results":      results,
	})
}

type sleepLog struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepLog) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func testConfig(url string, batch int) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptGBIFBaseURL(url),
		config.OptGBIFBatchSize(batch),
		config.OptGBIFRequestDelayMs(0),
	})
	return cfg
}

func setup(
	t *testing.T,
	fg *fakeGBIF,
	batch int,
	opts ...iogbif.Option,
) (gbif.Fetcher, *sleepLog) {
	srv := httptest.NewServer(fg)
	t.Cleanup(srv.Close)
	cfg := testConfig(srv.URL, batch)
	c := iocache.New(filepath.Join(t.TempDir(), "api_cache.json"))
	sl := &sleepLog{}
	opts = append(opts, iogbif.OptSleep(sl.sleep))
	f := iogbif.New(cfg, c, opts...)
	return f, sl
}

func collect(f gbif.Fetcher, q gbif.Query) []occurrence.Record {
	var res []occurrence.Record
	for r := range f.FetchAll(context.Background(), q) {
		res = append(res, r)
	}
	return res
}

func TestFetchAllPaging(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		msg          string
		total, batch int
		noEnd        bool
		calls        int
	}{
		{"partial last page", 7, 3, false, 3},
		{"exact pages", 6, 3, false, 2},
		{"short page ends", 7, 3, true, 3},
		{"one page", 2, 300, false, 1},
		{"empty", 0, 3, false, 1},
	}

	for _, v := range tests {
		fg := &fakeGBIF{total: v.total, noEnd: v.noEnd}
		f, _ := setup(t, fg, v.batch)
		recs := collect(f, gbif.Query{Country: "RU"})
		assert.Len(recs, v.total, v.msg)
		assert.Equal(v.calls, fg.pageCalls(), v.msg)

		sum := f.Summary()
		assert.Equal(v.total, sum.Total, v.msg)
		assert.Equal(v.total, sum.RawRecords, v.msg)
		assert.False(sum.Partial, v.msg)
	}
}

func TestFetchAllMaxRecords(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 1000}
	f, _ := setup(t, fg, 100)
	recs := collect(f, gbif.Query{MaxRecords: 300})
	assert.Len(recs, 300)
	assert.Equal(3, fg.pageCalls())
	assert.Equal([]int{0, 100, 200}, fg.offsets)
}

func TestFetchAllClassifies(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 6, plantsOdd: true}
	f, _ := setup(t, fg, 300)
	recs := collect(f, gbif.Query{})
	assert.Len(recs, 3)
	for _, r := range recs {
		assert.Equal("Animalia", r.Kingdom)
		assert.Equal(occurrence.Remote, r.Source)
	}
	sum := f.Summary()
	assert.Equal(6, sum.RawRecords)
	assert.Equal(3, sum.Records)
}

func TestFetchAllOverloadCeiling(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{
		total:  10,
		status: func(int) int { return http.StatusServiceUnavailable },
	}
	f, sl := setup(t, fg, 3)
	recs := collect(f, gbif.Query{})
	assert.Empty(recs)
	assert.Equal(4, fg.pageCalls())
	assert.Equal(
		[]time.Duration{10 * time.Second, 20 * time.Second, 30 * time.Second},
		sl.delays,
	)
	sum := f.Summary()
	assert.True(sum.Partial)
	assert.Equal(3, sum.Retries)
	assert.Contains(sum.Reason, "503")
}

func TestFetchAllOverloadRecovers(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{
		total: 5,
		status: func(page int) int {
			if page == 2 || page == 3 {
				return http.StatusServiceUnavailable
			}
			return http.StatusOK
		},
	}
	f, sl := setup(t, fg, 3)
	recs := collect(f, gbif.Query{})
	assert.Len(recs, 5)
	assert.Equal(4, fg.pageCalls())
	assert.Len(sl.delays, 2)
	sum := f.Summary()
	assert.False(sum.Partial)
	assert.Equal(2, sum.Retries)
}

func TestFetchAllTimeout(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 5, delay: time.Second}
	f, sl := setup(t, fg, 3, iogbif.OptTimeouts(50*time.Millisecond, 0))
	recs := collect(f, gbif.Query{})
	assert.Empty(recs)
	assert.Equal(4, fg.pageCalls())
	assert.Equal(
		[]time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second},
		sl.delays,
	)
	assert.True(f.Summary().Partial)
}

func TestFetchAllOtherStatusIsPartial(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{
		total: 10,
		status: func(page int) int {
			if page == 2 {
				return http.StatusInternalServerError
			}
			return http.StatusOK
		},
	}
	f, sl := setup(t, fg, 3)
	recs := collect(f, gbif.Query{})
	assert.Len(recs, 3)
	assert.Equal(2, fg.pageCalls())
	assert.Empty(sl.delays)
	sum := f.Summary()
	assert.True(sum.Partial)
	assert.Equal(0, sum.Retries)
}

func TestFetchAllCache(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	fg := &fakeGBIF{total: 7}
	srv := httptest.NewServer(fg)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "api_cache.json")
	cfg := testConfig(srv.URL, 3)
	f := iogbif.New(cfg, iocache.New(path))
	q := gbif.Query{Country: "RU", Classes: []string{"Mammalia", "Aves"}}

	first := collect(f, q)
	require.Len(first, 7)
	assert.Equal(3, fg.pageCalls())

	f = iogbif.New(cfg, iocache.New(path))
	second := collect(f, q)
	assert.Equal(first, second)
	assert.Equal(3, fg.pageCalls())
	assert.Equal(3, f.Summary().CachedBatches)

	stats := iocache.New(path).Stats()
	assert.Equal(3, stats.CacheHits)
	assert.Equal(3, stats.Entries)
}

func TestFetchAllEarlyBreak(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 10}
	f, _ := setup(t, fg, 3)
	var n int
	for range f.FetchAll(context.Background(), gbif.Query{}) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(2, n)
	assert.Equal(1, fg.pageCalls())
}

func TestFetchAllCancelled(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 10}
	f, _ := setup(t, fg, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var n int
	for range f.FetchAll(ctx, gbif.Query{}) {
		n++
	}
	assert.Zero(n)
	assert.True(f.Summary().Partial)
}

func TestSample(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{total: 10, plantsOdd: true}
	f, _ := setup(t, fg, 300)
	recs, err := f.Sample(context.Background(), gbif.Query{}, 4)
	assert.Nil(err)
	assert.Len(recs, 4)
	assert.Equal("Plantae", recs[1].Kingdom)
}

func TestVernacular(t *testing.T) {
	assert := assert.New(t)
	fg := &fakeGBIF{}
	f, _ := setup(t, fg, 300)
	names := gbif.NewNameCache()
	ctx := context.Background()

	assert.Equal("Бурый медведь", f.Vernacular(ctx, names, 2433433))
	assert.Equal("Бурый медведь", f.Vernacular(ctx, names, 2433433))
	assert.Equal(1, fg.pageCalls())

	assert.Equal("", f.Vernacular(ctx, names, 42))
	_, ok := names.Get(42)
	assert.True(ok)
	assert.Equal("", f.Vernacular(ctx, names, 0))
}

func TestSearchSpecies(t *testing.T) {
	assert := assert.New(t)
	f, _ := setup(t, &fakeGBIF{}, 300)
	ctx := context.Background()

	key, ok := f.SearchSpecies(ctx, "Ursus arctos")
	assert.True(ok)
	assert.Equal(2433433, key)

	_, ok = f.SearchSpecies(ctx, "Nonexistus")
	assert.False(ok)
	_, ok = f.SearchSpecies(ctx, " ")
	assert.False(ok)
}
