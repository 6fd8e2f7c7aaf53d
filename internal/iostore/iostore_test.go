package iostore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/faunamap/internal/iostore"
	"github.com/gnames/faunamap/pkg/biostat"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []occurrence.Record {
	return []occurrence.Record{
		{
			ScientificName: "Ursus arctos", Kingdom: "Animalia", Class: "Mammalia",
			Latitude: occurrence.Float(50.1), Longitude: occurrence.Float(127.5),
			EventDate: "2022-06-01", Source: occurrence.Remote,
		},
		{
			ScientificName: "Ursus arctos", Kingdom: "Animalia", Class: "Mammalia",
			EventDate: "2023", Source: occurrence.Remote,
		},
		{
			ScientificName: "Lynx lynx", Kingdom: "Animalia", Class: "Mammalia",
			Source: occurrence.LocalDB, Region: "Амурская область",
			CommonName: "Обыкновенная рысь",
		},
	}
}

func newStore(t *testing.T) (store.Store, string) {
	dir := t.TempDir()
	s := iostore.New(
		filepath.Join(dir, "regions"),
		filepath.Join(dir, "regions_keys.json"),
	)
	return s, dir
}

func TestSaveLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s, dir := newStore(t)

	e := region.Entry{Native: "Амурская область", Key: "Amur"}
	recs := records()
	stats := biostat.Compute(recs, biostat.Params{ReferenceYear: 2025})
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	set := store.NewRecordSet(e, recs, stats, now)
	assert.Equal(3, set.TotalRecords)
	assert.Equal(2, set.UniqueSpecies)

	require.Nil(s.Save(set))
	_, err := os.Stat(filepath.Join(dir, "regions", "Amur.json"))
	require.Nil(err)

	res, ok := s.Load("Amur")
	require.True(ok)
	assert.Equal("Amur", res.Key)
	assert.Equal("Амурская область", res.Native)
	assert.True(now.Equal(res.LastUpdated))
	assert.Equal(recs, res.Records)
	assert.Equal(stats.TotalSpecies, res.Stats.TotalSpecies)
	assert.Equal(stats.RecordsByYear, res.Stats.RecordsByYear)
	assert.Equal("Mammalia", res.Stats.DominantClass)

	idx := s.Index()
	assert.Equal([]string{"Amur"}, idx.Keys())
	assert.Equal("Amur.json", idx["Amur"].File)
	assert.Equal(3, idx["Amur"].TotalRecords)

	sum := res.Summary()
	assert.Equal(map[string]int{"Mammalia": 3}, sum.ClassDistribution)
}

func TestSaveOverwrites(t *testing.T) {
	assert := assert.New(t)
	s, _ := newStore(t)

	moscow := region.Entry{Native: "Москва", Key: "Moscow City"}
	amur := region.Entry{Native: "Амурская область", Key: "Amur"}
	recs := records()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(s.Save(store.NewRecordSet(amur, recs, biostat.Stats{}, now)))
	assert.Nil(s.Save(store.NewRecordSet(moscow, recs[:1], biostat.Stats{}, now)))
	assert.Nil(s.Save(store.NewRecordSet(amur, recs[:2], biostat.Stats{}, now)))

	res, ok := s.Load("Amur")
	assert.True(ok)
	assert.Len(res.Records, 2)
	assert.Equal([]string{"Amur", "Moscow City"}, s.Index().Keys())
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	assert := assert.New(t)
	s, dir := newStore(t)

	_, ok := s.Load("Amur")
	assert.False(ok)
	assert.Empty(s.Index())

	regions := filepath.Join(dir, "regions")
	assert.Nil(os.MkdirAll(regions, 0755))
	assert.Nil(os.WriteFile(filepath.Join(regions, "Amur.json"), []byte("{"), 0644))
	_, ok = s.Load("Amur")
	assert.False(ok)

	idxPath := filepath.Join(dir, "regions_keys.json")
	assert.Nil(os.WriteFile(idxPath, []byte("[1,2"), 0644))
	assert.Empty(s.Index())

	e := region.Entry{Native: "Москва", Key: "Moscow City"}
	assert.Nil(s.Save(store.NewRecordSet(e, nil, biostat.Stats{}, time.Now())))
	assert.Len(s.Index(), 1)
}

func TestSaveBadKey(t *testing.T) {
	s, _ := newStore(t)
	for _, key := range []string{"", "  ", "../etc"} {
		e := region.Entry{Native: "X", Key: key}
		err := s.Save(store.NewRecordSet(e, nil, biostat.Stats{}, time.Now()))
		assert.NotNil(t, err, key)
	}
}

func TestLoadIgnoresIndexFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s, dir := newStore(t)

	outside := store.NewRecordSet(
		region.Entry{Native: "Чужой", Key: "Amur"},
		records(), biostat.Stats{}, time.Now(),
	)
	require.Nil(iostore.New(dir, filepath.Join(dir, "other.json")).Save(outside))
	_, err := os.Stat(filepath.Join(dir, "Amur.json"))
	require.Nil(err)

	idx := `{"Amur": {"region_name": "Амурская область", "file": "../Amur.json"}}`
	idxPath := filepath.Join(dir, "regions_keys.json")
	require.Nil(os.WriteFile(idxPath, []byte(idx), 0644))

	_, ok := s.Load("Amur")
	assert.False(ok)

	e := region.Entry{Native: "Амурская область", Key: "Amur"}
	require.Nil(s.Save(store.NewRecordSet(e, records()[:1], biostat.Stats{}, time.Now())))
	res, ok := s.Load("Amur")
	assert.True(ok)
	assert.Equal("Амурская область", res.Native)
	assert.Len(res.Records, 1)

	for _, key := range []string{"", "../Amur", `..\Amur`} {
		_, ok = s.Load(key)
		assert.False(ok, key)
	}
}
