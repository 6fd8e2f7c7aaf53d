package store_test

import (
	"testing"
	"time"

	"github.com/gnames/faunamap/pkg/biostat"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestNewRecordSet(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	recs := []occurrence.Record{
		{ScientificName: "Ursus arctos", Class: "Mammalia"},
		{ScientificName: "Ursus arctos", Class: "Mammalia"},
		{ScientificName: "Parus major", Class: "Aves"},
	}
	stats := biostat.Compute(recs, biostat.Params{ReferenceYear: 2024})
	set := store.NewRecordSet(
		region.Entry{Native: "Амурская область", Key: "Amur"}, recs, stats, now,
	)

	assert.Equal("Amur", set.Key)
	assert.Equal(3, set.TotalRecords)
	assert.Equal(2, set.UniqueSpecies)
	assert.Equal(now, set.LastUpdated)

	sum := set.Summary()
	assert.Equal("Амурская область", sum.Native)
	assert.Equal(3, sum.TotalRecords)
	assert.Zero(sum.SignificantRecords)
	assert.Equal(map[string]int{"Mammalia": 2, "Aves": 1}, sum.ClassDistribution)
}

func TestIndexKeys(t *testing.T) {
	idx := store.Index{
		"Moscow": {Native: "Москва"},
		"Amur":   {Native: "Амурская область"},
		"Altai":  {Native: "Республика Алтай"},
	}
	assert.Equal(t, []string{"Altai", "Amur", "Moscow"}, idx.Keys())
	assert.Empty(t, store.Index{}.Keys())
	assert.Equal(t, "Amur.json", store.FileName("Amur"))
}
