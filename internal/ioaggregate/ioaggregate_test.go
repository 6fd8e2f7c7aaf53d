package ioaggregate_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/faunamap/internal/ioaggregate"
	"github.com/gnames/faunamap/internal/iocache"
	"github.com/gnames/faunamap/internal/iotaxon"
	"github.com/gnames/faunamap/internal/iotesting"
	"github.com/gnames/faunamap/pkg/gbif"
	"github.com/gnames/faunamap/pkg/localdb"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/faunamap/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var amur = region.Entry{Native: "Амурская область", Key: "Amur", Zones: []string{"far_east"}}

func animal(name, class string) occurrence.Record {
	return occurrence.Record{
		ScientificName: name,
		Kingdom:        "Animalia",
		Class:          class,
		Source:         occurrence.Remote,
	}
}

func localDB(t *testing.T) *localdb.DB {
	doc, err := localdb.Parse([]byte(`{"categories": [{
  "class": "Mammalia", "class_local": "Млекопитающие",
  "species": [
    {"scientific_name": "Ursus arctos", "common_name": "Бурый медведь", "zones": ["all"]},
    {"scientific_name": "Martes zibellina", "common_name": "Соболь", "zones": ["far_east"]},
    {"scientific_name": "Erinaceus europaeus", "common_name": "Ёж", "zones": ["european"]}
  ]}]}`))
	require.Nil(t, err)
	return localdb.New(doc)
}

func TestRemoteStrategies(t *testing.T) {
	assert := assert.New(t)
	ff := &iotesting.FakeFetcher{
		Records: func(q gbif.Query) []occurrence.Record {
			if q.Kingdom == "Animalia" {
				return []occurrence.Record{animal("Ursus arctos", "Mammalia")}
			}
			return nil
		},
	}
	cfg := iotesting.TestConfig(t)
	a := ioaggregate.New(cfg, ff, nil, nil)

	recs := a.Remote(context.Background(), amur)
	assert.Len(recs, 1)
	qs := ff.Queries()
	assert.Len(qs, 2)
	assert.Equal([]string{"HUMAN_OBSERVATION", "OBSERVATION"}, qs[0].BasisOfRecord)
	assert.Equal("Amur", qs[1].StateProvince)

	recs = a.Remote(context.Background(), region.Unknown())
	assert.Empty(recs)
	assert.Len(ff.Queries(), 2)
}

func TestRemoteKnownSpecies(t *testing.T) {
	assert := assert.New(t)
	ff := &iotesting.FakeFetcher{
		Records: func(q gbif.Query) []occurrence.Record {
			switch q.ScientificName {
			case "Ursus arctos", "Lynx lynx":
				return []occurrence.Record{
					animal(q.ScientificName, "Mammalia"),
					animal(q.ScientificName, "Mammalia"),
				}
			}
			return nil
		},
	}
	a := ioaggregate.New(iotesting.TestConfig(t), ff, nil, nil)
	recs := a.Remote(context.Background(), amur)
	assert.Len(recs, 4)
	assert.Len(ff.Queries(), 3+10)
}

func TestMergedRecords(t *testing.T) {
	assert := assert.New(t)
	ff := &iotesting.FakeFetcher{
		Records: func(q gbif.Query) []occurrence.Record {
			if len(q.BasisOfRecord) == 0 {
				return nil
			}
			return []occurrence.Record{
				animal("Ursus arctos", "Mammalia"),
				animal("Ursus arctos", "Mammalia"),
				animal("Apis mellifera", "Insecta"),
				animal("Aves", "Aves"),
				animal("Parus major", "Aves"),
			}
		},
	}
	dict, err := taxon.ParseDictionary([]byte("class:\n  Mammalia: Млекопитающие\n  Aves: Птицы\n"))
	require.Nil(t, err)
	c := iocache.New(filepath.Join(t.TempDir(), "tr.json"))
	tr := iotaxon.New(dict, c, time.Hour, ff, localDB(t))
	cfg := iotesting.TestConfig(t)
	a := ioaggregate.New(cfg, ff, localDB(t), tr)

	recs := a.MergedRecords(context.Background(), amur, 1)
	var names []string
	for _, r := range recs {
		names = append(names, r.ScientificName)
	}
	assert.Equal([]string{
		"Ursus arctos", "Ursus arctos", "Parus major", "Martes zibellina",
	}, names)

	assert.Equal(occurrence.Remote, recs[0].Source)
	assert.Equal("Бурый медведь", recs[0].CommonName)
	assert.Equal("Млекопитающие", recs[0].DisplayClass())
	assert.Equal(occurrence.LocalDB, recs[3].Source)
	assert.Equal("Соболь", recs[3].CommonName)

	recs = a.Significant(recs, 2)
	assert.Len(recs, 2)
}
