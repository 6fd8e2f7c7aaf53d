package localdb_test

import (
	"testing"

	"github.com/gnames/faunamap/pkg/localdb"
	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var data = []byte(`{
  "categories": [
    {
      "class": "Mammalia",
      "class_local": "Млекопитающие",
      "phylum_local": "Хордовые",
      "species": [
        {"scientific_name": "Ursus arctos", "common_name": "Бурый медведь", "zones": ["all"]},
        {"scientific_name": "Martes zibellina", "common_name": "Соболь", "zones": ["siberia", "far_east"]},
        {"scientific_name": "Erinaceus europaeus", "common_name": "Обыкновенный ёж", "zones": ["european"]}
      ]
    },
    {
      "class": "Aves",
      "class_local": "Птицы",
      "species": [
        {"scientific_name": "Parus major", "common_name": "Большая синица", "zones": ["all"]}
      ]
    }
  ]
}`)

func TestForRegion(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	doc, err := localdb.Parse(data)
	require.Nil(err)
	db := localdb.New(doc)
	assert.Equal(4, db.Size())

	tests := []struct {
		msg   string
		entry region.Entry
		names []string
	}{
		{
			"far east",
			region.Entry{Native: "Амурская область", Zones: []string{"far_east"}},
			[]string{"Ursus arctos", "Martes zibellina", "Parus major"},
		},
		{
			"europe",
			region.Entry{Native: "Москва", Zones: []string{"european"}},
			[]string{"Ursus arctos", "Erinaceus europaeus", "Parus major"},
		},
		{
			"no zones",
			region.Entry{Native: "Пермский край"},
			[]string{"Ursus arctos", "Parus major"},
		},
	}

	for _, v := range tests {
		recs := db.ForRegion(v.entry)
		var names []string
		for _, r := range recs {
			names = append(names, r.ScientificName)
			assert.Equal(occurrence.LocalDB, r.Source, v.msg)
			assert.Equal(v.entry.Native, r.Region, v.msg)
			assert.Nil(r.Latitude, v.msg)
			assert.Empty(r.EventDate, v.msg)
		}
		assert.Equal(v.names, names, v.msg)
	}

	rec := db.ForRegion(region.Entry{})[0]
	assert.Equal("Mammalia", rec.Class)
	assert.Equal("Млекопитающие", rec.DisplayClass())
	assert.Equal("Хордовые", rec.Translation.Phylum)
	assert.Equal("Бурый медведь", rec.CommonName)
}

func TestCommonName(t *testing.T) {
	assert := assert.New(t)
	doc, err := localdb.Parse(data)
	assert.Nil(err)
	db := localdb.New(doc)

	name, ok := db.CommonName("ursus  ARCTOS")
	assert.True(ok)
	assert.Equal("Бурый медведь", name)

	_, ok = db.CommonName("Canis lupus")
	assert.False(ok)
}

func TestParseBad(t *testing.T) {
	_, err := localdb.Parse([]byte("{not json"))
	assert.NotNil(t, err)
}
