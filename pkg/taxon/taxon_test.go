package taxon_test

import (
	"testing"

	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionary(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	data := []byte(`
phylum:
  Chordata: Хордовые
class:
  Mammalia: Млекопитающие
  Aves: Птицы
  " ": Пусто
species:
  Mammalia: Звери
  Phalacrocorax carbo: Большой баклан
`)
	d, err := taxon.ParseDictionary(data)
	require.Nil(err)
	assert.Equal(4, d.Len())

	tests := []struct {
		name, res string
		ok        bool
	}{
		{"Chordata", "Хордовые", true},
		{" Aves ", "Птицы", true},
		{"Mammalia", "Млекопитающие", true},
		{"Phalacrocorax carbo", "Большой баклан", true},
		{"Insecta", "", false},
	}
	for _, v := range tests {
		res, ok := d.Lookup(v.name)
		assert.Equal(v.ok, ok, v.name)
		assert.Equal(v.res, res, v.name)
	}

	_, err = taxon.ParseDictionary([]byte("class: [broken"))
	assert.NotNil(err)
}

func TestValueAndSetTranslation(t *testing.T) {
	assert := assert.New(t)
	r := occurrence.Record{
		Phylum: "Chordata", Class: "Aves", Order: "Passeriformes",
		Family: "Paridae", Genus: "Parus", Species: "Parus major",
	}
	for _, rank := range taxon.Ranks {
		val := taxon.Value(r, rank)
		assert.NotEmpty(val, rank)
		taxon.SetTranslation(&r.Translation, rank, "ru-"+val)
	}
	assert.Equal("ru-Aves", r.Translation.Class)
	assert.Equal("ru-Parus major", r.Translation.Species)
	assert.Equal("ru-Aves", r.DisplayClass())
	assert.Empty(taxon.Value(r, taxon.Rank("kingdom")))
}

func TestCacheParams(t *testing.T) {
	p := taxon.CacheParams("Aves", taxon.Class)
	assert.Equal(t, "Aves", p["name"])
	assert.Equal(t, "class", p["rank"])
}
