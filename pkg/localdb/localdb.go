// Package localdb provides the curated list of well-known animals of
// regions. It is used when remote data is scarce and as a source of
// common names.
package localdb

import (
	"strings"

	"github.com/gnames/faunamap/pkg/occurrence"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/gnfmt"
)

// Document is the persisted form of the database.
type Document struct {
	Categories []Category `json:"categories"`
}

// Category groups species of one class.
type Category struct {
	// Class is the Latin name of the class.
	Class string `json:"class"`
	// ClassLocal is the localized name of the class.
	ClassLocal string `json:"class_local"`
	// PhylumLocal is the localized name of the phylum.
	PhylumLocal string    `json:"phylum_local,omitempty"`
	Species     []Species `json:"species"`
}

// Species is one animal of the database.
type Species struct {
	ScientificName string `json:"scientific_name"`
	CommonName     string `json:"common_name"`
	// Zones where the animal lives, region.ZoneAll means everywhere.
	Zones []string `json:"zones"`
}

// DB answers questions about the curated animals.
type DB struct {
	doc    Document
	common map[string]string
}

// Parse decodes a JSON document.
func Parse(data []byte) (Document, error) {
	var res Document
	enc := gnfmt.GNjson{}
	err := enc.Decode(data, &res)
	return res, err
}

// New creates a database from a document.
func New(doc Document) *DB {
	res := &DB{doc: doc, common: make(map[string]string)}
	for _, c := range doc.Categories {
		for _, sp := range c.Species {
			k := key(sp.ScientificName)
			if _, ok := res.common[k]; ok || k == "" {
				continue
			}
			res.common[k] = strings.TrimSpace(sp.CommonName)
		}
	}
	return res
}

// Document returns the source document.
func (db *DB) Document() Document {
	return db.doc
}

// Size returns the number of species entries.
func (db *DB) Size() int {
	var res int
	for _, c := range db.doc.Categories {
		res += len(c.Species)
	}
	return res
}

// ForRegion returns records of animals living in the zones of a region.
// Animals of region.ZoneAll are returned for every region.
func (db *DB) ForRegion(e region.Entry) []occurrence.Record {
	var res []occurrence.Record
	for _, c := range db.doc.Categories {
		for _, sp := range c.Species {
			if !lives(sp, e) {
				continue
			}
			res = append(res, occurrence.Record{
				ScientificName: strings.TrimSpace(sp.ScientificName),
				Kingdom:        "Animalia",
				Class:          c.Class,
				Source:         occurrence.LocalDB,
				Region:         e.Native,
				CommonName:     strings.TrimSpace(sp.CommonName),
				NameSource:     string(occurrence.LocalDB),
				Translation: occurrence.Translation{
					Phylum: c.PhylumLocal,
					Class:  c.ClassLocal,
				},
			})
		}
	}
	return res
}

// CommonName returns the common name of a species, matching scientific
// names case-insensitively.
func (db *DB) CommonName(name string) (string, bool) {
	res, ok := db.common[key(name)]
	return res, ok && res != ""
}

func lives(sp Species, e region.Entry) bool {
	for _, z := range sp.Zones {
		if e.HasZone(z) {
			return true
		}
	}
	return false
}

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
