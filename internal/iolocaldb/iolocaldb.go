// Package iolocaldb loads the curated local species database from disk.
package iolocaldb

import (
	"log/slog"
	"os"

	"github.com/gnames/faunamap/pkg/localdb"
)

// Load reads the database at path. If the file cannot be read or parsed,
// the default document def is used instead. An error is returned only
// when def is broken as well.
func Load(path string, def []byte) (*localdb.DB, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var doc localdb.Document
		doc, err = localdb.Parse(data)
		if err == nil {
			return localdb.New(doc), nil
		}
	}
	slog.Warn("Using built-in local species database", "path", path, "error", err)

	doc, err := localdb.Parse(def)
	if err != nil {
		return nil, LocalDBError(err)
	}
	return localdb.New(doc), nil
}
