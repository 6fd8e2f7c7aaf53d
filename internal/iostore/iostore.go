// Package iostore implements store.Store with one JSON file per region
// and a JSON index of region keys.
package iostore

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/faunamap/pkg/store"
	"github.com/gnames/gnfmt"
)

type fileStore struct {
	dir       string
	indexPath string
	enc       gnfmt.GNjson
}

// New creates a store that keeps region files in dir and the index at
// indexPath.
func New(dir, indexPath string) store.Store {
	return &fileStore{
		dir:       dir,
		indexPath: indexPath,
		enc:       gnfmt.GNjson{Pretty: true},
	}
}

func (fs *fileStore) Save(set store.RegionRecordSet) error {
	key := strings.TrimSpace(set.Key)
	file := store.FileName(key)
	path := filepath.Join(fs.dir, file)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return RegionSaveError(set.Key, path, errors.New("bad region key"))
	}

	if err := fs.write(path, set); err != nil {
		return RegionSaveError(key, path, err)
	}

	idx := fs.Index()
	idx[key] = store.IndexEntry{
		Native:       set.Native,
		File:         file,
		LastUpdated:  set.LastUpdated,
		TotalRecords: set.TotalRecords,
	}
	if err := fs.write(fs.indexPath, idx); err != nil {
		return RegionSaveError(key, fs.indexPath, err)
	}
	slog.Info("Saved region", "key", key, "records", set.TotalRecords)
	return nil
}

// Load reads the region file named after the key. The file name recorded
// in the index is not trusted.
func (fs *fileStore) Load(key string) (store.RegionRecordSet, bool) {
	var res store.RegionRecordSet
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) {
		slog.Warn("Bad region key", "key", key)
		return res, false
	}
	path := filepath.Join(fs.dir, store.FileName(key))

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return res, false
	}
	if err != nil {
		slog.Warn("Cannot read region", "path", path, "error", err)
		return res, false
	}
	if err = fs.enc.Decode(data, &res); err != nil {
		slog.Warn("Corrupt region file", "path", path, "error", err)
		return store.RegionRecordSet{}, false
	}
	return res, true
}

func (fs *fileStore) Index() store.Index {
	res := make(store.Index)
	data, err := os.ReadFile(fs.indexPath)
	if errors.Is(err, os.ErrNotExist) {
		return res
	}
	if err != nil {
		slog.Warn("Cannot read region index", "path", fs.indexPath, "error", err)
		return res
	}
	if err = fs.enc.Decode(data, &res); err != nil || res == nil {
		slog.Warn("Corrupt region index", "path", fs.indexPath, "error", err)
		return make(store.Index)
	}
	return res
}

func (fs *fileStore) write(path string, obj any) error {
	data, err := fs.enc.Encode(obj)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
