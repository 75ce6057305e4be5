// Package jsonfile persists each collection as one JSON array file under
// a data directory, matching the products.json / customers.json /
// rentals.json / users.json layout the system has always used on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a store rooted at dir. Tests pass afero.NewMemMapFs();
// production passes afero.NewOsFs().
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads the collection file. A missing file is an empty collection,
// not an error; the file appears on first Save.
func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := afero.ReadFile(s.fs, s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path(collection), err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path(collection), err)
	}
	return records, nil
}

// Save writes the full collection contents. The write goes to a temp
// file first and is renamed into place, so readers never see a torn file.
func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", s.dir, err)
	}

	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}

	tmp := s.path(collection) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
