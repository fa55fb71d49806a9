package databank

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Store reads and writes the databank YAML file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the databank from disk. A missing file is not an error: it
// yields a fresh empty databank, same as first run.
func (s *Store) Load() (*Databank, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewEmpty(), nil
		}
		return nil, eris.Wrapf(err, "databank: read %s", s.path)
	}

	var db Databank
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, eris.Wrapf(err, "databank: parse %s", s.path)
	}
	if db.Version == "" {
		db.Version = "1.0"
	}
	return &db, nil
}

// Save writes the databank to disk, stamping last_updated first.
func (s *Store) Save(db *Databank) error {
	db.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return eris.Wrapf(err, "databank: create directory %s", dir)
		}
	}

	data, err := yaml.Marshal(db)
	if err != nil {
		return eris.Wrap(err, "databank: marshal")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return eris.Wrapf(err, "databank: write %s", s.path)
	}
	return nil
}
