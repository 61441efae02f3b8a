package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/soocke/countdown-go/domain/countdown"
)

const fileVersion = 1

// fileEnvelope versions the JSON file so the layout can evolve.
type fileEnvelope struct {
	Version int          `json:"version"`
	Timer   storedRecord `json:"timer"`
}

// FileStore keeps the timer record in a JSON file. Saves write a temporary
// file and rename it over the target so a crash never leaves a torn record.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the record. A missing file reports false without error.
func (s *FileStore) Load() (countdown.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return countdown.Record{}, false, nil
		}
		return countdown.Record{}, false, err
	}
	defer f.Close()
	var env fileEnvelope
	if err := json.NewDecoder(f).Decode(&env); err != nil {
		return countdown.Record{}, false, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if env.Version != fileVersion {
		return countdown.Record{}, false, fmt.Errorf("%s: unsupported version %d", s.path, env.Version)
	}
	rec, err := env.Timer.record()
	if err != nil {
		return countdown.Record{}, false, err
	}
	return rec, true, nil
}

// Save overwrites the stored record.
func (s *FileStore) Save(r countdown.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileEnvelope{Version: fileVersion, Timer: toStored(r)}); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

var _ countdown.Store = (*FileStore)(nil)
