// Package cas stores query results on disk, one JSON record per query.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDir is the result store location relative to the working directory.
const DefaultDir = ".trail/results"

var _ ports.ResultStore = (*Store)(nil)

// Store implements ports.ResultStore using a directory of JSON files.
// Files are named after the SHA-256 of the query name so any name maps to a safe file name.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a new ResultStore rooted at dir. The directory is created on first Put.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, zerr.New("result store directory is empty")
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

func (s *Store) recordPath(queryName string) string {
	sum := sha256.Sum256([]byte(queryName))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

// Get retrieves the record for a given query name.
// It returns nil, nil when no record exists.
func (s *Store) Get(queryName string) (*domain.CountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.recordPath(queryName)
	//nolint:gosec // Path is derived from a hash inside the store directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read result record"), "query", queryName)
	}

	var record domain.CountRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal result record"), "query", queryName)
	}
	return &record, nil
}

// Put stores the record, replacing any previous record for the same query.
func (s *Store) Put(record domain.CountRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal result record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create result store directory")
	}

	path := s.recordPath(record.QueryName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write result record"), "query", record.QueryName)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to commit result record"), "query", record.QueryName)
	}
	return nil
}
