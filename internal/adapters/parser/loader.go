package parser

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphLoader = (*FileLoader)(nil)

// FileLoader implements ports.GraphLoader for graph files on disk.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads and parses the graph file at path in a single pass. The fingerprint is the xxhash
// of the bytes the parser consumed, so it always describes the returned graph even when the file
// changes right after.
func (l *FileLoader) Load(path string) (*domain.GraphSource, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the workspace file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read graph file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	digest := xxhash.New()
	g, err := ParseGraph(io.TeeReader(f, digest))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &domain.GraphSource{Graph: g, Fingerprint: digest.Sum64()}, nil
}
