package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/trail/internal/adapters/parser"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/engine/pathcount"
	"go.trai.ch/zerr"
)

const devices = `aaa: you hhh
you: bbb ccc
bbb: ddd eee
ccc: ddd eee fff
ddd: ggg
eee: out
fff: out
ggg: out
hhh: ccc fff iii
iii: out
`

func TestParse(t *testing.T) {
	edges, err := parser.Parse(strings.NewReader("a: b c\n\n  b: c  \nc:\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "c"},
	}, edges)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{"missing colon", "a: b\nb c\n", domain.ErrMalformedLine, 2},
		{"empty label", ": b\n", domain.ErrMalformedLine, 1},
		{"label with space", "a b: c\n", domain.ErrMalformedLine, 1},
		{"repeated space", "a: b  c\n", domain.ErrEmptyLabel, 1},
		{"second colon", "a: b: c\n", domain.ErrMalformedLine, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tt.line, zErr.Metadata()["line"])
		})
	}
}

func TestParseGraph_KeepsSinks(t *testing.T) {
	g, err := parser.ParseGraph(strings.NewReader("a: b\nlonely:\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 1, g.EdgeCount())

	id, err := g.Lookup("lonely")
	require.NoError(t, err)
	succ, err := g.Successors(id)
	require.NoError(t, err)
	assert.Empty(t, succ)
}

func TestFileLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.txt")
	require.NoError(t, os.WriteFile(path, []byte(devices), 0o600))

	src, err := parser.NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String(devices), src.Fingerprint)

	n, err := pathcount.CountAllPaths(src.Graph, "you", "out")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestFileLoader_FingerprintFollowsParsedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.txt")
	loader := parser.NewFileLoader()

	require.NoError(t, os.WriteFile(path, []byte("a: b\n"), 0o600))
	before, err := loader.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a: b c\n"), 0o600))
	after, err := loader.Load(path)
	require.NoError(t, err)

	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
	assert.Equal(t, 2, before.Graph.Len())
	assert.Equal(t, 3, after.Graph.Len())
	assert.Equal(t, xxhash.Sum64String("a: b c\n"), after.Fingerprint)
}

func TestFileLoader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.txt")
		_, err := parser.NewFileLoader().Load(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to read graph file")

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok, "expected *zerr.Error, got %T", err)
		assert.Equal(t, path, zErr.Metadata()["path"])
	})

	t.Run("malformed content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o600))

		_, err := parser.NewFileLoader().Load(path)
		assert.ErrorIs(t, err, domain.ErrMalformedLine)
	})
}
