// Package config provides the workspace loader for trail.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the workspace file name searched for when a directory is given.
const DefaultFilename = "trail.yaml"

const supportedVersion = "1"

var _ ports.WorkspaceLoader = (*Loader)(nil)

// Loader implements ports.WorkspaceLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a new Loader that reports warnings to log.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Filename: DefaultFilename, logger: log}
}

// Load reads the workspace at path. When path is a directory, the nearest Filename in it or one
// of its parents is used.
func (l *Loader) Load(path string) (*domain.Workspace, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat config path"), "path", path)
	}
	if info.IsDir() {
		found, err := l.discover(path)
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Trailfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return l.toWorkspace(&file, filepath.Dir(path))
}

// discover walks up from dir until it finds Filename.
func (l *Loader) discover(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve config directory")
	}
	for current := abs; ; {
		candidate := filepath.Join(current, l.Filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, "failed to stat config file"), "path", candidate)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(zerr.New("config file not found"), "filename", l.Filename)
		}
		current = parent
	}
}

func (l *Loader) toWorkspace(file *Trailfile, root string) (*domain.Workspace, error) {
	if file.Version != "" && file.Version != supportedVersion {
		l.logger.Warn("unsupported config version " + file.Version + ", reading as version " + supportedVersion)
	}

	input := strings.TrimSpace(file.Input)
	if input == "" {
		return nil, domain.ErrMissingInput
	}
	if !filepath.IsAbs(input) {
		input = filepath.Join(root, input)
	}

	strategy, err := domain.ParseStrategy(file.Strategy)
	if err != nil {
		return nil, err
	}

	if file.Parallelism < 0 {
		return nil, zerr.With(zerr.New("parallelism must not be negative"), "parallelism", file.Parallelism)
	}

	if len(file.Queries) == 0 {
		return nil, domain.ErrNoQueries
	}

	names := make([]string, 0, len(file.Queries))
	for name := range file.Queries {
		names = append(names, name)
	}
	slices.Sort(names)

	queries := make([]domain.Query, 0, len(names))
	for _, name := range names {
		dto := file.Queries[name]
		q := domain.Query{
			Name:      name,
			Start:     strings.TrimSpace(dto.From),
			Target:    strings.TrimSpace(dto.To),
			Waypoints: trimAll(dto.Via),
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if len(q.SortedWaypoints()) != len(q.Waypoints) {
			l.logger.Warn("query " + name + " lists a waypoint more than once")
		}
		queries = append(queries, q)
	}

	return &domain.Workspace{
		Input:       input,
		Strategy:    strategy,
		Parallelism: file.Parallelism,
		Queries:     queries,
	}, nil
}

func trimAll(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	res := make([]string, len(strs))
	for i, s := range strs {
		res[i] = strings.TrimSpace(s)
	}
	return res
}
