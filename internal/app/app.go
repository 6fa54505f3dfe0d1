// Package app implements the application layer for trail.
package app

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	workspaceLoader ports.WorkspaceLoader
	graphLoader     ports.GraphLoader
	counter         ports.PathCounter
	hasher          ports.Hasher
	store           ports.ResultStore
	telemetry       ports.Telemetry
	logger          ports.Logger
	watcher         ports.Watcher
	now             func() time.Time
	runs            atomic.Int64
}

// New creates a new App instance.
func New(
	workspaceLoader ports.WorkspaceLoader,
	graphLoader ports.GraphLoader,
	counter ports.PathCounter,
	hasher ports.Hasher,
	store ports.ResultStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		workspaceLoader: workspaceLoader,
		graphLoader:     graphLoader,
		counter:         counter,
		hasher:          hasher,
		store:           store,
		telemetry:       telemetry,
		logger:          logger,
		now:             time.Now,
	}
}

// WithClock replaces the clock used to timestamp stored results.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithWatcher enables Watch.
func (a *App) WithWatcher(w ports.Watcher) *App {
	a.watcher = w
	return a
}

// RunOptions configures a Run.
type RunOptions struct {
	// Force recomputes every query even when a stored result matches.
	Force bool
	// SkipStore neither reads nor writes the result store.
	SkipStore bool
}

// LoadWorkspace reads the workspace configuration at path.
func (a *App) LoadWorkspace(path string) (*domain.Workspace, error) {
	ws, err := a.workspaceLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return ws, nil
}

// Run answers the named queries of ws, or all of them when names is empty.
// Queries run concurrently over one shared graph; results are returned in workspace order.
func (a *App) Run(ctx context.Context, ws *domain.Workspace, names []string, opts RunOptions) ([]domain.Result, error) {
	queries, err := a.selectQueries(ws, names)
	if err != nil {
		return nil, err
	}

	round := a.runs.Add(1)
	src, err := a.loadGraph(ctx, ws.Input, round)
	if err != nil {
		return nil, err
	}

	parallelism := ws.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	results := make([]domain.Result, len(queries))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)

	for i, q := range queries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.runQuery(ctx, src, ws, q, opts, round)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Watch runs the queries once and again after every change to the graph file, until ctx is
// done. A failed round is logged and the watch goes on; report receives each successful round.
func (a *App) Watch(
	ctx context.Context,
	ws *domain.Workspace,
	names []string,
	opts RunOptions,
	report func([]domain.Result),
) error {
	if a.watcher == nil {
		return domain.ErrWatchUnavailable
	}
	if _, err := a.selectQueries(ws, names); err != nil {
		return err
	}
	if err := a.watcher.Start(ctx, []string{ws.Input}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch graph file"), "path", ws.Input)
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop file watcher: " + err.Error())
		}
	}()

	a.watchRound(ctx, ws, names, opts, report)
	for ev := range a.watcher.Events() {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info(fmt.Sprintf("%s changed, counting again", strings.Join(ev.Paths, ", ")))
		a.watchRound(ctx, ws, names, opts, report)
	}
	return nil
}

func (a *App) watchRound(
	ctx context.Context,
	ws *domain.Workspace,
	names []string,
	opts RunOptions,
	report func([]domain.Result),
) {
	results, err := a.Run(ctx, ws, names, opts)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}
	report(results)
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) selectQueries(ws *domain.Workspace, names []string) ([]domain.Query, error) {
	if len(ws.Queries) == 0 {
		return nil, domain.ErrNoQueries
	}
	if len(names) == 0 {
		return ws.Queries, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := ws.Query(name); !ok {
			a.logger.Warn(fmt.Sprintf("query %q is not defined", name))
			continue
		}
		wanted[name] = true
	}
	if len(wanted) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrQueryNotFound, "failed to select queries"), "queries", names)
	}

	selected := make([]domain.Query, 0, len(wanted))
	for _, q := range ws.Queries {
		if wanted[q.Name] {
			selected = append(selected, q)
		}
	}
	return selected, nil
}

// vertexName keeps vertex names unique across the rounds of a watch.
func vertexName(name string, round int64) string {
	if round <= 1 {
		return name
	}
	return fmt.Sprintf("%s (round %d)", name, round)
}

func (a *App) loadGraph(ctx context.Context, path string, round int64) (*domain.GraphSource, error) {
	_, v := a.telemetry.Record(ctx, vertexName("load graph", round))
	src, err := a.graphLoader.Load(path)
	if err != nil {
		v.Complete(err)
		return nil, zerr.Wrap(err, "failed to load graph")
	}
	v.Log(domain.LogLevelInfo, fmt.Sprintf("%d nodes, %d edges", src.Graph.Len(), src.Graph.EdgeCount()))
	v.Complete(nil)
	return src, nil
}

func (a *App) runQuery(
	ctx context.Context,
	src *domain.GraphSource,
	ws *domain.Workspace,
	q domain.Query,
	opts RunOptions,
	round int64,
) (domain.Result, error) {
	_, v := a.telemetry.Record(ctx, vertexName("query "+q.Name, round))

	var inputHash string
	if !opts.SkipStore {
		hash, err := a.hasher.ComputeQueryHash(src.Fingerprint, q, ws.Strategy)
		if err != nil {
			v.Complete(err)
			return domain.Result{}, zerr.With(zerr.Wrap(err, "failed to fingerprint query"), "query", q.Name)
		}
		inputHash = hash

		if !opts.Force {
			if res, ok := a.checkResultHit(q, inputHash); ok {
				v.Cached()
				v.Complete(nil)
				a.logger.Info(fmt.Sprintf("query %s: cached", q.Name))
				return res, nil
			}
		}
	}

	res, err := a.counter.Count(src.Graph, q, ws.Strategy)
	if err != nil {
		v.Log(domain.LogLevelError, err.Error())
		v.Complete(err)
		return domain.Result{}, zerr.With(zerr.Wrap(err, "query failed"), "query", q.Name)
	}

	if !opts.SkipStore {
		record := domain.CountRecord{
			QueryName:   q.Name,
			InputHash:   inputHash,
			AllPaths:    res.AllPaths,
			Constrained: res.Constrained,
			Timestamp:   a.now(),
		}
		if err := a.store.Put(record); err != nil {
			v.Complete(err)
			return domain.Result{}, zerr.With(zerr.Wrap(err, "failed to store result"), "query", q.Name)
		}
	}

	v.Log(domain.LogLevelInfo, fmt.Sprintf("paths=%d constrained=%d", res.AllPaths, res.Constrained))
	v.Complete(nil)
	a.logger.Info(fmt.Sprintf("query %s: computed", q.Name))
	return res, nil
}

// checkResultHit returns the stored result for q when its fingerprint matches.
// A store that cannot be read counts as a miss.
func (a *App) checkResultHit(q domain.Query, inputHash string) (domain.Result, bool) {
	record, err := a.store.Get(q.Name)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("query %s: ignoring unreadable stored result", q.Name))
		return domain.Result{}, false
	}
	if record == nil || record.InputHash != inputHash {
		return domain.Result{}, false
	}
	return domain.Result{
		Query:       q,
		AllPaths:    record.AllPaths,
		Constrained: record.Constrained,
		Cached:      true,
	}, true
}
