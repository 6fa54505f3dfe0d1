package app_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/trail/internal/app"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/trail/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func eventsOf(evs ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, ev := range evs {
			if !yield(ev) {
				return
			}
		}
	}
}

func newWatcher(t *testing.T, f *fixture) *mocks.MockWatcher {
	t.Helper()
	w := mocks.NewMockWatcher(gomock.NewController(t))
	f.app.WithWatcher(w)
	return w
}

func TestApp_Watch_RecountsOnChange(t *testing.T) {
	f := newFixture(t)
	w := newWatcher(t, f)
	ws := testWorkspace()
	g := domain.NewGraph()

	w.EXPECT().Start(gomock.Any(), []string{ws.Input}).Return(nil)
	w.EXPECT().Events().Return(eventsOf(ports.WatchEvent{Paths: []string{ws.Input}}))
	w.EXPECT().Stop().Return(nil)

	f.graphLoader.EXPECT().Load(ws.Input).Return(source(g), nil).Times(2)
	f.counter.EXPECT().Count(g, ws.Queries[0], ws.Strategy).
		Return(domain.Result{Query: ws.Queries[0], AllPaths: 5, Constrained: 5}, nil).Times(2)
	f.logger.EXPECT().Info("query part1: computed").Times(2)
	f.logger.EXPECT().Info("/work/devices.txt changed, counting again")

	var rounds [][]domain.Result
	err := f.app.Watch(context.Background(), ws, []string{"part1"}, app.RunOptions{SkipStore: true},
		func(results []domain.Result) { rounds = append(rounds, results) })
	require.NoError(t, err)

	require.Len(t, rounds, 2)
	for _, results := range rounds {
		require.Len(t, results, 1)
		assert.Equal(t, uint64(5), results[0].AllPaths)
	}
}

func TestApp_Watch_FailedRoundIsLogged(t *testing.T) {
	f := newFixture(t)
	w := newWatcher(t, f)
	ws := testWorkspace()
	g := domain.NewGraph()

	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	w.EXPECT().Events().Return(eventsOf(ports.WatchEvent{Paths: []string{ws.Input}}))
	w.EXPECT().Stop().Return(errors.New("already closed"))

	gomock.InOrder(
		f.graphLoader.EXPECT().Load(ws.Input).Return(nil, domain.ErrMalformedLine),
		f.graphLoader.EXPECT().Load(ws.Input).Return(source(g), nil),
	)
	f.counter.EXPECT().Count(g, ws.Queries[0], ws.Strategy).Return(domain.Result{Query: ws.Queries[0]}, nil)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrMalformedLine)
	})
	f.logger.EXPECT().Info(gomock.Any()).Times(2)
	f.logger.EXPECT().Warn("failed to stop file watcher: already closed")

	reports := 0
	err := f.app.Watch(context.Background(), ws, []string{"part1"}, app.RunOptions{SkipStore: true},
		func([]domain.Result) { reports++ })
	require.NoError(t, err)
	assert.Equal(t, 1, reports)
}

func TestApp_Watch_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	w := newWatcher(t, f)
	ws := testWorkspace()
	g := domain.NewGraph()
	ctx, cancel := context.WithCancel(context.Background())

	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	w.EXPECT().Events().Return(eventsOf(ports.WatchEvent{Paths: []string{ws.Input}}))
	w.EXPECT().Stop().Return(nil)

	f.graphLoader.EXPECT().Load(ws.Input).Return(source(g), nil)
	f.counter.EXPECT().Count(g, ws.Queries[0], ws.Strategy).Return(domain.Result{Query: ws.Queries[0]}, nil)
	f.logger.EXPECT().Info("query part1: computed")

	err := f.app.Watch(ctx, ws, []string{"part1"}, app.RunOptions{SkipStore: true},
		func([]domain.Result) { cancel() })
	require.NoError(t, err)
}

func TestApp_Watch_Errors(t *testing.T) {
	ws := testWorkspace()

	t.Run("no watcher", func(t *testing.T) {
		f := newFixture(t)
		err := f.app.Watch(context.Background(), ws, nil, app.RunOptions{}, func([]domain.Result) {})
		assert.ErrorIs(t, err, domain.ErrWatchUnavailable)
	})

	t.Run("unknown query", func(t *testing.T) {
		f := newFixture(t)
		newWatcher(t, f)
		f.logger.EXPECT().Warn(`query "nope" is not defined`)

		err := f.app.Watch(context.Background(), ws, []string{"nope"}, app.RunOptions{}, func([]domain.Result) {})
		assert.ErrorIs(t, err, domain.ErrQueryNotFound)
	})

	t.Run("start failure", func(t *testing.T) {
		f := newFixture(t)
		w := newWatcher(t, f)
		w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

		err := f.app.Watch(context.Background(), ws, nil, app.RunOptions{}, func([]domain.Result) {})
		assert.ErrorContains(t, err, "failed to watch graph file")
		assert.ErrorContains(t, err, "too many open files")
	})
}
