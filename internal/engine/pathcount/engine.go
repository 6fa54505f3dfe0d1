package pathcount

import (
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathCounter = (*Engine)(nil)

// Engine answers whole queries: both counts for one start, target and waypoint set.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Count resolves every label of q, then computes the unconstrained and constrained counts,
// sharing one CountCache between them.
func (e *Engine) Count(g *domain.Graph, q domain.Query, strategy domain.Strategy) (domain.Result, error) {
	if err := q.Validate(); err != nil {
		return domain.Result{}, err
	}

	start, err := g.Lookup(q.Start)
	if err != nil {
		return domain.Result{}, zerr.With(err, "query", q.Name)
	}
	target, err := g.Lookup(q.Target)
	if err != nil {
		return domain.Result{}, zerr.With(err, "query", q.Name)
	}
	waypoints, err := g.LookupAll(q.SortedWaypoints())
	if err != nil {
		return domain.Result{}, zerr.With(err, "query", q.Name)
	}

	counts, err := NewCountCache(g, target)
	if err != nil {
		return domain.Result{}, err
	}
	all, err := Count(g, start, counts)
	if err != nil {
		return domain.Result{}, zerr.With(err, "query", q.Name)
	}

	requirements := NewRequirementSet(waypoints...)
	constrained, err := countConstrained(g, start, target, requirements, counts, newOptions([]Option{WithStrategy(strategy)}))
	if err != nil {
		return domain.Result{}, zerr.With(err, "query", q.Name)
	}

	return domain.Result{
		Query:       q,
		AllPaths:    all,
		Constrained: constrained,
	}, nil
}
