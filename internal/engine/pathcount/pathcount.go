// Package pathcount counts simple paths between two nodes of a domain.Graph, optionally restricted
// to paths that visit every node of a waypoint set.
//
// A query runs three passes over a read-only graph:
//
//   - Count fills a CountCache with the number of start-to-target paths from every node reachable
//     from start. It doubles as the fallback for constrained searches once every waypoint is met.
//   - ComputeClosure finds the nodes from which some waypoint is still reachable, so constrained
//     searches can abandon every other branch while a waypoint is outstanding.
//   - The constrained search walks from start, tracking outstanding waypoints and the nodes on the
//     current path, and reuses work according to the selected domain.Strategy.
//
// All caches belong to a single call. The graph may be shared by concurrent queries.
package pathcount

import (
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

type options struct {
	strategy domain.Strategy
}

// Option configures a constrained count.
type Option func(*options)

// WithStrategy selects the constrained counting strategy. The default is
// domain.StrategyResolver.
func WithStrategy(s domain.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

func newOptions(opts []Option) options {
	o := options{strategy: domain.StrategyResolver}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CountConstrainedPaths returns the number of paths from start to target that visit every label in
// waypoints. Every label is resolved before any counting starts.
func CountConstrainedPaths(g *domain.Graph, start, target string, waypoints []string, opts ...Option) (uint64, error) {
	from, err := g.Lookup(start)
	if err != nil {
		return 0, err
	}
	to, err := g.Lookup(target)
	if err != nil {
		return 0, err
	}
	ids, err := g.LookupAll(waypoints)
	if err != nil {
		return 0, err
	}
	counts, err := NewCountCache(g, to)
	if err != nil {
		return 0, err
	}
	if _, err := Count(g, from, counts); err != nil {
		return 0, err
	}
	return countConstrained(g, from, to, NewRequirementSet(ids...), counts, newOptions(opts))
}

// countConstrained expects counts to be seeded from start for target.
func countConstrained(
	g *domain.Graph,
	start, target domain.NodeID,
	requirements RequirementSet,
	counts *CountCache,
	o options,
) (uint64, error) {
	if start == target {
		return 0, nil
	}
	closure := ComputeClosure(g, start, target, requirements)

	switch o.strategy {
	case domain.StrategyResolver:
		return newResolverSearch(g, target, counts, closure, requirements).visit(start)
	case domain.StrategyExact:
		s, mask, err := newExactSearch(g, target, counts, closure, requirements)
		if err != nil {
			return 0, err
		}
		return s.visit(start, mask)
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrUnknownStrategy, "failed to select strategy"), "strategy", string(o.strategy))
	}
}
