package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Strategy selects how the constrained counter reuses work between visits of the same node.
type Strategy string

const (
	// StrategyResolver reuses, per node, the set of children known to resolve each outstanding
	// waypoint and reports the size of their intersection on later visits.
	StrategyResolver Strategy = "resolver"
	// StrategyExact memoizes counts by node and remaining-waypoint set.
	StrategyExact Strategy = "exact"
)

// ParseStrategy converts a configuration value into a Strategy.
// The empty string selects StrategyResolver.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyResolver:
		return StrategyResolver, nil
	case StrategyExact:
		return StrategyExact, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownStrategy, "failed to parse strategy"), "strategy", s)
	}
}

// Query asks for the number of paths from Start to Target, and for the number of those paths that
// visit every node in Waypoints.
type Query struct {
	Name      string
	Start     string
	Target    string
	Waypoints []string
}

// Validate checks that the query names both endpoints and no empty waypoint.
func (q *Query) Validate() error {
	if q.Start == "" {
		return q.invalid("missing start")
	}
	if q.Target == "" {
		return q.invalid("missing target")
	}
	if slices.Contains(q.Waypoints, "") {
		return q.invalid("empty waypoint")
	}
	return nil
}

func (q *Query) invalid(reason string) error {
	err := zerr.Wrap(ErrInvalidQuery, "failed to validate query")
	err = zerr.With(err, "query", q.Name)
	return zerr.With(err, "reason", reason)
}

// SortedWaypoints returns a sorted, de-duplicated copy of the waypoint labels.
func (q *Query) SortedWaypoints() []string {
	sorted := slices.Clone(q.Waypoints)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// Result holds the outcome of a Query.
type Result struct {
	Query Query
	// AllPaths is the number of paths from start to target.
	AllPaths uint64
	// Constrained is the number of those paths visiting every waypoint.
	Constrained uint64
	// Cached is set when the result was served from the result store.
	Cached bool
}
