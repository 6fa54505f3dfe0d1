package pathcount

import (
	"slices"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxExactWaypoints is the width of the remaining-set mask.
const maxExactWaypoints = 64

type exactKey struct {
	node domain.NodeID
	mask uint64
}

// exactSearch counts constrained paths with a memo keyed by node and remaining-requirement mask.
// The remaining set is passed by value, so no exit path has anything to restore.
type exactSearch struct {
	g       *domain.Graph
	target  domain.NodeID
	counts  *CountCache
	closure ClosureSet
	bits    map[domain.NodeID]uint64
	onStack map[domain.NodeID]bool
	memo    map[exactKey]uint64
}

func newExactSearch(
	g *domain.Graph,
	target domain.NodeID,
	counts *CountCache,
	closure ClosureSet,
	requirements RequirementSet,
) (*exactSearch, uint64, error) {
	if len(requirements) > maxExactWaypoints {
		return nil, 0, zerr.With(zerr.Wrap(domain.ErrTooManyWaypoints, "failed to index waypoints"), "waypoints", len(requirements))
	}

	ids := make([]domain.NodeID, 0, len(requirements))
	for id := range requirements {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	bits := make(map[domain.NodeID]uint64, len(ids))
	var mask uint64
	for i, id := range ids {
		bits[id] = 1 << uint(i)
		mask |= 1 << uint(i)
	}

	return &exactSearch{
		g:       g,
		target:  target,
		counts:  counts,
		closure: closure,
		bits:    bits,
		onStack: make(map[domain.NodeID]bool),
		memo:    make(map[exactKey]uint64),
	}, mask, nil
}

func (s *exactSearch) visit(node domain.NodeID, mask uint64) (uint64, error) {
	if s.onStack[node] {
		return 0, nil
	}
	if node == s.target {
		if mask == 0 {
			return 1, nil
		}
		return 0, nil
	}

	mask &^= s.bits[node]
	if mask == 0 {
		return Count(s.g, node, s.counts)
	}
	if !s.closure.Contains(node) {
		return 0, nil
	}

	key := exactKey{node: node, mask: mask}
	if n, ok := s.memo[key]; ok {
		return n, nil
	}

	s.onStack[node] = true
	defer delete(s.onStack, node)

	children, _ := s.g.Successors(node)
	var total uint64
	for _, child := range children {
		n, err := s.visit(child, mask)
		if err != nil {
			return 0, err
		}
		total += n
	}
	s.memo[key] = total
	return total, nil
}
