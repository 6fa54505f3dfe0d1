package pathcount

import "go.trai.ch/trail/internal/core/domain"

// RequirementChildCache records, per fully explored node, which of its successors led to a
// completed path while each requirement was still outstanding.
type RequirementChildCache map[domain.NodeID]map[domain.NodeID]map[domain.NodeID]struct{}

// resolverSearch is the state threaded through one constrained count using the resolver cache.
type resolverSearch struct {
	g         *domain.Graph
	target    domain.NodeID
	counts    *CountCache
	closure   ClosureSet
	remaining RequirementSet
	onStack   map[domain.NodeID]bool
	resolvers RequirementChildCache
}

func newResolverSearch(
	g *domain.Graph,
	target domain.NodeID,
	counts *CountCache,
	closure ClosureSet,
	requirements RequirementSet,
) *resolverSearch {
	return &resolverSearch{
		g:         g,
		target:    target,
		counts:    counts,
		closure:   closure,
		remaining: requirements.Clone(),
		onStack:   make(map[domain.NodeID]bool),
		resolvers: make(RequirementChildCache),
	}
}

func (s *resolverSearch) visit(node domain.NodeID) (uint64, error) {
	if s.onStack[node] {
		return 0, nil
	}
	// A requirement on the target itself can never be met before the path ends.
	if node == s.target {
		if len(s.remaining) == 0 {
			return 1, nil
		}
		return 0, nil
	}

	if s.remaining.Contains(node) {
		delete(s.remaining, node)
		defer func() { s.remaining[node] = struct{}{} }()
	}

	if len(s.remaining) == 0 {
		return Count(s.g, node, s.counts)
	}
	if !s.closure.Contains(node) {
		return 0, nil
	}
	if entry, ok := s.resolvers[node]; ok {
		return s.fromResolvers(node, entry), nil
	}

	s.onStack[node] = true
	defer delete(s.onStack, node)

	outstanding := make([]domain.NodeID, 0, len(s.remaining))
	for id := range s.remaining {
		outstanding = append(outstanding, id)
	}

	found := make(map[domain.NodeID]map[domain.NodeID]struct{})
	children, _ := s.g.Successors(node)
	var total uint64
	for _, child := range children {
		n, err := s.visit(child)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		total += n
		for _, req := range outstanding {
			if found[req] == nil {
				found[req] = make(map[domain.NodeID]struct{})
			}
			found[req][child] = struct{}{}
		}
	}

	if len(found) > 0 {
		s.resolvers[node] = found
	}
	return total, nil
}

// fromResolvers answers a repeat visit from the cache: the children that resolved every
// requirement still outstanding, counted once each.
func (s *resolverSearch) fromResolvers(node domain.NodeID, entry map[domain.NodeID]map[domain.NodeID]struct{}) uint64 {
	children, _ := s.g.Successors(node)
	happy := make(map[domain.NodeID]struct{}, len(children))
	for _, child := range children {
		happy[child] = struct{}{}
	}
	for req := range s.remaining {
		resolved, ok := entry[req]
		if !ok {
			return 0
		}
		for child := range happy {
			if _, ok := resolved[child]; !ok {
				delete(happy, child)
			}
		}
		if len(happy) == 0 {
			return 0
		}
	}
	return uint64(len(happy))
}
