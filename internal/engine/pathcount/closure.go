package pathcount

import "go.trai.ch/trail/internal/core/domain"

// RequirementSet is a set of nodes a qualifying path must visit.
type RequirementSet map[domain.NodeID]struct{}

// NewRequirementSet builds a RequirementSet from ids.
func NewRequirementSet(ids ...domain.NodeID) RequirementSet {
	r := make(RequirementSet, len(ids))
	for _, id := range ids {
		r[id] = struct{}{}
	}
	return r
}

// Contains reports whether id is required.
func (r RequirementSet) Contains(id domain.NodeID) bool {
	_, ok := r[id]
	return ok
}

// Clone returns an independent copy of r.
func (r RequirementSet) Clone() RequirementSet {
	c := make(RequirementSet, len(r))
	for id := range r {
		c[id] = struct{}{}
	}
	return c
}

// ClosureSet holds the nodes from which some requirement is still reachable without passing
// through the target, requirements included.
type ClosureSet map[domain.NodeID]struct{}

// Contains reports whether id belongs to the closure.
func (c ClosureSet) Contains(id domain.NodeID) bool {
	_, ok := c[id]
	return ok
}

// ComputeClosure classifies every node reachable from root. A node is in the closure when it is a
// requirement or one of its successors is. The target is a boundary: it can be classified, but
// nothing is explored past it.
//
// Classification runs in two passes, forward reachability from root and then backward propagation
// from requirements, so every node is decided once and cycles cannot leave a node
// misclassified.
func ComputeClosure(g *domain.Graph, root, target domain.NodeID, requirements RequirementSet) ClosureSet {
	reachable := forwardReach(g, root, target)

	closure := make(ClosureSet)
	var queue []domain.NodeID
	for id := range requirements {
		if reachable[id] {
			closure[id] = struct{}{}
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		preds, _ := g.Predecessors(v)
		for _, u := range preds {
			// Edges leaving the target are never walked.
			if u == target || !reachable[u] || closure.Contains(u) {
				continue
			}
			closure[u] = struct{}{}
			queue = append(queue, u)
		}
	}
	return closure
}

// forwardReach marks the nodes reachable from root without expanding target.
func forwardReach(g *domain.Graph, root, target domain.NodeID) []bool {
	seen := make([]bool, g.Len())
	if !g.Contains(root) {
		return seen
	}
	seen[root] = true
	stack := []domain.NodeID{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == target {
			continue
		}
		children, _ := g.Successors(v)
		for _, w := range children {
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}
	return seen
}
