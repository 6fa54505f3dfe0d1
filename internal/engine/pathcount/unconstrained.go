package pathcount

import (
	"strings"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

// CountCache memoizes, per node, the number of paths from that node to the target the cache was
// created for. A cache must never be reused for another target or another graph.
type CountCache struct {
	target  domain.NodeID
	reaches []bool
	counts  map[domain.NodeID]uint64
}

// NewCountCache creates an empty cache for paths ending at target.
// It precomputes which nodes can reach target at all, so dead regions count as zero without
// being searched.
func NewCountCache(g *domain.Graph, target domain.NodeID) (*CountCache, error) {
	if !g.Contains(target) {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownNode, "invalid target handle"), "node", target.String())
	}
	return &CountCache{
		target:  target,
		reaches: reachesTarget(g, target),
		counts:  make(map[domain.NodeID]uint64),
	}, nil
}

// Target returns the node every cached count ends at.
func (c *CountCache) Target() domain.NodeID {
	return c.target
}

// Get returns the cached count for node, if one was computed.
func (c *CountCache) Get(node domain.NodeID) (uint64, bool) {
	n, ok := c.counts[node]
	return n, ok
}

// Len returns the number of cached entries.
func (c *CountCache) Len() int {
	return len(c.counts)
}

// reachesTarget marks every node with a path to target by walking predecessors backwards.
func reachesTarget(g *domain.Graph, target domain.NodeID) []bool {
	reaches := make([]bool, g.Len())
	reaches[target] = true
	queue := []domain.NodeID{target}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		preds, _ := g.Predecessors(v)
		for _, u := range preds {
			if !reaches[u] {
				reaches[u] = true
				queue = append(queue, u)
			}
		}
	}
	return reaches
}

// Count returns the number of distinct paths from node to the cache's target, filling cache as it
// goes. It fails with ErrCycleDetected when it meets a cycle whose nodes can still reach the
// target, since summing memoized counts around such a cycle would never terminate.
func Count(g *domain.Graph, node domain.NodeID, cache *CountCache) (uint64, error) {
	if !g.Contains(node) {
		return 0, zerr.With(zerr.Wrap(domain.ErrUnknownNode, "invalid start handle"), "node", node.String())
	}
	c := &unconstrained{
		g:        g,
		cache:    cache,
		visiting: make(map[domain.NodeID]bool),
	}
	return c.count(node)
}

type unconstrained struct {
	g        *domain.Graph
	cache    *CountCache
	visiting map[domain.NodeID]bool
	path     []domain.NodeID
}

func (c *unconstrained) count(node domain.NodeID) (uint64, error) {
	if node == c.cache.target {
		c.cache.counts[node] = 1
		return 1, nil
	}
	if n, ok := c.cache.counts[node]; ok {
		return n, nil
	}
	if !c.cache.reaches[node] {
		c.cache.counts[node] = 0
		return 0, nil
	}
	if c.visiting[node] {
		return 0, c.buildCycleError(node)
	}

	c.visiting[node] = true
	c.path = append(c.path, node)

	children, _ := c.g.Successors(node)
	var total uint64
	for _, child := range children {
		n, err := c.count(child)
		if err != nil {
			return 0, err
		}
		total += n
	}

	c.path = c.path[:len(c.path)-1]
	delete(c.visiting, node)
	c.cache.counts[node] = total
	return total, nil
}

// buildCycleError constructs an error with cycle path metadata.
func (c *unconstrained) buildCycleError(node domain.NodeID) error {
	start := 0
	for i, n := range c.path {
		if n == node {
			start = i
			break
		}
	}
	labels := make([]string, 0, len(c.path)-start+1)
	for _, n := range c.path[start:] {
		labels = append(labels, c.g.Label(n))
	}
	labels = append(labels, c.g.Label(node))
	return zerr.With(zerr.Wrap(domain.ErrCycleDetected, "failed to count paths"), "cycle", strings.Join(labels, " -> "))
}

// CountAllPaths returns the number of distinct paths from start to target.
func CountAllPaths(g *domain.Graph, start, target string) (uint64, error) {
	from, err := g.Lookup(start)
	if err != nil {
		return 0, err
	}
	to, err := g.Lookup(target)
	if err != nil {
		return 0, err
	}
	cache, err := NewCountCache(g, to)
	if err != nil {
		return 0, err
	}
	return Count(g, from, cache)
}
