// Package domain contains the core domain models of the path-counting engine.
package domain

import (
	"iter"
	"strconv"

	"go.trai.ch/zerr"
)

// NodeID is an opaque handle to a node interned in a Graph.
// Handles are dense indices, so they are cheap to compare, hash and copy.
type NodeID int32

// NoNode is the zero handle returned alongside lookup errors.
const NoNode NodeID = -1

// String returns the numeric form of the handle. Use Graph.Label for the node name.
func (id NodeID) String() string {
	return "#" + strconv.Itoa(int(id))
}

type edgeKey struct {
	from NodeID
	to   NodeID
}

// Graph is a directed graph over interned node labels.
// It is built once and must not be mutated while any counting traversal reads it; concurrent
// reads are safe once construction is finished.
type Graph struct {
	index  map[InternedString]NodeID
	labels []InternedString
	succ   [][]NodeID
	pred   [][]NodeID
	edges  map[edgeKey]struct{}
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[InternedString]NodeID),
		edges: make(map[edgeKey]struct{}),
	}
}

// BuildGraph creates a Graph holding every edge in edges.
func BuildGraph(edges []Edge) *Graph {
	g := NewGraph()
	for _, e := range edges {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// Intern returns the canonical handle for label, creating a node with no successors if the label
// has not been seen yet.
func (g *Graph) Intern(label string) NodeID {
	key := NewInternedString(label)
	if id, ok := g.index[key]; ok {
		return id
	}
	id := NodeID(len(g.labels))
	g.index[key] = id
	g.labels = append(g.labels, key)
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return id
}

// AddEdge interns both endpoints and records the edge from -> to.
// Repeated edges are stored once; self-loops are kept as given.
func (g *Graph) AddEdge(from, to string) {
	u := g.Intern(from)
	v := g.Intern(to)
	key := edgeKey{from: u, to: v}
	if _, exists := g.edges[key]; exists {
		return
	}
	g.edges[key] = struct{}{}
	g.succ[u] = append(g.succ[u], v)
	g.pred[v] = append(g.pred[v], u)
}

// Lookup returns the handle for label without creating it.
func (g *Graph) Lookup(label string) (NodeID, error) {
	id, ok := g.index[NewInternedString(label)]
	if !ok {
		return NoNode, zerr.With(zerr.Wrap(ErrUnknownNode, "failed to resolve label"), "label", label)
	}
	return id, nil
}

// LookupAll resolves every label, failing on the first unknown one.
func (g *Graph) LookupAll(labels []string) ([]NodeID, error) {
	ids := make([]NodeID, 0, len(labels))
	for _, label := range labels {
		id, err := g.Lookup(label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Contains reports whether id was handed out by this graph.
func (g *Graph) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.labels)
}

// Successors returns the out-neighbours of id.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Successors(id NodeID) ([]NodeID, error) {
	if !g.Contains(id) {
		return nil, zerr.With(zerr.Wrap(ErrUnknownNode, "invalid node handle"), "node", id.String())
	}
	return g.succ[id], nil
}

// Predecessors returns the in-neighbours of id.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Predecessors(id NodeID) ([]NodeID, error) {
	if !g.Contains(id) {
		return nil, zerr.With(zerr.Wrap(ErrUnknownNode, "invalid node handle"), "node", id.String())
	}
	return g.pred[id], nil
}

// Label returns the name of id, or an empty string for a foreign handle.
func (g *Graph) Label(id NodeID) string {
	if !g.Contains(id) {
		return ""
	}
	return g.labels[id].String()
}

// Len returns the number of interned nodes.
func (g *Graph) Len() int {
	return len(g.labels)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns an iterator over every node in interning order.
func (g *Graph) Nodes() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for i := range g.labels {
			if !yield(NodeID(i)) {
				return
			}
		}
	}
}
