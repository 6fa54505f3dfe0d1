package pathcount_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"go.trai.ch/trail/internal/core/domain"
)

// graphOf builds a graph from "node: succ succ" lines.
func graphOf(t *testing.T, lines ...string) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, line := range lines {
		from, rest, ok := strings.Cut(line, ":")
		if !ok {
			t.Fatalf("bad test line %q", line)
		}
		from = strings.TrimSpace(from)
		g.Intern(from)
		for _, to := range strings.Fields(rest) {
			g.AddEdge(from, to)
		}
	}
	return g
}

func scenarioA(t *testing.T) *domain.Graph {
	return graphOf(t,
		"aaa: you hhh",
		"you: bbb ccc",
		"bbb: ddd eee",
		"ccc: ddd eee fff",
		"ddd: ggg",
		"eee: out",
		"fff: out",
		"ggg: out",
		"hhh: ccc fff iii",
		"iii: out",
	)
}

func scenarioB(t *testing.T) *domain.Graph {
	return graphOf(t,
		"svr: aaa bbb",
		"aaa: fft",
		"fft: ccc",
		"bbb: tty",
		"tty: ccc",
		"ccc: ddd eee",
		"ddd: hub",
		"hub: fff",
		"eee: dac",
		"dac: fff",
		"fff: ggg hhh",
		"ggg: out",
		"hhh: out",
	)
}

func mustLookup(t *testing.T, g *domain.Graph, label string) domain.NodeID {
	t.Helper()
	id, err := g.Lookup(label)
	if err != nil {
		t.Fatalf("lookup %q: %v", label, err)
	}
	return id
}

// bruteForce enumerates every simple path from start to target and reports how many there are
// and how many visit all of required. Paths end at the first arrival at target.
func bruteForce(g *domain.Graph, start, target domain.NodeID, required []domain.NodeID) (all, covering uint64) {
	visited := make(map[domain.NodeID]bool)
	var walk func(node domain.NodeID)
	walk = func(node domain.NodeID) {
		visited[node] = true
		defer delete(visited, node)

		if node == target {
			all++
			for _, r := range required {
				if !visited[r] {
					return
				}
			}
			covering++
			return
		}
		children, _ := g.Successors(node)
		for _, child := range children {
			if !visited[child] {
				walk(child)
			}
		}
	}
	walk(start)
	return all, covering
}

// randomDAG returns the edges of a DAG over nodes n0..n(size-1); edges only go from lower to
// higher index.
func randomDAG(r *rand.Rand, size int, density float64) []domain.Edge {
	var edges []domain.Edge
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if r.Float64() < density {
				edges = append(edges, domain.Edge{From: nodeName(i), To: nodeName(j)})
			}
		}
	}
	return edges
}

func nodeName(i int) string {
	return "n" + string(rune('a'+i))
}
