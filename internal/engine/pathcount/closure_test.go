package pathcount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/engine/pathcount"
)

func closureLabels(g *domain.Graph, c pathcount.ClosureSet) []string {
	labels := make([]string, 0, len(c))
	for id := range c {
		labels = append(labels, g.Label(id))
	}
	return labels
}

func TestComputeClosure(t *testing.T) {
	tests := []struct {
		name         string
		graph        func(t *testing.T) *domain.Graph
		root, target string
		requirements []string
		expected     []string
	}{
		{
			name:         "waypoints on separate branches",
			graph:        scenarioB,
			root:         "svr",
			target:       "out",
			requirements: []string{"dac", "fft"},
			expected:     []string{"svr", "aaa", "fft", "bbb", "tty", "ccc", "eee", "dac"},
		},
		{
			name:         "single waypoint",
			graph:        scenarioB,
			root:         "svr",
			target:       "out",
			requirements: []string{"fft"},
			expected:     []string{"svr", "aaa", "fft"},
		},
		{
			name:         "no requirements",
			graph:        scenarioB,
			root:         "svr",
			target:       "out",
			requirements: nil,
			expected:     []string{},
		},
		{
			name: "target is a boundary",
			graph: func(t *testing.T) *domain.Graph {
				return graphOf(t,
					"s: t",
					"t: r",
				)
			},
			root:         "s",
			target:       "t",
			requirements: []string{"r"},
			expected:     []string{},
		},
		{
			name: "target as requirement",
			graph: func(t *testing.T) *domain.Graph {
				return graphOf(t,
					"s: a",
					"a: t",
				)
			},
			root:         "s",
			target:       "t",
			requirements: []string{"t"},
			expected:     []string{"s", "a", "t"},
		},
		{
			name: "requirement behind a cycle",
			graph: func(t *testing.T) *domain.Graph {
				return graphOf(t,
					"s: a t",
					"a: b",
					"b: a r",
					"r: t",
				)
			},
			root:         "s",
			target:       "t",
			requirements: []string{"r"},
			expected:     []string{"s", "a", "b", "r"},
		},
		{
			name: "requirement unreachable from root",
			graph: func(t *testing.T) *domain.Graph {
				return graphOf(t,
					"s: t",
					"x: r",
				)
			},
			root:         "s",
			target:       "t",
			requirements: []string{"r"},
			expected:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.graph(t)
			reqs := make([]domain.NodeID, 0, len(tt.requirements))
			for _, label := range tt.requirements {
				reqs = append(reqs, mustLookup(t, g, label))
			}

			closure := pathcount.ComputeClosure(
				g,
				mustLookup(t, g, tt.root),
				mustLookup(t, g, tt.target),
				pathcount.NewRequirementSet(reqs...),
			)

			assert.ElementsMatch(t, tt.expected, closureLabels(g, closure))
		})
	}
}

func TestRequirementSet(t *testing.T) {
	r := pathcount.NewRequirementSet(1, 2, 2)
	assert.Len(t, r, 2)
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(3))

	c := r.Clone()
	delete(c, 1)
	assert.True(t, r.Contains(1), "clone must be independent")
}
