package ports

import "go.trai.ch/trail/internal/core/domain"

// GraphLoader defines the interface for turning a graph file into a domain.Graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph_loader.go -destination=mocks/mock_graph_loader.go -package=mocks
type GraphLoader interface {
	// Load reads and parses the graph file at path, fingerprinting the bytes it parsed.
	Load(path string) (*domain.GraphSource, error)
}
