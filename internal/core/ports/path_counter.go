// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/trail/internal/core/domain"

// PathCounter defines the interface for answering path queries.
//
//go:generate go run go.uber.org/mock/mockgen -source=path_counter.go -destination=mocks/mock_path_counter.go -package=mocks
type PathCounter interface {
	// Count computes both counts of q over g. The graph must not be mutated during the call.
	Count(g *domain.Graph, q domain.Query, strategy domain.Strategy) (domain.Result, error)
}
