package ports

import "go.trai.ch/trail/internal/core/domain"

// Hasher defines the interface for fingerprinting query inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeQueryHash combines the fingerprint of a loaded graph with the query and the strategy
	// it is counted with.
	ComputeQueryHash(graphFingerprint uint64, q domain.Query, strategy domain.Strategy) (string, error)
}
