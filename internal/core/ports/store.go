package ports

import "go.trai.ch/trail/internal/core/domain"

// ResultStore defines the interface for storing and retrieving query results.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Get retrieves the record for a given query name.
	// Returns nil, nil if not found.
	Get(queryName string) (*domain.CountRecord, error)

	// Put stores the record.
	Put(record domain.CountRecord) error
}
