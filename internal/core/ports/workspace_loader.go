package ports

import "go.trai.ch/trail/internal/core/domain"

// WorkspaceLoader defines the interface for loading the query configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace_loader.go -destination=mocks/mock_workspace_loader.go -package=mocks
type WorkspaceLoader interface {
	// Load reads the workspace file at path and returns its queries.
	Load(path string) (*domain.Workspace, error)
}
