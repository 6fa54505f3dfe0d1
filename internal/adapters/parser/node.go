package parser

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/trail/internal/core/ports"
)

// NodeID is the unique identifier for the graph loader Graft node.
const NodeID graft.ID = "adapter.graph_loader"

func init() {
	graft.Register(graft.Node[ports.GraphLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphLoader, error) {
			return NewFileLoader(), nil
		},
	})
}
