package pathcount

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/trail/internal/core/ports"
)

// NodeID is the unique identifier for the path counting engine Graft node.
const NodeID graft.ID = "engine.pathcount"

func init() {
	graft.Register(graft.Node[ports.PathCounter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PathCounter, error) {
			return NewEngine(), nil
		},
	})
}
