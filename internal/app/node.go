package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/trail/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/parser"             //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/trail/internal/core/ports"
	"go.trai.ch/trail/internal/engine/pathcount"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			parser.NodeID,
			pathcount.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	workspaceLoader, err := graft.Dep[ports.WorkspaceLoader](ctx)
	if err != nil {
		return nil, err
	}
	graphLoader, err := graft.Dep[ports.GraphLoader](ctx)
	if err != nil {
		return nil, err
	}
	counter, err := graft.Dep[ports.PathCounter](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	return New(workspaceLoader, graphLoader, counter, hasher, store, telemetry, log).WithWatcher(w), nil
}
