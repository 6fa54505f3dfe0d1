// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/trail/internal/adapters/cas"
	_ "go.trai.ch/trail/internal/adapters/config"
	_ "go.trai.ch/trail/internal/adapters/fs"
	_ "go.trai.ch/trail/internal/adapters/logger"
	_ "go.trai.ch/trail/internal/adapters/parser"
	_ "go.trai.ch/trail/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/trail/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/trail/internal/app"
	_ "go.trai.ch/trail/internal/engine/pathcount"
)
