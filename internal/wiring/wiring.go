// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/preppy/internal/adapters/bundler"
	_ "go.trai.ch/preppy/internal/adapters/config"
	_ "go.trai.ch/preppy/internal/adapters/failure"
	_ "go.trai.ch/preppy/internal/adapters/logger"
	_ "go.trai.ch/preppy/internal/adapters/shell"
	_ "go.trai.ch/preppy/internal/adapters/stylesheet"
	_ "go.trai.ch/preppy/internal/adapters/typegen"
	_ "go.trai.ch/preppy/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/preppy/internal/app"
)
