package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/adapters/bundler"
	"go.trai.ch/preppy/internal/adapters/config"
	"go.trai.ch/preppy/internal/adapters/failure"
	"go.trai.ch/preppy/internal/adapters/logger"
	"go.trai.ch/preppy/internal/adapters/typegen"
	"go.trai.ch/preppy/internal/adapters/watcher"
	"go.trai.ch/preppy/internal/core/ports"
)

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app.components"

// Components is what the command line needs from the dependency graph.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *config.SettingsLoader
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ManifestNodeID,
			config.SettingsNodeID,
			bundler.NodeID,
			typegen.NodeID,
			watcher.NodeID,
			logger.NodeID,
			failure.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			manifests, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}
			b, err := graft.Dep[ports.Bundler](ctx)
			if err != nil {
				return nil, err
			}
			types, err := graft.Dep[ports.TypeExtractor](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			sink, err := graft.Dep[ports.FailureSink](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:      New(manifests, b, types, w, log, sink),
				Logger:   log,
				Settings: settings,
			}, nil
		},
	})
}
