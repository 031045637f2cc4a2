package bundler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/adapters/logger"
	"go.trai.ch/preppy/internal/adapters/stylesheet"
	"go.trai.ch/preppy/internal/core/ports"
)

// NodeID is the unique identifier for the bundler Graft node.
const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, stylesheet.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			styles, err := graft.Dep[ports.StyleCompiler](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, styles), nil
		},
	})
}
