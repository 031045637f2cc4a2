package typegen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/adapters/shell"
	"go.trai.ch/preppy/internal/core/ports"
)

// NodeID is the unique identifier for the type extractor Graft node.
const NodeID graft.ID = "adapter.type_extractor"

func init() {
	graft.Register(graft.Node[ports.TypeExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.TypeExtractor, error) {
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(runner), nil
		},
	})
}
