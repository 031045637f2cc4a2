package stylesheet

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/adapters/shell"
	"go.trai.ch/preppy/internal/core/ports"
)

// NodeID is the unique identifier for the style compiler Graft node.
const NodeID graft.ID = "adapter.style_compiler"

func init() {
	graft.Register(graft.Node[ports.StyleCompiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.StyleCompiler, error) {
			runner, err := graft.Dep[ports.ToolRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(runner), nil
		},
	})
}
