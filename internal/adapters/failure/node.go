package failure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/preppy/internal/adapters/logger"
	"go.trai.ch/preppy/internal/core/ports"
)

// NodeID is the unique identifier for the failure sink Graft node.
const NodeID graft.ID = "adapter.failure_sink"

func init() {
	graft.Register(graft.Node[ports.FailureSink]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.FailureSink, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Select(log), nil
		},
	})
}
