package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic,
// allowing the same event stream to drive either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called once the task list is known.
	// title is the run headline, tasks the task labels in execution order.
	OnPlanEmit(title string, tasks []string)

	// OnTaskStart is called when a task begins execution.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskComplete is called when a task finishes.
	// summary is the size and timing line; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, summary string, err error)
}
