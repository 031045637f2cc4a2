package tui

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/preppy/internal/adapters/telemetry"
	"go.trai.ch/preppy/internal/ui/output"
)

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a renderer drawing to w (stderr when nil).
func NewRenderer(model *Model, w io.Writer, opts ...tea.ProgramOption) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	opts = append([]tea.ProgramOption{tea.WithOutput(w)}, opts...)
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the program in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop asks the program to draw its final frame and quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the program has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the plan to the model.
func (r *Renderer) OnPlanEmit(title string, tasks []string) {
	r.program.Send(telemetry.MsgPlan{Title: title, Tasks: tasks})
}

// OnTaskStart forwards task start events to the model.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.program.Send(telemetry.MsgTaskStart{
		SpanID:    spanID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnTaskComplete forwards task completion events to the model.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, summary string, err error) {
	r.program.Send(telemetry.MsgTaskComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Summary: summary,
		Err:     err,
	})
}

// Program returns the underlying tea.Program.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
