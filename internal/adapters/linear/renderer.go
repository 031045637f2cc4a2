// Package linear provides a synchronous, line-per-event renderer for CI logs and pipes.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/preppy/internal/ui/output"
	"go.trai.ch/preppy/internal/ui/style"
)

// Renderer implements ports.Renderer for non-interactive environments.
// In quiet mode only failures are printed.
type Renderer struct {
	w      io.Writer
	output *termenv.Output
	quiet  bool

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer writing to w (stderr when nil).
func NewRenderer(w io.Writer, quiet bool) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		w:      w,
		output: output.NewWithProfile(w, output.ColorProfileANSI),
		quiet:  quiet,
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op: every event is printed when it arrives.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op.
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the headline and the planned tasks.
func (r *Renderer) OnPlanEmit(title string, tasks []string) {
	if r.quiet {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.w, r.output.String(title).Bold().String())
	for _, name := range tasks {
		_, _ = fmt.Fprintf(r.w, "  %s %s\n", r.faint(style.Circle), name)
	}
}

// OnTaskStart records the task and prints its start line.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{name: name, startTime: startTime}

	if r.quiet {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.faint(style.Pointer), name)
}

// OnTaskComplete prints the outcome of a started task.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, summary string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	if err != nil {
		duration := endTime.Sub(task.startTime).Round(time.Millisecond)
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s failed after %v\n", symbol, task.name, duration)
		return
	}

	if r.quiet {
		return
	}

	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	if summary == "" {
		_, _ = fmt.Fprintf(r.w, "%s %s\n", symbol, task.name)
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s %s\n", symbol, task.name, r.faint(summary))
}

func (r *Renderer) faint(s string) string {
	return r.output.String(s).Faint().String()
}
