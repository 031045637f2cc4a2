// Package scheduler executes build tasks once or keeps rebuilding them while
// sources change.
package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
)

// Scheduler runs build tasks through the bundler and the type extractor.
type Scheduler struct {
	bundler ports.Bundler
	types   ports.TypeExtractor
	watcher ports.Watcher
	tracer  ports.Tracer
	logger  ports.Logger

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	bundler ports.Bundler,
	types ports.TypeExtractor,
	watcher ports.Watcher,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		bundler:    bundler,
		types:      types,
		watcher:    watcher,
		tracer:     tracer,
		logger:     logger,
		taskStatus: make(map[string]TaskStatus),
	}
}

// Status returns the status of the task writing output.
func (s *Scheduler) Status(output string) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[output]
}

func (s *Scheduler) initTaskStatuses(tasks []domain.BuildTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range tasks {
		s.taskStatus[tasks[i].Output] = StatusPending
	}
}

func (s *Scheduler) updateStatus(task *domain.BuildTask, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[task.Output] = status
}

// Run executes every task once under the given headline.
//
// Tasks run one after another and the first failure stops the run. With
// parallel set they run concurrently, limited to the number of CPUs, every
// task runs to completion and all failures are returned joined.
func (s *Scheduler) Run(ctx context.Context, title string, tasks []domain.BuildTask, parallel bool) error {
	s.tracer.EmitPlan(ctx, title, labels(tasks))
	s.initTaskStatuses(tasks)

	if !parallel {
		for i := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.executeTask(ctx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		errMu sync.Mutex
		errs  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range tasks {
		g.Go(func() error {
			if _, err := s.executeTask(gctx, &tasks[i]); err != nil {
				errMu.Lock()
				errs = errors.Join(errs, err)
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// executeTask runs one task inside a span. The span ends before the result
// is returned so renderers see the task finish first.
func (s *Scheduler) executeTask(ctx context.Context, task *domain.BuildTask) (*domain.BundleResult, error) {
	return s.traced(ctx, task, func(ctx context.Context) (*domain.BundleResult, error) {
		if task.IsDeclaration() {
			return s.types.Extract(ctx, task)
		}
		return s.bundler.Bundle(ctx, task)
	})
}

func (s *Scheduler) traced(
	ctx context.Context,
	task *domain.BuildTask,
	fn func(context.Context) (*domain.BundleResult, error),
) (*domain.BundleResult, error) {
	ctx, span := s.tracer.Start(ctx, task.Label())
	defer span.End()

	s.updateStatus(task, StatusRunning)
	res, err := fn(ctx)
	if err != nil {
		s.updateStatus(task, StatusFailed)
		err = zerr.With(err, "task", task.Label())
		span.RecordError(err)
		return nil, err
	}

	s.updateStatus(task, StatusCompleted)
	span.SetAttribute(ports.SummaryAttribute, res.Summary())
	return res, nil
}

func labels(tasks []domain.BuildTask) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Label()
	}
	return out
}
