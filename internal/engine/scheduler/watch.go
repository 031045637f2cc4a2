package scheduler

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Reporter receives watch events. Calls are serialized.
type Reporter func(domain.WatchEvent)

// watchEntry is one task kept alive across rebuilds.
type watchEntry struct {
	task    *domain.BuildTask
	session ports.BundleSession
	failed  bool
}

// Watch builds every bundle task, then rebuilds the affected tasks each time
// the watcher reports changed sources, until ctx ends. Declaration tasks are
// skipped. A failed rebuild is reported as WatchError and watching goes on;
// failing to set up is reported as WatchFatal and returned.
func (s *Scheduler) Watch(ctx context.Context, root string, tasks []domain.BuildTask, report Reporter) error {
	var mu sync.Mutex
	emit := func(ev domain.WatchEvent) {
		mu.Lock()
		defer mu.Unlock()
		report(ev)
	}

	entries := make([]*watchEntry, 0, len(tasks))
	defer func() {
		for _, e := range entries {
			e.session.Dispose()
		}
	}()

	for i := range tasks {
		task := &tasks[i]
		if task.IsDeclaration() {
			s.logger.Debug("skipping " + task.Label() + ": declarations are not rebuilt in watch mode")
			continue
		}
		session, err := s.bundler.NewSession(ctx, task)
		if err != nil {
			err = zerr.With(err, "task", task.Label())
			emit(domain.WatchEvent{Code: domain.WatchFatal, Task: task, Err: err})
			return err
		}
		entries = append(entries, &watchEntry{task: task, session: session})
	}

	if len(entries) == 0 {
		err := zerr.Wrap(domain.ErrNothingToBuild, "no bundle tasks to watch")
		emit(domain.WatchEvent{Code: domain.WatchFatal, Err: err})
		return err
	}

	watched := make([]domain.BuildTask, len(entries))
	for i, e := range entries {
		watched[i] = *e.task
	}
	s.initTaskStatuses(watched)

	if err := s.watcher.Start(ctx, root, IgnorePaths(root, watched)); err != nil {
		err = zerr.Wrap(err, domain.ErrWatchFailed.Error())
		emit(domain.WatchEvent{Code: domain.WatchFatal, Err: err})
		return err
	}

	s.rebuild(ctx, entries, emit)

	for changed := range s.watcher.Changes() {
		if ctx.Err() != nil {
			break
		}
		stale := affected(entries, changed)
		if len(stale) == 0 {
			continue
		}
		s.logger.Debug("rebuilding after changes to " + filepath.Base(changed[0]))
		s.rebuild(ctx, stale, emit)
	}
	return nil
}

// rebuild runs one watch round over entries concurrently.
func (s *Scheduler) rebuild(ctx context.Context, entries []*watchEntry, emit Reporter) {
	tasks := make([]domain.BuildTask, len(entries))
	for i, e := range entries {
		tasks[i] = *e.task
	}
	emit(domain.WatchEvent{Code: domain.WatchStart})
	s.tracer.EmitPlan(ctx, "Rebuilding...", labels(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entries {
		g.Go(func() error {
			res, err := s.traced(gctx, e.task, e.session.Rebuild)
			e.failed = err != nil
			if err != nil {
				emit(domain.WatchEvent{Code: domain.WatchError, Task: e.task, Err: err})
				return nil
			}
			emit(domain.WatchEvent{Code: domain.WatchBundleEnd, Task: e.task, Result: res})
			return nil
		})
	}
	_ = g.Wait()
}

// affected returns the entries to rebuild for a batch of changed files:
// those whose last build read one of them and those whose last build failed.
func affected(entries []*watchEntry, changed []string) []*watchEntry {
	var out []*watchEntry
	for _, e := range entries {
		if e.failed {
			out = append(out, e)
			continue
		}
		inputs := e.session.Inputs()
		if slices.ContainsFunc(changed, func(p string) bool { return slices.Contains(inputs, p) }) {
			out = append(out, e)
		}
	}
	return out
}

// IgnorePaths lists what the watcher must not react to: the written bundles,
// their sourcemaps and output folders other than the root itself.
func IgnorePaths(root string, tasks []domain.BuildTask) []string {
	root = filepath.Clean(root)
	var paths []string
	for i := range tasks {
		out := tasks[i].OutputPath()
		paths = append(paths, out, out+".map")
		if dir := tasks[i].OutputDir(); dir != root {
			paths = append(paths, dir)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}
