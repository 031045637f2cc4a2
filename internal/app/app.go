// Package app implements the application layer for preppy.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/preppy/internal/adapters/detector"
	"go.trai.ch/preppy/internal/adapters/linear"
	"go.trai.ch/preppy/internal/adapters/telemetry"
	"go.trai.ch/preppy/internal/adapters/tui"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/preppy/internal/engine/planner"
	"go.trai.ch/preppy/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	manifests   ports.ManifestLoader
	bundler     ports.Bundler
	types       ports.TypeExtractor
	watcher     ports.Watcher
	logger      ports.Logger
	failure     ports.FailureSink
	stderr      io.Writer
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	bundler ports.Bundler,
	types ports.TypeExtractor,
	watcher ports.Watcher,
	log ports.Logger,
	failure ports.FailureSink,
) *App {
	return &App{
		manifests: manifests,
		bundler:   bundler,
		types:     types,
		watcher:   watcher,
		logger:    log,
		failure:   failure,
		stderr:    os.Stderr,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// WithOutput sets where progress is rendered.
func (a *App) WithOutput(w io.Writer) *App {
	a.stderr = w
	return a
}

// levelSetter is implemented by loggers whose verbosity follows the settings.
type levelSetter interface {
	SetLevel(verbose, quiet bool)
}

// Run plans the build described by the settings and the manifest under
// s.Root, then executes it once or keeps watching.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, s domain.Settings) error {
	if l, ok := a.logger.(levelSetter); ok {
		l.SetLevel(s.Verbose, s.Quiet)
	}

	// 1. Plan
	manifest, err := a.manifests.Load(s.Root)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	opts, err := planner.NewBuildOptions(&s, manifest)
	if err != nil {
		return err
	}

	warnings, err := planner.CheckEntries(&opts)
	for _, w := range warnings {
		a.logger.Warn(w)
	}
	if err != nil {
		return err
	}

	tasks, err := planner.BuildTasks(&opts)
	if err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("planned %d tasks in %s", len(tasks), opts.Root))

	// 2. Renderer and telemetry
	mode, err := detector.ResolveMode(detector.DetectEnvironment(), s.OutputMode, opts.Quiet)
	if err != nil {
		return err
	}
	renderer := a.newRenderer(ctx, mode, opts.Quiet)

	tracer := telemetry.NewOTelTracer("preppy", renderer)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	// The watcher is created with the graph; release it whatever the mode.
	defer func() {
		_ = a.watcher.Stop()
	}()

	sched := scheduler.NewScheduler(a.bundler, a.types, a.watcher, tracer, a.logger)

	if opts.Watch {
		a.logger.Info(opts.Headline())
	}

	// 3. Run renderer and scheduler concurrently
	var fatal error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(a.stderr, "Scheduler panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		if opts.Watch {
			fatal = sched.Watch(gctx, opts.Root, tasks, a.report)
			return nil
		}
		if err := sched.Run(gctx, opts.Headline(), tasks, opts.Parallel); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	err = g.Wait()
	if fatal != nil {
		return a.failure.Fail(fatal)
	}
	if opts.Watch && interrupted(err) {
		return nil
	}
	return err
}

// report handles the events of a watch session. Fatal events are returned
// by the scheduler as well and go through the failure sink there.
func (a *App) report(ev domain.WatchEvent) {
	switch ev.Code {
	case domain.WatchStart:
		a.logger.Debug("rebuild started")
	case domain.WatchBundleEnd:
		a.logger.Debug(ev.Task.Label() + " " + ev.Result.Summary())
	case domain.WatchError:
		a.logger.Error(ev.Err)
	}
}

func (a *App) newRenderer(ctx context.Context, mode detector.OutputMode, quiet bool) ports.Renderer {
	if mode == detector.ModeTUI {
		model := tui.NewModel()
		if a.disableTick {
			model = model.WithDisableTick()
		}
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.NewRenderer(&model, a.stderr, opts...)
	}
	return linear.NewRenderer(a.stderr, quiet)
}

// interrupted reports whether err only says the user stopped the program.
func interrupted(err error) bool {
	return errors.Is(err, tea.ErrInterrupted) ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, context.Canceled)
}
