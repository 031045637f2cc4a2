// Package bundler builds tasks with esbuild.
package bundler

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"go.trai.ch/preppy/internal/adapters/assets"
	"go.trai.ch/preppy/internal/adapters/jsxtags"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler on top of the esbuild Go API.
// The asset registry and tag rewriter live as long as the Bundler, so one
// run never emits an asset twice and never reuses a tag placeholder.
type Bundler struct {
	logger ports.Logger
	assets *assets.Registry
	tags   *jsxtags.Rewriter
}

// New creates a new Bundler.
func New(logger ports.Logger, styles ports.StyleCompiler) *Bundler {
	return &Bundler{
		logger: logger,
		assets: assets.NewRegistry(styles),
		tags:   jsxtags.NewRewriter(),
	}
}

// Bundle builds the task once and writes its outputs.
func (b *Bundler) Bundle(ctx context.Context, task *domain.BuildTask) (*domain.BundleResult, error) {
	start := time.Now()
	result := api.Build(b.buildOptions(ctx, task))
	return b.finish(task, result, start)
}

// NewSession creates an esbuild context for incremental rebuilds of the task.
func (b *Bundler) NewSession(ctx context.Context, task *domain.BuildTask) (ports.BundleSession, error) {
	esbuildCtx, ctxErr := api.Context(b.buildOptions(ctx, task))
	if ctxErr != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrWatchFailed, messageText(ctxErr.Errors)), "task", task.Label())
	}
	return &session{bundler: b, task: task, ctx: esbuildCtx}, nil
}

// finish checks the esbuild result, renders and writes the output files.
func (b *Bundler) finish(task *domain.BuildTask, result api.BuildResult, start time.Time) (*domain.BundleResult, error) {
	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		text := messageText([]api.Message{w})
		warnings = append(warnings, text)
		b.logger.Warn(task.RelInput() + ": " + text)
	}

	if len(result.Errors) > 0 {
		err := zerr.Wrap(domain.ErrBundleFailed, messageText(result.Errors))
		err = zerr.With(err, "input", task.RelInput())
		return nil, zerr.With(err, "output", task.RelOutput())
	}

	files := slices.Clone(result.OutputFiles)
	// The bundle leads, its sourcemap follows.
	slices.SortStableFunc(files, func(a, c api.OutputFile) int {
		return boolRank(a.Path != task.OutputPath()) - boolRank(c.Path != task.OutputPath())
	})

	outputs := make([]domain.OutputFile, 0, len(files))
	var edits []jsxtags.Edit
	for _, file := range files {
		contents, err := render(task, file, &edits)
		if err != nil {
			return nil, err
		}
		out, err := b.write(task, file.Path, contents)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	inputs, err := metafileInputs(task.Root, result.Metafile)
	if err != nil {
		return nil, err
	}

	return &domain.BundleResult{
		Outputs:  outputs,
		Inputs:   inputs,
		Warnings: warnings,
		Duration: time.Since(start),
	}, nil
}

// render resolves the JSX tag markers of a script and records its edits,
// then moves the following sourcemap by those edits.
func render(task *domain.BuildTask, file api.OutputFile, edits *[]jsxtags.Edit) ([]byte, error) {
	switch {
	case file.Path == task.OutputPath() || strings.HasSuffix(file.Path, ".js"):
		rendered, fileEdits, err := jsxtags.Render(string(file.Contents))
		if err != nil {
			return nil, zerr.With(err, "output", task.RelOutput())
		}
		*edits = fileEdits
		return []byte(rendered), nil
	case strings.HasSuffix(file.Path, ".map"):
		shifted, err := jsxtags.ShiftSourceMap(file.Contents, *edits)
		if err != nil {
			return nil, zerr.With(err, "output", task.RelOutput()+".map")
		}
		return shifted, nil
	}
	return file.Contents, nil
}

func (b *Bundler) write(task *domain.BuildTask, path string, contents []byte) (domain.OutputFile, error) {
	isBundle := path == task.OutputPath()

	perm := os.FileMode(domain.FilePerm)
	if isBundle && task.IsExecutable() {
		perm = domain.ExecPerm
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return domain.OutputFile{}, zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}
	if err := os.WriteFile(path, contents, perm); err != nil {
		return domain.OutputFile{}, zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}
	// WriteFile keeps the mode of a file that already existed.
	if err := os.Chmod(path, perm); err != nil {
		return domain.OutputFile{}, zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}

	out := domain.OutputFile{Path: relPath(task.Root, path), Size: len(contents)}
	if isBundle && !task.IsExecutable() {
		out.GzipSize = gzipSize(contents)
	}
	return out, nil
}

// gzipSize returns the size of data after gzip compression at the best level.
func gzipSize(data []byte) int {
	var n countingWriter
	zw, err := gzip.NewWriterLevel(&n, gzip.BestCompression)
	if err != nil {
		return 0
	}
	if _, err := zw.Write(data); err != nil {
		return 0
	}
	if err := zw.Close(); err != nil {
		return 0
	}
	return int(n)
}

type countingWriter int64

func (w *countingWriter) Write(p []byte) (int, error) {
	*w += countingWriter(len(p))
	return len(p), nil
}

var _ io.Writer = (*countingWriter)(nil)

// metafile is the part of esbuild's metafile preppy reads.
type metafile struct {
	Inputs map[string]struct {
		Bytes int `json:"bytes"`
	} `json:"inputs"`
}

// metafileInputs returns the absolute paths of the source files a build read.
func metafileInputs(root, raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, zerr.Wrap(err, "invalid esbuild metafile")
	}

	inputs := make([]string, 0, len(meta.Inputs))
	for p := range meta.Inputs {
		// Virtual modules are reported as "namespace:path".
		if ns, _, ok := strings.Cut(p, ":"); ok && len(ns) > 1 && !strings.ContainsAny(ns, `/\`) {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, filepath.FromSlash(p))
		}
		inputs = append(inputs, p)
	}
	slices.Sort(inputs)
	return inputs, nil
}

func relPath(root, p string) string {
	if r, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(r)
	}
	return p
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// session is an incremental build of one task.
type session struct {
	bundler *Bundler
	task    *domain.BuildTask
	ctx     api.BuildContext

	mu     sync.Mutex
	inputs []string
}

func (s *session) Rebuild(ctx context.Context) (*domain.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := s.bundler.finish(s.task, s.ctx.Rebuild(), start)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.inputs = res.Inputs
	s.mu.Unlock()
	return res, nil
}

func (s *session) Inputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.inputs)
}

func (s *session) Dispose() {
	s.ctx.Dispose()
}
