// Package typegen emits TypeScript declaration files through tsc.
package typegen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TypeExtractor = (*Extractor)(nil)

// Extractor implements ports.TypeExtractor.
type Extractor struct {
	runner ports.ToolRunner
}

// NewExtractor creates a new Extractor.
func NewExtractor(runner ports.ToolRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract runs tsc on the task entry and places the entry's declaration file
// at the task output. Declarations of imported modules land next to it.
func (e *Extractor) Extract(ctx context.Context, task *domain.BuildTask) (*domain.BundleResult, error) {
	start := time.Now()

	if !domain.IsTypeScriptEntry(task.Input) {
		return nil, zerr.With(zerr.Wrap(domain.ErrTypesFailed, "entry is not a TypeScript file"), "input", task.RelInput())
	}

	declDir := task.OutputDir()
	if err := os.MkdirAll(declDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTypesFailed, "failed to create output directory"), "path", declDir)
	}

	argv := []string{
		"tsc", task.RelInput(),
		"--declaration",
		"--emitDeclarationOnly",
		"--skipLibCheck",
		"--declarationDir", declDir,
	}
	if err := e.runner.Run(ctx, task.Root, argv, nil); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "tsc could not emit declarations"), "input", task.RelInput())
	}

	emitted := filepath.Join(declDir, declarationName(task.Input))
	if emitted != task.OutputPath() {
		if err := os.Rename(emitted, task.OutputPath()); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrTypesFailed, "declaration file missing"), "path", emitted)
		}
	}

	info, err := os.Stat(task.OutputPath())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTypesFailed, "declaration file missing"), "path", task.RelOutput())
	}

	return &domain.BundleResult{
		Outputs:  []domain.OutputFile{{Path: task.RelOutput(), Size: int(info.Size())}},
		Inputs:   []string{task.InputPath()},
		Duration: time.Since(start),
	}, nil
}

// declarationName maps an entry file name to the one tsc emits: index.tsx -> index.d.ts.
func declarationName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".d.ts"
}
