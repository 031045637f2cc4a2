package ports

import (
	"context"

	"go.trai.ch/preppy/internal/core/domain"
)

// Bundler turns a build task into files on disk.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle runs one build of the task and writes its outputs.
	Bundle(ctx context.Context, task *domain.BuildTask) (*domain.BundleResult, error)

	// NewSession prepares an incremental build of the task for watch mode.
	// ctx bounds the lifetime of the session.
	NewSession(ctx context.Context, task *domain.BuildTask) (BundleSession, error)
}

// BundleSession is a long-lived incremental build of one task.
type BundleSession interface {
	// Rebuild builds the task again and writes its outputs.
	Rebuild(ctx context.Context) (*domain.BundleResult, error)

	// Inputs returns the absolute source files the last build read.
	Inputs() []string

	// Dispose releases the session.
	Dispose()
}
