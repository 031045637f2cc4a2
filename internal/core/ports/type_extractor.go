package ports

import (
	"context"

	"go.trai.ch/preppy/internal/core/domain"
)

// TypeExtractor emits TypeScript declaration files for a task.
//
//go:generate mockgen -source=type_extractor.go -destination=mocks/mock_type_extractor.go -package=mocks
type TypeExtractor interface {
	// Extract writes the declarations of task.Input to task.Output.
	Extract(ctx context.Context, task *domain.BuildTask) (*domain.BundleResult, error)
}
