package ports

import (
	"context"
	"io"
)

// ToolRunner runs an external command line tool from the project.
//
//go:generate mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	// Run executes argv in dir, streaming combined output to out.
	// Tools installed under node_modules/.bin are found before PATH.
	Run(ctx context.Context, dir string, argv []string, out io.Writer) error
}
