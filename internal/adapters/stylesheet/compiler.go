// Package stylesheet compiles the stylesheet dialects an asset import may use.
package stylesheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StyleCompiler = (*Compiler)(nil)

// Compiler implements ports.StyleCompiler.
// Plain CSS is bundled in process; .scss and .sss are handed to sass and
// postcss (with the sugarss parser) installed in the project.
type Compiler struct {
	runner ports.ToolRunner
}

// NewCompiler creates a new Compiler.
func NewCompiler(runner ports.ToolRunner) *Compiler {
	return &Compiler{runner: runner}
}

// Compile writes the CSS for src to dest. Imports are inlined.
func (c *Compiler) Compile(ctx context.Context, src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStyleCompileFailed, "failed to create output directory"), "path", dest)
	}

	switch ext := strings.ToLower(filepath.Ext(src)); ext {
	case ".css":
		if err := bundleCSS(src, dest); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrStyleCompileFailed, err.Error()), "source", src)
		}
		return nil
	case ".scss":
		return c.runTool(ctx, src, []string{
			"sass", "--no-source-map", "--load-path", filepath.Dir(src), src, dest,
		})
	case ".sss":
		return c.runTool(ctx, src, []string{
			"postcss", src, "--parser", "sugarss", "--no-map", "-o", dest,
		})
	default:
		return zerr.With(zerr.Wrap(domain.ErrStyleCompileFailed, "unsupported stylesheet"), "source", src)
	}
}

func (c *Compiler) runTool(ctx context.Context, src string, argv []string) error {
	if err := c.runner.Run(ctx, projectDir(src), argv, nil); err != nil {
		// The tool error carries its output; it stays the cause.
		return zerr.With(zerr.Wrap(err, "failed to compile "+filepath.Base(src)), "source", src)
	}
	return nil
}

// bundleCSS inlines @import rules with esbuild and writes the result.
func bundleCSS(src, dest string) error {
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{src},
		Outfile:     dest,
		Bundle:      true,
		Write:       false,
		LogLevel:    api.LogLevelSilent,
		Loader: map[string]api.Loader{
			".css": api.LoaderCSS,
		},
		// url() references are left for the browser to resolve.
		External: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg", "*.webp", "*.woff", "*.woff2", "*.ttf", "*.eot"},
	})
	if len(result.Errors) > 0 {
		return errors.New(messageText(result.Errors))
	}

	for _, file := range result.OutputFiles {
		if filepath.Ext(file.Path) != ".css" {
			continue
		}
		if err := os.WriteFile(dest, file.Contents, domain.FilePerm); err != nil { //nolint:gosec // stylesheets are public artifacts
			return err
		}
	}
	return nil
}

func messageText(msgs []api.Message) string {
	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			texts = append(texts, m.Location.File+": "+m.Text)
			continue
		}
		texts = append(texts, m.Text)
	}
	return strings.Join(texts, "\n")
}

// projectDir returns the closest ancestor of path holding a package.json,
// which is where the project's tools are installed.
func projectDir(path string) string {
	start := filepath.Dir(path)
	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, domain.ManifestFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
