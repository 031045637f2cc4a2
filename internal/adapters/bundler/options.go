package bundler

import (
	"context"
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/goccy/go-json"
	"go.trai.ch/preppy/internal/adapters/datafile"
	"go.trai.ch/preppy/internal/core/domain"
)

// defines are the compile-time constants every bundle sees.
func defines(task *domain.BuildTask) map[string]string {
	values := map[string]string{
		"process.env.NAME":    task.Name,
		"process.env.VERSION": task.Version,
		"process.env.TARGET":  string(task.Target),
		"process.env.FORMAT":  string(task.Format),
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		quoted, _ := json.Marshal(v)
		out[k] = string(quoted)
	}
	return out
}

func format(f domain.Format) api.Format {
	if f == domain.FormatESModule {
		return api.FormatESModule
	}
	return api.FormatCommonJS
}

// buildOptions translates a task into esbuild options. Output is kept in
// memory; Bundler writes it after rendering.
func (b *Bundler) buildOptions(ctx context.Context, task *domain.BuildTask) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPoints:       []string{task.InputPath()},
		Outfile:           task.OutputPath(),
		AbsWorkingDir:     task.Root,
		Bundle:            true,
		Write:             false,
		Metafile:          true,
		Format:            format(task.Format),
		Platform:          api.PlatformNode,
		Target:            api.ES2017,
		Packages:          api.PackagesExternal,
		Define:            defines(task),
		MinifyWhitespace:  task.Minify,
		MinifyIdentifiers: task.Minify,
		MinifySyntax:      task.Minify,
		LogLevel:          api.LogLevelSilent,
		Plugins: []api.Plugin{
			datafile.Plugin(),
			b.assets.Plugin(ctx, task.OutputDir()),
		},
	}

	if banner := task.FileBanner(); banner != "" {
		opts.Banner = map[string]string{"js": banner}
	}
	if task.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}

	if task.Variant == domain.VariantReact {
		opts.Loader = map[string]api.Loader{".js": api.LoaderJSX}
		opts.JSX = api.JSXTransform
		opts.JSXFactory = "React.createElement"
		opts.JSXFragment = "React.Fragment"
		opts.Plugins = append(opts.Plugins, b.tags.Plugin(ctx))
	}
	return opts
}

// messageText renders esbuild messages one per line as "file:line:col: text".
func messageText(msgs []api.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		var b strings.Builder
		if loc := m.Location; loc != nil {
			b.WriteString(loc.File)
			b.WriteString(":")
			b.WriteString(strconv.Itoa(loc.Line))
			b.WriteString(":")
			b.WriteString(strconv.Itoa(loc.Column))
			b.WriteString(": ")
		}
		if m.PluginName != "" {
			b.WriteString("[" + m.PluginName + "] ")
		}
		b.WriteString(m.Text)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
