package jsxtags

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
)

// PluginName is the esbuild plugin name.
const PluginName = "preppy-jsx-tags"

type dialect struct {
	loader api.Loader
	syntax Syntax
}

var dialects = map[string]dialect{
	".js":  {loader: api.LoaderJSX, syntax: SyntaxJSX},
	".jsx": {loader: api.LoaderJSX, syntax: SyntaxJSX},
	".tsx": {loader: api.LoaderTSX, syntax: SyntaxTSX},
}

// Plugin returns the esbuild plugin that runs Transform on every module
// that may contain JSX. Render must run on the output files. ctx bounds
// parsing.
func (r *Rewriter) Plugin(ctx context.Context) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.(js|jsx|tsx)$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					if strings.Contains(filepath.ToSlash(args.Path), "/"+domain.NodeModulesDir+"/") {
						return api.OnLoadResult{}, nil
					}

					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, zerr.With(zerr.Wrap(err, "failed to read module"), "path", args.Path)
					}

					d := dialects[filepath.Ext(args.Path)]
					contents, state, err := r.Transform(ctx, string(data), d.syntax)
					if err != nil {
						return api.OnLoadResult{}, zerr.With(err, "path", args.Path)
					}
					if !state.Rewritten() {
						return api.OnLoadResult{}, nil
					}
					return api.OnLoadResult{
						PluginName: PluginName,
						Contents:   &contents,
						ResolveDir: filepath.Dir(args.Path),
						Loader:     d.loader,
					}, nil
				})
		},
	}
}
