package assets

import (
	"context"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

// PluginName is the esbuild plugin name.
const PluginName = "preppy-assets"

// hashedID matches the import paths ModuleSource generates.
const hashedID = `^\./[^/]+-[0-9a-f]{8}\.[^/]+$`

// Plugin returns an esbuild plugin that extracts assets into folder.
// ctx bounds stylesheet compilation.
func (r *Registry) Plugin(ctx context.Context, folder string) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: hashedID},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if !r.IsExternal(folder, args.Path) {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{Path: args.Path, External: true}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					if !IsAsset(args.Path) {
						return api.OnLoadResult{}, nil
					}

					hash, dest, err := r.Emit(ctx, folder, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}

					contents := ModuleSource(hash, dest)
					return api.OnLoadResult{
						PluginName: PluginName,
						Contents:   &contents,
						ResolveDir: filepath.Dir(args.Path),
						Loader:     api.LoaderJS,
						WatchFiles: []string{args.Path},
					}, nil
				})
		},
	}
}
