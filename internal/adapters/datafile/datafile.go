// Package datafile lets modules import YAML and TOML files as JSON data.
package datafile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PluginName is the esbuild plugin name.
const PluginName = "preppy-datafile"

// ToJSON converts the YAML or TOML document in data to JSON, picking the
// decoder from the extension of path.
func ToJSON(path string, data []byte) ([]byte, error) {
	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return []byte("null"), nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid YAML"), "path", path)
		}
	case ".toml":
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid TOML"), "path", path)
		}
		doc = table
	default:
		return nil, zerr.With(zerr.New("unsupported data file"), "path", path)
	}

	out, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to encode data file"), "path", path)
	}
	return out, nil
}

// normalize turns the map[any]any YAML produces for non-string keys into
// JSON objects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

// Plugin returns the esbuild plugin that loads .yaml, .yml and .toml imports.
func Plugin() api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.(ya?ml|toml)$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, zerr.With(zerr.Wrap(err, "failed to read data file"), "path", args.Path)
					}
					out, err := ToJSON(args.Path, data)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(out)
					return api.OnLoadResult{
						PluginName: PluginName,
						Contents:   &contents,
						Loader:     api.LoaderJSON,
					}, nil
				})
		},
	}
}
