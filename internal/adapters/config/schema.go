package config

import "github.com/goccy/go-json"

// PackageJSON is the subset of package.json the loader decodes.
// Author and Bin accept more than one JSON shape and are decoded separately.
type PackageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Author           json.RawMessage   `json:"author"`
	Main             string            `json:"main"`
	Module           string            `json:"module"`
	JSNextMain       string            `json:"jsnext:main"`
	Types            string            `json:"types"`
	Typings          string            `json:"typings"`
	Bin              json.RawMessage   `json:"bin"`
	Dependencies     map[string]string `json:"dependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// AuthorDTO is the object form of the "author" field.
type AuthorDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SettingsFile mirrors preppy.yaml and the merged viper keys.
type SettingsFile struct {
	InputNode     string   `mapstructure:"input-node"`
	InputBinary   string   `mapstructure:"input-binary"`
	OutputFolder  string   `mapstructure:"output-folder"`
	Sourcemap     bool     `mapstructure:"sourcemap"`
	Verbose       bool     `mapstructure:"verbose"`
	Quiet         bool     `mapstructure:"quiet"`
	Watch         bool     `mapstructure:"watch"`
	Parallel      bool     `mapstructure:"parallel"`
	StrictEntries bool     `mapstructure:"strict-entries"`
	Mode          string   `mapstructure:"mode"`
	Variant       []string `mapstructure:"variant"`
	OutputMode    string   `mapstructure:"output-mode"`
}
