package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/config"
	"go.trai.ch/preppy/internal/core/domain"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *domain.Manifest
	}{
		{
			name: "mycli",
			content: `{
				"name": "mycli",
				"version": "1.0.0",
				"main": "dist/node.cjs.js",
				"module": "dist/node.esm.js",
				"bin": {"mycli": "bin/mycli.js"}
			}`,
			want: &domain.Manifest{
				Name:    "mycli",
				Version: "1.0.0",
				Main:    "dist/node.cjs.js",
				Module:  "dist/node.esm.js",
				Bin:     []domain.BinEntry{{Name: "mycli", Path: "bin/mycli.js"}},
			},
		},
		{
			name: "bin object keeps declaration order",
			content: `{
				"bin": {"zeta": "bin/zeta.js", "alpha": "bin/alpha.js", "mid": "bin/mid.js"}
			}`,
			want: &domain.Manifest{
				Bin: []domain.BinEntry{
					{Name: "zeta", Path: "bin/zeta.js"},
					{Name: "alpha", Path: "bin/alpha.js"},
					{Name: "mid", Path: "bin/mid.js"},
				},
			},
		},
		{
			name:    "bin string is named after the unscoped package",
			content: `{"name": "@scope/tool", "bin": "cli.js"}`,
			want: &domain.Manifest{
				Name: "@scope/tool",
				Bin:  []domain.BinEntry{{Name: "tool", Path: "cli.js"}},
			},
		},
		{
			name:    "author object",
			content: `{"author": {"name": "Jane", "email": "jane@example.com"}}`,
			want:    &domain.Manifest{Author: domain.Author{Name: "Jane", Email: "jane@example.com"}},
		},
		{
			name:    "author string",
			content: `{"author": "Jane <jane@example.com>"}`,
			want:    &domain.Manifest{Author: domain.Author{Literal: "Jane <jane@example.com>"}},
		},
		{
			name: "alternate fields and dependencies",
			content: `{
				"jsnext:main": "dist/next.js",
				"typings": "dist/index.d.ts",
				"dependencies": {"react": "^18.0.0"},
				"peerDependencies": {"preact": "^10.0.0"}
			}`,
			want: &domain.Manifest{
				JSNextMain:       "dist/next.js",
				Typings:          "dist/index.d.ts",
				Dependencies:     map[string]string{"react": "^18.0.0"},
				PeerDependencies: map[string]string{"preact": "^10.0.0"},
			},
		},
		{
			name:    "null author and bin",
			content: `{"author": null, "bin": null}`,
			want:    &domain.Manifest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseManifest([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken json", `{"name": `},
		{"bin array", `{"bin": ["a.js"]}`},
		{"author number", `{"author": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseManifest([]byte(tt.content))
			require.ErrorIs(t, err, domain.ErrManifestInvalid)
		})
	}
}

func TestManifestLoader_Load(t *testing.T) {
	t.Run("reads package.json from root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"x","version":"2.0.0"}`), 0o600))

		m, err := config.NewManifestLoader().Load(root)
		require.NoError(t, err)
		assert.Equal(t, "x", m.Name)
		assert.Equal(t, "2.0.0", m.Version)
	})

	t.Run("missing manifest is fatal", func(t *testing.T) {
		_, err := config.NewManifestLoader().Load(t.TempDir())
		require.ErrorIs(t, err, domain.ErrManifestNotFound)
	})
}
