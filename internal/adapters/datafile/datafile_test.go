package datafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/datafile"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want string
	}{
		{
			name: "yaml mapping",
			path: "config.yaml",
			data: "name: mycli\nport: 8080\ntags:\n  - a\n  - b\n",
			want: `{"name":"mycli","port":8080,"tags":["a","b"]}`,
		},
		{
			name: "yaml non-string keys",
			path: "codes.yml",
			data: "1: one\ntrue: yes\n",
			want: `{"1":"one","true":"yes"}`,
		},
		{
			name: "empty yaml",
			path: "empty.yaml",
			data: "\n",
			want: `null`,
		},
		{
			name: "toml",
			path: "settings.toml",
			data: "title = \"demo\"\n\n[server]\nport = 80\n",
			want: `{"server":{"port":80},"title":"demo"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datafile.ToJSON(tt.path, []byte(tt.data))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestToJSON_Invalid(t *testing.T) {
	_, err := datafile.ToJSON("broken.yaml", []byte("a: [1, 2\n"))
	require.Error(t, err)

	_, err = datafile.ToJSON("broken.toml", []byte("title = \n"))
	require.Error(t, err)

	_, err = datafile.ToJSON("data.ini", []byte("a=1"))
	require.Error(t, err)
}

func TestPlugin_ImportsData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("greeting: hello\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.toml"), []byte("build = 7\n"), 0o600))
	entry := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(entry, []byte(
		"import config from \"./config.yaml\"\nimport meta from \"./meta.toml\"\nconsole.log(config.greeting, meta.build)\n"), 0o600))

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		LogLevel:    api.LogLevelSilent,
		Plugins:     []api.Plugin{datafile.Plugin()},
	})
	require.Empty(t, result.Errors)

	code := string(result.OutputFiles[0].Contents)
	assert.Contains(t, code, `"hello"`)
	assert.Contains(t, code, "7")
}
