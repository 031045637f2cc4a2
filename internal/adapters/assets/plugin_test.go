package assets_test

import (
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/assets"
	"go.trai.ch/preppy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestPlugin_ExtractsAssets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "logo.png"), "hello")
	writeFile(t, filepath.Join(dir, "src", "icons", "same.png"), "hello")
	entry := writeFile(t, filepath.Join(dir, "src", "index.js"),
		"import logo from \"./logo.png\";\nimport same from \"./icons/same.png\";\nexport default [logo, same];\n")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Outfile:     filepath.Join(out, "index.js"),
		Bundle:      true,
		Write:       false,
		Format:      api.FormatCommonJS,
		Platform:    api.PlatformNode,
		LogLevel:    api.LogLevelSilent,
		Plugins:     []api.Plugin{r.Plugin(t.Context(), out)},
	})
	require.Empty(t, result.Errors)
	require.NotEmpty(t, result.OutputFiles)

	code := string(result.OutputFiles[0].Contents)
	assert.Contains(t, code, `require("./logo-2cf24dba.png")`)
	assert.NotContains(t, code, "same-")
	assert.FileExists(t, filepath.Join(out, "logo-2cf24dba.png"))
	assert.NoFileExists(t, filepath.Join(out, "same-2cf24dba.png"))
}

func TestPlugin_ReportsEmitErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "theme.scss"), ".a {")
	entry := writeFile(t, filepath.Join(dir, "src", "index.js"), "import \"./theme.scss\";\n")

	ctrl := gomock.NewController(t)
	styles := mocks.NewMockStyleCompiler(ctrl)
	styles.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	r := assets.NewRegistry(styles)
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Outfile:     filepath.Join(dir, "dist", "index.js"),
		Bundle:      true,
		Write:       false,
		LogLevel:    api.LogLevelSilent,
		Plugins:     []api.Plugin{r.Plugin(t.Context(), filepath.Join(dir, "dist"))},
	})
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Text, assert.AnError.Error())
}
