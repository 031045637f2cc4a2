package assets_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/assets"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIsAsset(t *testing.T) {
	for _, p := range []string{"a.png", "b.css", "c.scss", "d.sss", "e.woff2", "f.SVG"} {
		assert.True(t, assets.IsAsset(p), p)
	}
	for _, p := range []string{
		"a.js", "b.jsx", "c.mjs", "d.cjs", "e.ts", "f.tsx",
		"g.es", "h.es5", "i.es6", "j.json", "k.yaml", "l.yml", "m.toml", "LICENSE",
	} {
		assert.False(t, assets.IsAsset(p), p)
	}
}

func TestDestName(t *testing.T) {
	assert.Equal(t, "logo-1a2b3c4d.png", assets.DestName("/src/logo.png", "1a2b3c4d"))
	assert.Equal(t, "theme-1a2b3c4d.css", assets.DestName("/src/theme.scss", "1a2b3c4d"))
	assert.Equal(t, "card-1a2b3c4d.css", assets.DestName("/src/card.sss", "1a2b3c4d"))
}

func TestModuleSource(t *testing.T) {
	assert.Equal(t,
		`import h1a2b3c4d from "./logo-1a2b3c4d.png"; export default h1a2b3c4d;`,
		assets.ModuleSource("1a2b3c4d", "logo-1a2b3c4d.png"))
}

func TestFileHash(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "hello.txt"), "hello")

	hash, err := assets.FileHash(path)
	require.NoError(t, err)
	// sha256("hello") = 2cf24dba...
	assert.Equal(t, "2cf24dba", hash)
}

func TestRegistry_Emit_Copies(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "src", "logo.png"), "hello")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	hash, dest, err := r.Emit(t.Context(), out, src)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba", hash)
	assert.Equal(t, "logo-2cf24dba.png", dest)

	data, err := os.ReadFile(filepath.Join(out, dest))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.True(t, r.IsExternal(out, "./logo-2cf24dba.png"))
	assert.False(t, r.IsExternal(filepath.Join(dir, "other"), "./logo-2cf24dba.png"))
}

func TestRegistry_Emit_SameContentReusesFirstDestination(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "src", "logo.png"), "hello")
	second := writeFile(t, filepath.Join(dir, "src", "copy", "icon.png"), "hello")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	_, dest1, err := r.Emit(t.Context(), out, first)
	require.NoError(t, err)
	_, dest2, err := r.Emit(t.Context(), out, second)
	require.NoError(t, err)

	assert.Equal(t, dest1, dest2)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegistry_Emit_SameContentKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	icon := writeFile(t, filepath.Join(dir, "icon.svg"), "")
	font := writeFile(t, filepath.Join(dir, "font.woff2"), "")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	_, dest1, err := r.Emit(t.Context(), out, icon)
	require.NoError(t, err)
	_, dest2, err := r.Emit(t.Context(), out, font)
	require.NoError(t, err)

	// sha256("") = e3b0c442...
	assert.Equal(t, "icon-e3b0c442.svg", dest1)
	assert.Equal(t, "font-e3b0c442.woff2", dest2)
	assert.FileExists(t, filepath.Join(out, dest1))
	assert.FileExists(t, filepath.Join(out, dest2))
	assert.True(t, r.IsExternal(out, "./font-e3b0c442.woff2"))
}

func TestRegistry_Emit_ChangedContentGetsNewName(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "src", "logo.png"), "hello")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	hash1, dest1, err := r.Emit(t.Context(), out, src)
	require.NoError(t, err)

	writeFile(t, src, "hellp")
	hash2, dest2, err := r.Emit(t.Context(), out, src)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, "logo-"+hash2+".png", dest2)
	assert.NotEqual(t, dest1, dest2)

	old, err := os.ReadFile(filepath.Join(out, dest1))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(old))
	updated, err := os.ReadFile(filepath.Join(out, dest2))
	require.NoError(t, err)
	assert.Equal(t, "hellp", string(updated))
}

func TestRegistry_Emit_PerFolder(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "logo.png"), "hello")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	for _, folder := range []string{"dist", "bin"} {
		_, dest, err := r.Emit(t.Context(), filepath.Join(dir, folder), src)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, folder, dest))
	}
}

func TestRegistry_Emit_CompilesStylesOnce(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "theme.scss"), "$c: red;")
	out := filepath.Join(dir, "dist")

	ctrl := gomock.NewController(t)
	styles := mocks.NewMockStyleCompiler(ctrl)
	styles.EXPECT().
		Compile(gomock.Any(), src, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, dest string) error {
			assert.Equal(t, ".css", filepath.Ext(dest))
			return nil
		}).
		Times(1)

	r := assets.NewRegistry(styles)

	var wg sync.WaitGroup
	dests := make([]string, 8)
	for i := range dests {
		wg.Go(func() {
			_, dest, err := r.Emit(t.Context(), out, src)
			assert.NoError(t, err)
			dests[i] = dest
		})
	}
	wg.Wait()

	for _, d := range dests {
		assert.Equal(t, dests[0], d)
	}
}

func TestRegistry_Emit_StyleFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "theme.scss"), ".a {")

	ctrl := gomock.NewController(t)
	styles := mocks.NewMockStyleCompiler(ctrl)
	styles.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrStyleCompileFailed)

	r := assets.NewRegistry(styles)
	_, _, err := r.Emit(t.Context(), filepath.Join(dir, "dist"), src)
	require.ErrorIs(t, err, domain.ErrStyleCompileFailed)
}

func TestRegistry_Emit_MissingSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	_, _, err := r.Emit(t.Context(), t.TempDir(), "/no/such/file.png")
	require.ErrorIs(t, err, domain.ErrAssetEmitFailed)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRegistry_Emit_CopyFailureKeepsCause(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "logo.png"), "hello")
	// The output folder is a regular file, so it cannot be created.
	out := writeFile(t, filepath.Join(dir, "dist"), "")

	ctrl := gomock.NewController(t)
	r := assets.NewRegistry(mocks.NewMockStyleCompiler(ctrl))

	_, _, err := r.Emit(t.Context(), out, src)
	require.ErrorIs(t, err, domain.ErrAssetEmitFailed)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Contains(t, err.Error(), "failed to copy asset")
}
