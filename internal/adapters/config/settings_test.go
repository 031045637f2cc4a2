package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/config"
	"go.trai.ch/preppy/internal/core/domain"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("preppy", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestSettingsLoader_Defaults(t *testing.T) {
	root := t.TempDir()

	s, err := config.NewSettingsLoader().Resolve(newFlags(t, "--root", root))
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.Root = root
	assert.Equal(t, want, s)
}

func TestSettingsLoader_Precedence(t *testing.T) {
	root := t.TempDir()
	settingsFile := `
output-folder: from-file
mode: production
quiet: true
variant:
  - react
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "preppy.yaml"), []byte(settingsFile), 0o600))

	t.Run("file over defaults", func(t *testing.T) {
		s, err := config.NewSettingsLoader().Resolve(newFlags(t, "--root", root))
		require.NoError(t, err)

		assert.Equal(t, "from-file", s.OutputFolder)
		assert.Equal(t, domain.ModeProduction, s.Mode)
		assert.True(t, s.Quiet)
		assert.Equal(t, []domain.Variant{domain.VariantReact}, s.Variants)
		assert.True(t, s.Sourcemap)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("PREPPY_OUTPUT_FOLDER", "from-env")
		t.Setenv("PREPPY_STRICT_ENTRIES", "false")

		s, err := config.NewSettingsLoader().Resolve(newFlags(t, "--root", root))
		require.NoError(t, err)

		assert.Equal(t, "from-env", s.OutputFolder)
		assert.False(t, s.StrictEntries)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("PREPPY_OUTPUT_FOLDER", "from-env")

		s, err := config.NewSettingsLoader().Resolve(newFlags(t,
			"--root", root,
			"--output-folder", "from-flag",
			"--variant", "classic,react",
			"-m=false",
		))
		require.NoError(t, err)

		assert.Equal(t, "from-flag", s.OutputFolder)
		assert.Equal(t, []domain.Variant{domain.VariantClassic, domain.VariantReact}, s.Variants)
		assert.False(t, s.Sourcemap)
	})
}

func TestSettingsLoader_InvalidFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "preppy.yaml"), []byte("mode: [unclosed"), 0o600))

	_, err := config.NewSettingsLoader().Resolve(newFlags(t, "--root", root))
	require.ErrorIs(t, err, domain.ErrSettingsInvalid)
}
