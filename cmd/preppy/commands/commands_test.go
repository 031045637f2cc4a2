package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/cmd/preppy/commands"
	"go.trai.ch/preppy/internal/adapters/config"
	"go.trai.ch/preppy/internal/build"
	"go.trai.ch/preppy/internal/core/domain"
)

type mockApp struct {
	runFunc func(ctx context.Context, s domain.Settings) error
}

func (m *mockApp) Run(ctx context.Context, s domain.Settings) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, s)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured domain.Settings
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, s domain.Settings) error {
				captured = s
				called = true
				return nil
			},
		}

		cli := commands.New(mock, config.NewSettingsLoader())
		cli.SetArgs([]string{
			"--watch", "-v",
			"--mode", "production",
			"--variant", "react", "--variant", "classic",
			"--output-folder", "out",
			"-o", "linear",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, captured.Watch)
		assert.True(t, captured.Verbose)
		assert.Equal(t, domain.ModeProduction, captured.Mode)
		assert.Equal(t, []domain.Variant{domain.VariantReact, domain.VariantClassic}, captured.Variants)
		assert.Equal(t, "out", captured.OutputFolder)
		assert.Equal(t, "linear", captured.OutputMode)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured domain.Settings
		mock := &mockApp{
			runFunc: func(_ context.Context, s domain.Settings) error {
				captured = s
				return nil
			},
		}

		cli := commands.New(mock, config.NewSettingsLoader())
		cli.SetArgs(nil)

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, ".", captured.Root)
		assert.True(t, captured.Sourcemap)
		assert.True(t, captured.StrictEntries)
		assert.Equal(t, domain.ModeDevelopment, captured.Mode)
		assert.False(t, captured.Watch)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ domain.Settings) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, config.NewSettingsLoader())
		cli.SetArgs(nil)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ domain.Settings) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock, config.NewSettingsLoader())
		cli.SetArgs([]string{"src/index.js"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, config.NewSettingsLoader())
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "preppy version "+build.Version+" (commit: none, date: unknown)\n", buf.String())
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{}, config.NewSettingsLoader())
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "preppy version "+build.Version)
}
