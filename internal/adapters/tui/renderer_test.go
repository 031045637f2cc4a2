package tui_test

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/tui"
)

func newTestRenderer(t *testing.T) (*tui.Renderer, *tui.Model) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	model := tui.NewModel().WithDisableTick()
	renderer := tui.NewRenderer(
		&model,
		io.Discard,
		tea.WithInput(strings.NewReader("")),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	return renderer, &model
}

func TestRenderer_Lifecycle(t *testing.T) {
	renderer, _ := newTestRenderer(t)

	require.NoError(t, renderer.Start(t.Context()))
	require.NoError(t, renderer.Stop())
	require.NoError(t, renderer.Wait())
}

func TestRenderer_ForwardsEvents(t *testing.T) {
	renderer, model := newTestRenderer(t)
	require.NoError(t, renderer.Start(t.Context()))

	start := time.Now()
	renderer.OnPlanEmit("Building mycli-1.0.0...", []string{nodeTask})
	renderer.OnTaskStart("s1", nodeTask, start)
	renderer.OnTaskComplete("s1", start.Add(time.Millisecond), "100 B in 1ms", nil)

	require.NoError(t, renderer.Stop())
	require.NoError(t, renderer.Wait())

	assert.Equal(t, "Building mycli-1.0.0...", model.Title)
	require.Contains(t, model.TaskMap, nodeTask)
	assert.Equal(t, tui.StatusDone, model.TaskMap[nodeTask].Status)
	assert.Equal(t, "100 B in 1ms", model.TaskMap[nodeTask].Summary)
	assert.NotNil(t, renderer.Program())
}
