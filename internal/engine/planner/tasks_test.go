package planner_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/engine/planner"
)

// plan resolves options for a manifest under a fresh root holding files.
func plan(t *testing.T, m *domain.Manifest, mutate func(*domain.Settings), files ...string) domain.BuildOptions {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files...)

	s := settingsFor(root)
	if mutate != nil {
		mutate(&s)
	}
	opts, err := planner.NewBuildOptions(&s, m)
	require.NoError(t, err)
	return opts
}

func labels(tasks []domain.BuildTask) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Label()
	}
	return out
}

func TestBuildTasks_Mycli(t *testing.T) {
	opts := plan(t, mycliManifest(), nil, "src/index.js", "src/binary.js")

	warnings, err := planner.CheckEntries(&opts)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	tasks, err := planner.BuildTasks(&opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[NODE] src/index.js › dist/node.esm.js [ESMODULE]",
		"[NODE] src/index.js › dist/node.cjs.js [COMMONJS]",
		"[BINARY] src/binary.js › bin/mycli.js [COMMONJS]",
	}, labels(tasks))

	for i := range tasks {
		assert.Equal(t, domain.VariantClassic, tasks[i].Variant)
		assert.Equal(t, "/*! mycli v1.0.0 */", tasks[i].Banner)
		assert.True(t, tasks[i].Sourcemap)
	}
}

func TestBuildTasks_NoBinDeclaredIsSilent(t *testing.T) {
	m := mycliManifest()
	m.Bin = nil

	opts := plan(t, m, nil, "src/index.js")

	warnings, err := planner.CheckEntries(&opts)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	tasks, err := planner.BuildTasks(&opts)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for i := range tasks {
		assert.Equal(t, domain.TargetNode, tasks[i].Target)
	}
}

func TestCheckEntries_DeclaredBinWithoutSource(t *testing.T) {
	t.Run("strict entries fail", func(t *testing.T) {
		opts := plan(t, mycliManifest(), nil, "src/index.js")

		_, err := planner.CheckEntries(&opts)
		require.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("lenient entries warn and skip", func(t *testing.T) {
		opts := plan(t, mycliManifest(), func(s *domain.Settings) { s.StrictEntries = false }, "src/index.js")

		warnings, err := planner.CheckEntries(&opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"no binary entry found, skipping its outputs"}, warnings)

		tasks, err := planner.BuildTasks(&opts)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("output folder never requires an entry", func(t *testing.T) {
		opts := plan(t, mycliManifest(), func(s *domain.Settings) { s.OutputFolder = "out" }, "src/index.js")

		warnings, err := planner.CheckEntries(&opts)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
	})
}

func TestBuildTasks_OutputFolder(t *testing.T) {
	opts := plan(t, mycliManifest(), func(s *domain.Settings) { s.OutputFolder = "out" },
		"src/index.js", "src/binary.js")

	tasks, err := planner.BuildTasks(&opts)
	require.NoError(t, err)

	outputs := make([]string, len(tasks))
	for i := range tasks {
		outputs[i] = filepath.ToSlash(tasks[i].Output)
	}
	assert.Equal(t, []string{"out/node.esmodule.js", "out/node.commonjs.js", "out/binary.js"}, outputs)
}

func TestBuildTasks_TypesOnceForTypeScript(t *testing.T) {
	m := &domain.Manifest{
		Name:  "typed",
		Main:  "dist/index.js",
		Types: "dist/index.d.ts",
	}

	t.Run("typescript entry", func(t *testing.T) {
		opts := plan(t, m, func(s *domain.Settings) {
			s.Variants = []domain.Variant{domain.VariantReact}
		}, "src/index.ts")

		tasks, err := planner.BuildTasks(&opts)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"[NODE] src/index.ts › dist/index.js [COMMONJS]",
			"[NODE] src/index.ts › dist/index.d.ts [TYPES]",
		}, labels(tasks))
		assert.Equal(t, domain.VariantReact, tasks[0].Variant)
		assert.Equal(t, domain.VariantReact, tasks[1].Variant)
		assert.True(t, tasks[1].IsDeclaration())
	})

	t.Run("javascript entry", func(t *testing.T) {
		opts := plan(t, m, nil, "src/index.js")

		tasks, err := planner.BuildTasks(&opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"[NODE] src/index.js › dist/index.js [COMMONJS]"}, labels(tasks))
	})
}

func TestBuildTasks_DeduplicatesOutputs(t *testing.T) {
	m := &domain.Manifest{
		Main:   "dist/index.js",
		Module: "dist/index.js",
	}
	opts := plan(t, m, nil, "src/index.js")

	tasks, err := planner.BuildTasks(&opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"[NODE] src/index.js › dist/index.js [ESMODULE]"}, labels(tasks))
}

func TestBuildTasks_NothingToBuild(t *testing.T) {
	opts := plan(t, &domain.Manifest{Name: "empty"}, nil, "src/index.js")

	_, err := planner.BuildTasks(&opts)
	require.ErrorIs(t, err, domain.ErrNothingToBuild)
}
