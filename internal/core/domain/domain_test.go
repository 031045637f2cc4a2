package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/preppy/internal/core/domain"
)

func TestBanner(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		version string
		author  domain.Author
		want    string
	}{
		{
			name:    "no author",
			pkg:     "mycli",
			version: "1.0.0",
			want:    "/*! mycli v1.0.0 */",
		},
		{
			name:    "author object",
			pkg:     "lib",
			version: "2.1.0",
			author:  domain.Author{Name: "Jane Doe", Email: "jane@example.com"},
			want:    "/*! lib v2.1.0 by Jane Doe <jane@example.com> */",
		},
		{
			name:    "author object without email",
			pkg:     "lib",
			version: "2.1.0",
			author:  domain.Author{Name: "Jane Doe"},
			want:    "/*! lib v2.1.0 by Jane Doe */",
		},
		{
			name:    "author string",
			pkg:     "lib",
			version: "0.0.1",
			author:  domain.Author{Literal: "Jane Doe <jane@example.com> (https://example.com)"},
			want:    "/*! lib v0.0.1 by Jane Doe <jane@example.com> (https://example.com) */",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Banner(tt.pkg, tt.version, tt.author))
		})
	}
}

func TestExecutableBanner(t *testing.T) {
	got := domain.ExecutableBanner("/*! mycli v1.0.0 */")
	assert.Equal(t, "#!/usr/bin/env node\n\n/*! mycli v1.0.0 */", got)
}

func TestBuildTask_Label(t *testing.T) {
	task := domain.BuildTask{
		Target: domain.TargetNode,
		Format: domain.FormatCommonJS,
		Input:  "src/index.js",
		Output: "dist/node.cjs.js",
		Root:   "/work/mycli",
	}

	assert.Equal(t, "[NODE] src/index.js › dist/node.cjs.js [COMMONJS]", task.Label())
	assert.Equal(t, "/work/mycli/src/index.js", task.InputPath())
	assert.Equal(t, "/work/mycli/dist", task.OutputDir())
	assert.Equal(t, "/*! x */", (&domain.BuildTask{Banner: "/*! x */"}).FileBanner())
}

func TestBuildTask_AbsoluteInput(t *testing.T) {
	task := domain.BuildTask{
		Target: domain.TargetBinary,
		Format: domain.FormatCommonJS,
		Input:  "/work/mycli/cli/run.js",
		Output: "bin/mycli.js",
		Root:   "/work/mycli",
		Banner: "/*! mycli v1.0.0 */",
	}

	assert.Equal(t, "cli/run.js", task.RelInput())
	assert.True(t, task.IsExecutable())
	assert.Equal(t, "#!/usr/bin/env node\n\n/*! mycli v1.0.0 */", task.FileBanner())
}

func TestIsTypeScriptEntry(t *testing.T) {
	assert.True(t, domain.IsTypeScriptEntry("src/index.ts"))
	assert.True(t, domain.IsTypeScriptEntry("src/index.tsx"))
	assert.False(t, domain.IsTypeScriptEntry("src/index.js"))
	assert.False(t, domain.IsTypeScriptEntry("src/index.d"))
}

func TestParseVariant(t *testing.T) {
	for _, name := range []string{"auto", "classic", "react"} {
		v, ok := domain.ParseVariant(name)
		assert.True(t, ok, name)
		assert.Equal(t, domain.Variant(name), v)
	}

	_, ok := domain.ParseVariant("vue")
	assert.False(t, ok)
}

func TestManifest_DependsOn(t *testing.T) {
	m := &domain.Manifest{
		Dependencies:     map[string]string{"react": "^18.0.0"},
		PeerDependencies: map[string]string{"preact": "^10.0.0"},
	}

	assert.True(t, m.DependsOn("react"))
	assert.True(t, m.DependsOn("preact"))
	assert.False(t, m.DependsOn("vue"))

	var nilManifest *domain.Manifest
	assert.False(t, nilManifest.DependsOn("react"))
	_, ok := nilManifest.FirstBin()
	assert.False(t, ok)
}

func TestOutputMatrix(t *testing.T) {
	m := domain.OutputMatrix{
		"binary-commonjs": {Target: domain.TargetBinary, Format: domain.FormatCommonJS, Path: "bin/x.js"},
	}

	spec, ok := m.Lookup(domain.TargetBinary, domain.FormatCommonJS)
	assert.True(t, ok)
	assert.Equal(t, "bin/x.js", spec.Path)
	assert.Equal(t, "binary-commonjs", spec.Key())
	assert.True(t, m.Owes(domain.TargetBinary))
	assert.False(t, m.Owes(domain.TargetNode))
}

func TestBundleResult_Summary(t *testing.T) {
	r := &domain.BundleResult{
		Outputs:  []domain.OutputFile{{Path: "dist/x.js", Size: 1234, GzipSize: 512}},
		Duration: 12 * time.Millisecond,
	}
	assert.Equal(t, "1.2 kB (512 B gzipped) in 12ms", r.Summary())

	binary := &domain.BundleResult{
		Outputs:  []domain.OutputFile{{Path: "bin/x.js", Size: 100}},
		Duration: 3 * time.Millisecond,
	}
	assert.Equal(t, "100 B in 3ms", binary.Summary())

	var empty *domain.BundleResult
	assert.Empty(t, empty.Summary())
}

func TestBuildOptions_Headline(t *testing.T) {
	opts := domain.BuildOptions{Name: "mycli", Version: "1.0.0"}
	assert.Equal(t, "Building mycli-1.0.0...", opts.Headline())

	opts.Watch = true
	assert.Equal(t, "Watching mycli-1.0.0...", opts.Headline())
}
