package domain

import (
	"path/filepath"
	"strings"
)

// BuildTask is one bundler or declaration invocation.
type BuildTask struct {
	Target    Target
	Format    Format
	Variant   Variant
	Input     string
	Output    string
	Root      string
	Name      string
	Version   string
	Banner    string
	Sourcemap bool
	Minify    bool
	Quiet     bool
	Verbose   bool
}

// IsDeclaration reports whether the task only extracts type declarations.
func (t *BuildTask) IsDeclaration() bool {
	return t.Format == FormatTypes
}

// IsExecutable reports whether the task produces the binary bundle.
func (t *BuildTask) IsExecutable() bool {
	return t.Target == TargetBinary
}

// InputPath returns the absolute entry path.
func (t *BuildTask) InputPath() string {
	return t.abs(t.Input)
}

// OutputPath returns the absolute destination path.
func (t *BuildTask) OutputPath() string {
	return t.abs(t.Output)
}

// OutputDir returns the absolute folder the bundle and its assets land in.
func (t *BuildTask) OutputDir() string {
	return filepath.Dir(t.OutputPath())
}

// RelInput returns the entry relative to the project root.
func (t *BuildTask) RelInput() string {
	return t.rel(t.InputPath())
}

// RelOutput returns the destination relative to the project root.
func (t *BuildTask) RelOutput() string {
	return t.rel(t.OutputPath())
}

// FileBanner returns the banner written on top of the bundle.
func (t *BuildTask) FileBanner() string {
	if t.IsExecutable() {
		return ExecutableBanner(t.Banner)
	}
	return t.Banner
}

// Label renders the task the way progress output shows it:
// "[NODE] src/index.js › dist/index.js [COMMONJS]".
func (t *BuildTask) Label() string {
	return "[" + strings.ToUpper(string(t.Target)) + "] " +
		t.RelInput() + " › " + t.RelOutput() +
		" [" + strings.ToUpper(string(t.Format)) + "]"
}

func (t *BuildTask) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(t.Root, p)
}

func (t *BuildTask) rel(p string) string {
	if r, err := filepath.Rel(t.Root, p); err == nil {
		return filepath.ToSlash(r)
	}
	return p
}

// IsTypeScriptEntry reports whether an entry path is a .ts or .tsx file.
func IsTypeScriptEntry(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx":
		return true
	default:
		return false
	}
}
