package domain

// OutputSpec is one owed (target, format) destination.
type OutputSpec struct {
	Target Target
	Format Format
	Path   string
}

// Key returns the matrix key of the spec.
func (o OutputSpec) Key() string {
	return OutputKey(o.Target, o.Format)
}

// OutputMatrix maps "target-format" keys to their destination.
type OutputMatrix map[string]OutputSpec

// Lookup returns the destination owed for a target and format.
func (m OutputMatrix) Lookup(t Target, f Format) (OutputSpec, bool) {
	spec, ok := m[OutputKey(t, f)]
	return spec, ok
}

// Owes reports whether any format is owed for the target.
func (m OutputMatrix) Owes(t Target) bool {
	for _, f := range Formats {
		if _, ok := m.Lookup(t, f); ok {
			return true
		}
	}
	return false
}

// BuildOptions is the resolved, read-only configuration of one run.
type BuildOptions struct {
	Root string
	// OutputFolder is set when the matrix comes from --output-folder.
	OutputFolder string
	Watch        bool
	Verbose      bool
	Quiet        bool
	Sourcemap    bool
	Parallel     bool
	Strict       bool
	Minify       bool
	Name         string
	Version      string
	Banner       string
	Entries      map[Target]string
	Output       OutputMatrix
	Variants     []Variant
}

// Entry returns the resolved entry of a target.
func (o *BuildOptions) Entry(t Target) (string, bool) {
	e, ok := o.Entries[t]
	return e, ok && e != ""
}

// Headline is the line printed before any task runs, e.g. "Building mycli-1.0.0...".
func (o *BuildOptions) Headline() string {
	verb := "Building"
	if o.Watch {
		verb = "Watching"
	}
	return verb + " " + o.Name + "-" + o.Version + "..."
}
