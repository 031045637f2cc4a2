package domain

// Mode selects development or production output.
type Mode string

const (
	// ModeDevelopment keeps output readable.
	ModeDevelopment Mode = "development"
	// ModeProduction minifies output.
	ModeProduction Mode = "production"
)

// Settings are the user supplied knobs after flags, environment and
// preppy.yaml have been merged.
type Settings struct {
	Root          string
	InputNode     string
	InputBinary   string
	OutputFolder  string
	Sourcemap     bool
	Verbose       bool
	Quiet         bool
	Watch         bool
	Parallel      bool
	StrictEntries bool
	Mode          Mode
	Variants      []Variant
	OutputMode    string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Root:          ".",
		Sourcemap:     true,
		StrictEntries: true,
		Mode:          ModeDevelopment,
		Variants:      []Variant{VariantAuto},
		OutputMode:    "auto",
	}
}
