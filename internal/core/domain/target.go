package domain

// Target is a logical build audience.
type Target string

const (
	// TargetNode is the library build consumed through require or import.
	TargetNode Target = "node"
	// TargetBinary is the standalone executable build.
	TargetBinary Target = "binary"
)

// Format is a module output convention.
type Format string

const (
	// FormatESModule emits static import/export.
	FormatESModule Format = "esmodule"
	// FormatCommonJS emits require/module.exports.
	FormatCommonJS Format = "commonjs"
	// FormatTypes emits TypeScript declaration files only.
	FormatTypes Format = "types"
)

// Variant is a named transpilation preset.
type Variant string

const (
	// VariantAuto picks react when the manifest depends on react or preact.
	VariantAuto Variant = "auto"
	// VariantClassic is the plain ES2017 baseline.
	VariantClassic Variant = "classic"
	// VariantReact enables JSX in .js files and the tag-rewrite plugin.
	VariantReact Variant = "react"
)

// Targets lists the targets in planning order.
var Targets = []Target{TargetNode, TargetBinary}

// Formats lists the formats in planning order.
var Formats = []Format{FormatESModule, FormatCommonJS, FormatTypes}

// OutputKey returns the output matrix key for a target and format, e.g. "node-commonjs".
func OutputKey(t Target, f Format) string {
	return string(t) + "-" + string(f)
}

// ParseVariant validates a user supplied variant name.
func ParseVariant(s string) (Variant, bool) {
	switch v := Variant(s); v {
	case VariantAuto, VariantClassic, VariantReact:
		return v, true
	default:
		return "", false
	}
}
