// Package detector picks the progress renderer for the current terminal.
package detector

import (
	"os"

	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive spinner renderer.
	ModeTUI
	// ModeLinear forces one line per event, for CI logs and pipes.
	ModeLinear
)

// String returns the flag value of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns linear mode when stderr is not a terminal or CI is set,
// and the TUI otherwise. Progress is written to stderr, so that is the stream checked.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the --output-mode flag to the detected mode.
// Quiet runs always use the linear renderer, which then prints failures only.
func ResolveMode(autoDetected OutputMode, userFlag string, quiet bool) (OutputMode, error) {
	if quiet {
		return ModeLinear, nil
	}

	switch userFlag {
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return autoDetected, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "unknown output mode"), "output-mode", userFlag)
	}
}
