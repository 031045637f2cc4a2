// Package failure implements the sinks that decide what a fatal error does to
// the process.
package failure

import (
	"os"
	"testing"

	"go.trai.ch/preppy/internal/core/ports"
)

// Exit logs the error and terminates the process with status 1.
type Exit struct {
	logger ports.Logger
	exit   func(int)
}

// NewExit creates an Exit sink that calls os.Exit.
func NewExit(logger ports.Logger) *Exit {
	return &Exit{logger: logger, exit: os.Exit}
}

// Fail logs err and exits. It only returns when the exit function does.
func (e *Exit) Fail(err error) error {
	e.logger.Error(err)
	e.exit(1)
	return err
}

// Raise hands the error back to the caller.
type Raise struct{}

// NewRaise creates a Raise sink.
func NewRaise() *Raise {
	return &Raise{}
}

// Fail returns err unchanged.
func (*Raise) Fail(err error) error {
	return err
}

// Select returns Raise inside a test binary and Exit everywhere else.
func Select(logger ports.Logger) ports.FailureSink {
	if testing.Testing() {
		return NewRaise()
	}
	return NewExit(logger)
}
