package failure

import "go.trai.ch/preppy/internal/core/ports"

// NewExitWith creates an Exit sink with a replaceable exit function.
func NewExitWith(logger ports.Logger, exit func(int)) *Exit {
	return &Exit{logger: logger, exit: exit}
}
