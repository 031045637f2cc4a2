package ports

// FailureSink decides what a fatal error does to the process.
//
//go:generate mockgen -source=failure.go -destination=mocks/mock_failure.go -package=mocks
type FailureSink interface {
	// Fail reports err. It either terminates the process or returns err to the caller.
	Fail(err error) error
}
