package cli

// Exit codes returned by the valueiteration binary.
const (
	// Anything not covered below
	ExitFailure = 1
	// The MDP, grid or config given on the command line could not be used
	ExitBadInput = 2
	// A requested chart or metrics file could not be written
	ExitOutput = 3
)

// ExitError carries the process exit code alongside the error.
type ExitError struct {
	Code int
	err  error
}

func NewExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, err: err}
}

func (e *ExitError) Error() string {
	return e.err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.err
}
