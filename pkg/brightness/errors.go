package brightness

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when no framework exposes the requested symbol.
	ErrUnavailable = errors.New("failed to load brightness API")

	// ErrUnsupported is returned by the opener on platforms without dlopen support.
	ErrUnsupported = errors.New("dynamic framework loading is only supported on macOS")

	// ErrInvalidLevel is returned by ParseLevelStrict for malformed input.
	ErrInvalidLevel = errors.New("invalid brightness level")

	// ErrLevelOutOfRange is returned by ParseLevelStrict for values outside [0, 1].
	ErrLevelOutOfRange = errors.New("brightness level out of range")
)

// CallError is returned when a resolved framework function reports a
// non-zero status.
type CallError struct {
	Framework string
	Symbol    string
	Code      int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s (%s) returned %d", e.Symbol, e.Framework, e.Code)
}

// ExitCode is the status the process should exit with.
func (e *CallError) ExitCode() int {
	return e.Code
}
