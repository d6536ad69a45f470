package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Process exit statuses used by the arena CLI
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsConfiguration reports whether the code signals bad game data or setup
// rather than a runtime failure. Unknown item and enemy ids land here.
func (c Code) IsConfiguration() bool {
	switch c {
	case CodeNotFound, CodeInvalidArgument:
		return true
	default:
		return false
	}
}

// ExitCode returns the process exit status for the code
func (c Code) ExitCode() int {
	switch {
	case c == CodeOK:
		return ExitOK
	case c.IsConfiguration():
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
