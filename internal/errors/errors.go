package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit statuses. 3 is unused.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // a deadline expired
	ExitErrorConfig   = 4   // bad flags, env, file or values
	ExitErrorPoisoned = 5   // the monitor was poisoned by a panic
	ExitErrorCanceled = 130 // interrupted, 128+SIGINT
)

// ErrStatePoisoned is returned by every access to a monitor whose exclusive
// section was aborted by a panic. The history may be half-updated, so no
// further reads or writes are served.
var ErrStatePoisoned = errors.New("monitor state poisoned by an earlier panic")

// ConfigError reports settings resmon cannot start with: an unknown flag, a
// stray argument, an unreadable file.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ProbeError records a failed reading of one hardware or OS domain. The
// collector degrades such failures to zero values; the type exists so the
// failure can be logged and inspected with errors.As.
type ProbeError struct {
	// Domain names the probed subsystem ("cpu", "memory", "gpu", ...).
	Domain string
	// Cause is the underlying error returned by the backend.
	Cause error
}

// Error returns a message naming the domain and the cause.
func (e ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Domain, e.Cause)
}

func (e ProbeError) Unwrap() error { return e.Cause }

// NewProbeError wraps cause as a ProbeError for domain. A nil cause yields nil.
func NewProbeError(domain string, cause error) error {
	if cause == nil {
		return nil
	}
	return ProbeError{Domain: domain, Cause: cause}
}

// ValidationError reports a setting that parsed but is out of range, such as
// a zero point budget.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ExitCodeFor maps the error a run mode returned to the exit status. A
// poisoned monitor outranks every other cause in the chain.
func ExitCodeFor(err error) int {
	var (
		cfgErr   ConfigError
		validErr ValidationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrStatePoisoned):
		return ExitErrorPoisoned
	case errors.As(err, &cfgErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
