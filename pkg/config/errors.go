package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the parsed input is not a
	// mapping at the root.
	ErrMalformedDocument = errors.New("config: document should be a mapping")

	// ErrNoJobsDefined is returned when no job entries remain after the
	// global settings are split off.
	ErrNoJobsDefined = errors.New("config: no jobs defined")
)

// UnknownParameterError reports a top-level key that is neither a
// recognized global setting nor a job definition with a script.
type UnknownParameterError struct {
	Key string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("config: unknown parameter %q", e.Key)
}

// ValidationError reports the first schema violation found in a
// document. The message names the offending field and, for job-level
// violations, the job.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
