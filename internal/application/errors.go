package application

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNotReady = errors.New("application is not ready")
)

// StartupError records the startup stage that failed
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup %s failed: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// NewStartupError creates a new startup error
func NewStartupError(stage string, err error) *StartupError {
	return &StartupError{
		Stage: stage,
		Err:   err,
	}
}
