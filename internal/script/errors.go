package script

import (
	"errors"
	"fmt"
)

// ErrScript matches every error raised while running a script.
var ErrScript = errors.New("script error")

// Error is a failed script run.
type Error struct {
	// Name identifies the script, usually its file path.
	Name string
	// Err is the underlying Lua or I/O error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrScript.
func (e *Error) Is(target error) bool {
	return target == ErrScript
}
