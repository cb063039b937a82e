package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownBackend indicates storage.backend names no known store.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrUnknownFormat indicates the file extension is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrInvalidValue indicates a setting could not be converted to its type.
	ErrInvalidValue = errors.New("invalid config value")
)

// ParseError represents an error while reading or decoding a config file.
type ParseError struct {
	// Path is the file that failed.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
