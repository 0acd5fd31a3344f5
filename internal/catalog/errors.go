// Package catalog provides the read-only technique catalog and its loaders.
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a technique ID is not in the catalog
var ErrNotFound = errors.New("technique not found")

// LoadError represents an error during file I/O, decoding or database reads
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ConfigError represents a catalog that violates a startup invariant (e.g. it is empty)
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
