package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrHomeNotSet          = errors.New("HOME environment variable not set")
	ErrMalformedSettings   = errors.New("settings.json is not a valid JSON object")
	ErrInvalidBlock        = errors.New("invalid generated shell block")
	ErrModernBashNotFound  = errors.New("modern bash (4.4+) not found")
	ErrShellNotFound       = errors.New("shell not found")
	ErrNoPackageManager    = errors.New("no supported package manager found")
	ErrMissingDependencies = errors.New("missing required dependencies")
)

// PathError wraps errors with path context
type PathError struct {
	Path string
	Op   string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new path error
func NewPathError(path, op string, err error) *PathError {
	return &PathError{Path: path, Op: op, Err: err}
}

// DependencyError wraps errors with dependency context
type DependencyError struct {
	Name string
	Op   string
	Err  error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError creates a new dependency error
func NewDependencyError(name, op string, err error) *DependencyError {
	return &DependencyError{Name: name, Op: op, Err: err}
}
