// Package process lists live processes and resolves their executable names
// through a small, fakeable view of the OS process introspection API.
package process

import "errors"

var (
	// ErrHandleClosed is returned when a Handle is used after Close.
	ErrHandleClosed = errors.New("process handle closed")

	// ErrInvalidName is returned when the OS reports a module name that is not valid text.
	ErrInvalidName = errors.New("invalid module name encoding")

	// ErrNoModule is returned when a process has no primary module loaded yet.
	ErrNoModule = errors.New("no module loaded")
)
