package wlcompositor

import "errors"

// Common errors returned by Display.
var (
	// ErrAlreadyRunning is returned by Run if the Display is already
	// inside a Run call.
	ErrAlreadyRunning = errors.New("wlcompositor: display already running")

	// ErrNoRenderer is returned by Run if no renderer was supplied.
	ErrNoRenderer = errors.New("wlcompositor: no renderer configured")
)
