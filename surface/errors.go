package surface

import "errors"

// Errors returned directly by surface store operations (the "core
// errors, returned not posted" plane from spec's error-handling design;
// the caller decides whether to turn one into a posted protocol error).
var (
	// ErrNotSiblings is returned by PlaceAbove/PlaceBelow when the two
	// surfaces do not share a parent.
	ErrNotSiblings = errors.New("surface: subsurfaces do not share a parent")

	// ErrHookNotFound is returned by RemoveHook for an unknown or already
	// removed HookID.
	ErrHookNotFound = errors.New("surface: hook not found")
)
