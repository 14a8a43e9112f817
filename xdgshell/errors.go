package xdgshell

import "errors"

// Core errors returned directly by xdgshell operations. The wiring layer
// decides which of these become a posted wire protocol error and on
// which object, per the two-plane error model (core errors returned,
// protocol errors posted).
var (
	// ErrInvalidSize is returned by PositionerState.SetSize and
	// SetAnchorRect for a width or height below 1.
	ErrInvalidSize = errors.New("xdgshell: size must be at least 1x1")

	// ErrInvalidMinMax is returned when a toplevel's min size would
	// exceed its max size on either axis.
	ErrInvalidMinMax = errors.New("xdgshell: min size exceeds max size")

	// ErrNotConfigured is returned when a toplevel or popup's surface
	// commits a buffer before its initial configure has been acked.
	ErrNotConfigured = errors.New("xdgshell: buffer committed before initial configure was acked")

	// ErrUnknownSerial is returned by AckConfigure for a serial that does
	// not match any outstanding configure.
	ErrUnknownSerial = errors.New("xdgshell: ack_configure names no outstanding configure")

	// ErrStaleSerial names a serial that does not match a recent,
	// still-active implicit grab. No function in this package returns
	// it; callers that validate serials themselves can return it.
	ErrStaleSerial = errors.New("xdgshell: serial does not name an active implicit grab")

	// ErrNotTopOfChain is returned by Grab when the popup is not a valid
	// next link in its seat's popup chain (parent must be a toplevel or
	// the currently grabbed popup), and by Destroy when a grabbed popup
	// that is not at the top of the grab chain is destroyed.
	ErrNotTopOfChain = errors.New("xdgshell: popup is not the top of its grab chain")

	// ErrUnexpectedPong is returned by WmBase.HandlePong for a serial that
	// does not match the currently outstanding ping.
	ErrUnexpectedPong = errors.New("xdgshell: pong does not match the outstanding ping")

	// ErrNoOutstandingPing is returned by WmBase.HandlePong when no ping
	// is currently outstanding.
	ErrNoOutstandingPing = errors.New("xdgshell: pong received with no ping outstanding")
)
