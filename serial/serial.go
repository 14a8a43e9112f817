// Package serial provides a wrap-aware monotonic serial counter, used
// throughout the Wayland protocol to correlate requests and events
// (configure/ack_configure, enter/leave, pointer button press, ...).
package serial

import "sync/atomic"

// Serial is an opaque, wrap-aware serial number. Comparisons account for
// uint32 overflow: a serial that wrapped around is still considered newer
// than the serials issued immediately before the wrap.
type Serial uint32

// IsNoOlderThan reports whether s was generated at the same time as or
// after other, taking wrap-around into account.
func (s Serial) IsNoOlderThan(other Serial) bool {
	return !other.newerThan(s)
}

// Less reports whether s was issued strictly before other.
func (s Serial) Less(other Serial) bool {
	return s != other && other.newerThan(s)
}

// newerThan reports whether s is newer than other, resolving wrap-around the
// same way Serial comparison does throughout this package: take the absolute
// difference between the values, and if that difference is at least half
// the value space a wrap occurred, so the comparison inverts.
func (s Serial) newerThan(other Serial) bool {
	if s == other {
		return false
	}
	var distance uint32
	if uint32(s) > uint32(other) {
		distance = uint32(s) - uint32(other)
	} else {
		distance = uint32(other) - uint32(s)
	}
	if distance < 1<<31 {
		return s > other
	}
	// Wrapped: the numerically smaller value is actually the newer one.
	return s < other
}

// Counter issues monotonically increasing Serial values, wrapping from
// MaxUint32 back to 1. Zero is never issued: it is reserved to mean
// "no serial" in protocol fields that make it optional.
type Counter struct {
	next atomic.Uint32
}

// NewCounter returns a Counter whose first issued serial is 1.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the next serial, skipping zero.
func (c *Counter) Next() Serial {
	for {
		v := c.next.Add(1)
		if v != 0 {
			return Serial(v)
		}
		// Landed exactly on the wrap point; the next Add will produce 1.
	}
}
