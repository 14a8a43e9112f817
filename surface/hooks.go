package surface

import "sync/atomic"

// AliveTracker reports whether a Wayland object is still alive. Mirrors
// Smithay's AliveTracker: a single atomic flag flipped exactly once, on
// destruction.
type AliveTracker struct {
	alive atomic.Bool
}

// NewAliveTracker returns a tracker that starts alive.
func NewAliveTracker() *AliveTracker {
	t := &AliveTracker{}
	t.alive.Store(true)
	return t
}

// DestroyNotify flips the tracker to dead. Safe to call more than once.
func (t *AliveTracker) DestroyNotify() {
	t.alive.Store(false)
}

// Alive reports whether DestroyNotify has been called yet.
func (t *AliveTracker) Alive() bool {
	return t.alive.Load()
}

// HookID identifies a registered commit or destruction hook, returned so
// the installer can remove it later. Unlike Smithay, which relies on
// Arc<T>'s Drop to deregister a hook when its last clone disappears, Go
// has no destructors: removal is always explicit via RemoveHook.
// Removing a hook from inside its own callback is
// legal; it takes effect starting with the next dispatch.
type HookID uint64

type commitHook struct {
	id HookID
	cb func(s *Surface) error
}

type postCommitHook struct {
	id HookID
	cb func(s *Surface)
}

type destructionHook struct {
	id HookID
	cb func(s *Surface)
}
