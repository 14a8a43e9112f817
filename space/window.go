package space

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
)

// Window is a space element's mapping state: its location, stacking
// bucket, and which outputs it currently overlaps. A Window with no
// Space mapping it (never passed to MapElement, or since UnmapElement)
// has no meaningful Location.
type Window struct {
	mu sync.Mutex

	Element Element
	zBucket ZBucket

	mapped    bool
	activated bool
	location  Point

	overlaps map[any]bool // output id -> currently overlapping

	userData map[string]any
}

// NewWindow returns an unmapped Window wrapping el, stacked in the
// regular-window (Shell) bucket by default.
func NewWindow(el Element) *Window {
	return &Window{
		Element:  el,
		zBucket:  ZShell,
		overlaps: make(map[any]bool),
		userData: make(map[string]any),
	}
}

// SetZBucket changes the window's stacking bucket, e.g. so a
// layer-shell surface can be placed in ZBackground/ZBottom/ZTop/ZOverlay
// instead of the default ZShell.
func (w *Window) SetZBucket(z ZBucket) {
	w.mu.Lock()
	w.zBucket = z
	w.mu.Unlock()
}

// ZBucket returns the window's current stacking bucket.
func (w *Window) ZBucket() ZBucket {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.zBucket
}

// Location returns the window's current position in space
// coordinates.
func (w *Window) Location() Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.location
}

// Mapped reports whether the window is currently mapped into a Space.
func (w *Window) Mapped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mapped
}

// Activated reports the activate flag most recently set by
// MapElement/RaiseElement.
func (w *Window) Activated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activated
}

// Rect returns the window's bbox (subtree, no popups) translated to
// its current space location.
func (w *Window) Rect() region.Rect {
	w.mu.Lock()
	loc := w.location
	w.mu.Unlock()
	return w.Element.Bbox().Translate(loc.X, loc.Y)
}

// RectWithPopups returns the window's bbox including popups,
// translated to its current space location.
func (w *Window) RectWithPopups() region.Rect {
	w.mu.Lock()
	loc := w.location
	w.mu.Unlock()
	return w.Element.BboxWithPopups().Translate(loc.X, loc.Y)
}

// UserData returns the value stored under key, or nil.
func (w *Window) UserData(key string) any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.userData[key]
}

// SetUserData stores v under key.
func (w *Window) SetUserData(key string, v any) {
	w.mu.Lock()
	w.userData[key] = v
	w.mu.Unlock()
}
