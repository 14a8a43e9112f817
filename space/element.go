package space

import (
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// Scope selects how much of an element's surface tree
// ElementForSurface considers a match.
type Scope int

const (
	// ScopeToplevelOnly matches only the element's own root surface.
	ScopeToplevelOnly Scope = iota
	// ScopeSubtree matches the root surface and its mapped
	// subsurfaces, excluding popups.
	ScopeSubtree
	// ScopeSubtreeWithPopups matches the root surface and its mapped
	// subsurfaces. ElementForSurface treats it the same as
	// ScopeSubtree: popup surfaces are not searched.
	ScopeSubtreeWithPopups
)

// Point is a location in space coordinates.
type Point struct {
	X, Y int32
}

// Element is a polymorphic space member: an xdg toplevel today, any
// other root-surface-bearing shell surface tomorrow. Space never
// references xdgshell.Toplevel directly so it stays usable with
// foreign (e.g. Xwayland) surfaces that implement the same contract.
type Element interface {
	// ID is a stable identity: the same Element instance must always
	// return the same ID, and two different elements must never
	// collide. A new ID is a new element for damage-tracking
	// purposes.
	ID() any
	// RootSurface returns the element's wl_surface.
	RootSurface() *surface.Surface
	// Bbox returns the bounding box of the element's own surface plus
	// its mapped subsurfaces, relative to the root surface's origin
	// (not including popups).
	Bbox() region.Rect
	// BboxWithPopups additionally includes popups rooted on this
	// element or its subsurfaces.
	BboxWithPopups() region.Rect
	// Geometry returns the client-set window geometry (via
	// xdg_surface.set_window_geometry), clipped to Bbox. If the
	// client never set one, Geometry equals Bbox.
	Geometry() region.Rect
}

// popupParent describes elements (or surfaces) that can report a
// popup's parent surface. Nothing in this package consults it:
// RootWindow walks popups through PopupElement. Not every Element need
// implement it.
type popupParent interface {
	PopupParent() *surface.Surface
}
