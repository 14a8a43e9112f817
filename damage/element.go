package damage

import (
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// Element is one item in a render pass's bottom-to-top element list:
// a window's surface, a layer-shell surface, a cursor, or any other
// drawable a caller assembles for RenderPass. All geometry is in
// output-physical coordinates already; conversion from space/logical
// coordinates is the caller's job.
type Element interface {
	// ID is a stable identity across frames. A new ID is always
	// treated as a newly appearing element (full-bbox damage).
	ID() any
	// CommitCounter increases every time the element's content
	// changes; DamageSince is always called with a counter this
	// element itself returned on a previous pass.
	CommitCounter() uint64
	// Geometry is the element's bounding box in output-physical
	// coordinates for this pass.
	Geometry() region.Rect
	// SourceRect is the region of the element's backing buffer to
	// sample, in buffer coordinates.
	SourceRect() region.Rect
	// Transform is the buffer transform to apply while sampling.
	Transform() surface.Transform
	// OpaqueRegions returns the element's opaque coverage, in the same
	// output-physical coordinate space as Geometry.
	OpaqueRegions() region.Region
	// DamageSince returns the element's own damage relative to the
	// pass at which it last reported commit sinceCommit, in
	// output-physical coordinates. ok is false if the element cannot
	// produce incremental damage for that commit (e.g. it has never
	// been seen, or the commit is too old) — the caller must then
	// treat the entire Geometry as damaged.
	DamageSince(sinceCommit uint64) (damage region.Region, ok bool)
}

// ZeroCopyCapable is an optional Element extension: an element that
// can report whether it is eligible for direct scanout (no
// compositing needed) this pass, e.g. because it is the sole
// fullscreen surface and its buffer format matches the output's.
// RenderPass consults it only for elements it would otherwise mark
// Rendering.
type ZeroCopyCapable interface {
	ZeroCopyEligible() bool
}

// PresentationState is the disposition RenderPass assigned a listed
// element for this pass.
type PresentationState int

const (
	// Rendering means the element has damage this pass and must be
	// composited normally.
	Rendering PresentationState = iota
	// ZeroCopy means the element has damage this pass but can be
	// scanned out directly, skipping compositing.
	ZeroCopy
	// Skipped means the element is listed (it is not occluded) but has
	// no damage this pass, so no draw call is needed for it.
	Skipped
)

// DrawEntry is one element's instructions for this render pass.
type DrawEntry struct {
	Element Element
	Src     region.Rect
	Dst     region.Rect
	Damage  region.Region
	State   PresentationState
}
