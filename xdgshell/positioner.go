package xdgshell

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/serial"
)

// Anchor names a corner or edge of the anchor rectangle (or, for
// AnchorNone, its center).
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorBottomLeft
	AnchorTopRight
	AnchorBottomRight
)

// Gravity names the direction the popup extends from its anchor point.
// The zero value's meaning is identical to Anchor's.
type Gravity int

const (
	GravityNone Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
	GravityTopLeft
	GravityBottomLeft
	GravityTopRight
	GravityBottomRight
)

// ConstraintAdjustment is the xdg_positioner constraint_adjustment
// bitmask.
type ConstraintAdjustment uint32

const (
	ConstraintSlideX ConstraintAdjustment = 1 << iota
	ConstraintSlideY
	ConstraintFlipX
	ConstraintFlipY
	ConstraintResizeX
	ConstraintResizeY
)

// PositionerState is the accumulated state of an xdg_positioner object,
// consulted once by Resolve when a popup using it is (re)configured.
type PositionerState struct {
	mu sync.Mutex

	size                 region.Rect // X, Y unused; W, H is the popup size
	anchorRect           region.Rect
	anchor               Anchor
	gravity              Gravity
	constraintAdjustment ConstraintAdjustment
	offsetX, offsetY     int32
	reactive             bool
	hasParentSize        bool
	parentW, parentH     int32
	parentConfigure      *serial.Serial
}

// NewPositionerState returns a positioner with the protocol's defaults:
// zero size (invalid until set), anchor/gravity none, no constraint
// adjustment bits.
func NewPositionerState() *PositionerState {
	return &PositionerState{}
}

// SetSize validates and stores the popup's desired size.
func (p *PositionerState) SetSize(w, h int32) error {
	if w < 1 || h < 1 {
		return ErrInvalidSize
	}
	p.mu.Lock()
	p.size = region.Rect{W: w, H: h}
	p.mu.Unlock()
	return nil
}

// SetAnchorRect validates and stores the rectangle (in the parent
// surface's local coordinates) the popup is anchored against.
func (p *PositionerState) SetAnchorRect(x, y, w, h int32) error {
	if w < 1 || h < 1 {
		return ErrInvalidSize
	}
	p.mu.Lock()
	p.anchorRect = region.Rect{X: x, Y: y, W: w, H: h}
	p.mu.Unlock()
	return nil
}

// SetAnchor stores which corner/edge of the anchor rect the popup is
// positioned against.
func (p *PositionerState) SetAnchor(a Anchor) {
	p.mu.Lock()
	p.anchor = a
	p.mu.Unlock()
}

// SetGravity stores which direction the popup extends from the anchor
// point.
func (p *PositionerState) SetGravity(g Gravity) {
	p.mu.Lock()
	p.gravity = g
	p.mu.Unlock()
}

// SetConstraintAdjustment stores the bitmask of adjustments Resolve may
// try, in the fixed order flip-x, flip-y, slide-x, slide-y, resize-x,
// resize-y.
func (p *PositionerState) SetConstraintAdjustment(c ConstraintAdjustment) {
	p.mu.Lock()
	p.constraintAdjustment = c
	p.mu.Unlock()
}

// SetOffset stores the offset added to the anchor point before gravity
// is applied.
func (p *PositionerState) SetOffset(x, y int32) {
	p.mu.Lock()
	p.offsetX, p.offsetY = x, y
	p.mu.Unlock()
}

// SetReactive marks the positioner as wanting a reposition whenever its
// constraints would no longer be satisfied (v3).
func (p *PositionerState) SetReactive() {
	p.mu.Lock()
	p.reactive = true
	p.mu.Unlock()
}

// SetParentSize records the parent surface's size for reactive
// repositioning (v3).
func (p *PositionerState) SetParentSize(w, h int32) {
	p.mu.Lock()
	p.hasParentSize = true
	p.parentW, p.parentH = w, h
	p.mu.Unlock()
}

// SetParentConfigure records the serial of the parent configure this
// positioner is reactive to (v3).
func (p *PositionerState) SetParentConfigure(s serial.Serial) {
	p.mu.Lock()
	cp := s
	p.parentConfigure = &cp
	p.mu.Unlock()
}

// Reactive reports whether the reactive flag was set.
func (p *PositionerState) Reactive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reactive
}

// snapshot copies the fields Resolve needs under the lock, so Resolve
// itself can run lock-free.
type positionerSnapshot struct {
	size                 region.Rect
	anchorRect           region.Rect
	anchor               Anchor
	gravity              Gravity
	constraintAdjustment ConstraintAdjustment
	offsetX, offsetY     int32
}

func (p *PositionerState) snapshot() positionerSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return positionerSnapshot{
		size:                 p.size,
		anchorRect:           p.anchorRect,
		anchor:               p.anchor,
		gravity:              p.gravity,
		constraintAdjustment: p.constraintAdjustment,
		offsetX:              p.offsetX,
		offsetY:              p.offsetY,
	}
}

// Resolve computes the popup's final rectangle, in the same local
// coordinate space as containment, following the algorithm:
//  1. anchor point = the named corner/edge (or center) of anchorRect.
//  2. place the popup so its gravity corner coincides with the anchor
//     point, then add the offset.
//  3. if the result does not fit within containment, try the enabled
//     constraint adjustments in order flip-x, flip-y, slide-x, slide-y,
//     resize-x, resize-y — each only if its bit is set.
//
// A positioner with every constraint adjustment bit cleared returns the
// unadjusted rectangle even if it overflows containment.
func (p *PositionerState) Resolve(containment region.Rect) region.Rect {
	s := p.snapshot()
	return resolvePositioner(s, containment)
}

func resolvePositioner(s positionerSnapshot, containment region.Rect) region.Rect {
	// The anchor point is computed once from the unflipped anchor and
	// held fixed: flipping inverts which corner of the popup touches
	// that point (the gravity), which is equivalent to mirroring the
	// unflipped rect about the anchor point on the flipped axis — it
	// does not re-derive a different point from a "flipped" anchor
	// corner.
	gravity := s.gravity
	rect := place(s.anchorRect, s.anchor, gravity, s.size.W, s.size.H, s.offsetX, s.offsetY)

	if containment.W > 0 && containment.H > 0 && !fits(rect, containment) {
		if s.constraintAdjustment&ConstraintFlipX != 0 && !fitsAxisX(rect, containment) {
			flippedGravity := flipGravityX(gravity)
			flipped := place(s.anchorRect, s.anchor, flippedGravity, s.size.W, s.size.H, s.offsetX, s.offsetY)
			if fitsAxisX(flipped, containment) {
				gravity = flippedGravity
				rect = flipped
			}
		}
		if s.constraintAdjustment&ConstraintFlipY != 0 && !fitsAxisY(rect, containment) {
			flippedGravity := flipGravityY(gravity)
			flipped := place(s.anchorRect, s.anchor, flippedGravity, s.size.W, s.size.H, s.offsetX, s.offsetY)
			if fitsAxisY(flipped, containment) {
				gravity = flippedGravity
				rect = flipped
			}
		}
		if s.constraintAdjustment&ConstraintSlideX != 0 && !fitsAxisX(rect, containment) {
			rect = slideX(rect, containment)
		}
		if s.constraintAdjustment&ConstraintSlideY != 0 && !fitsAxisY(rect, containment) {
			rect = slideY(rect, containment)
		}
		if s.constraintAdjustment&ConstraintResizeX != 0 && !fitsAxisX(rect, containment) {
			rect = resizeX(rect, containment)
		}
		if s.constraintAdjustment&ConstraintResizeY != 0 && !fitsAxisY(rect, containment) {
			rect = resizeY(rect, containment)
		}
	}

	return rect
}

// place computes the anchor point on anchorRect per anchor (plus
// offset), then positions a w x h rectangle that extends from that point
// in the gravity direction, per xdg_positioner semantics: gravity names
// the direction the popup grows *away from* the anchor point, so the
// popup edge touching the anchor point is the opposite edge from gravity.
func place(anchorRect region.Rect, anchor Anchor, gravity Gravity, w, h, offsetX, offsetY int32) region.Rect {
	ax, ay := anchorPoint(anchorRect, anchor)
	ax += offsetX
	ay += offsetY

	x, y := ax, ay
	switch gravity {
	case GravityNone:
		x -= w / 2
		y -= h / 2
	case GravityTop:
		x -= w / 2
		y -= h
	case GravityBottom:
		x -= w / 2
	case GravityLeft:
		x -= w
		y -= h / 2
	case GravityRight:
		y -= h / 2
	case GravityTopLeft:
		x -= w
		y -= h
	case GravityBottomLeft:
		x -= w
	case GravityTopRight:
		y -= h
	case GravityBottomRight:
		// popup extends right and down from the anchor point: no shift.
	}
	return region.Rect{X: x, Y: y, W: w, H: h}
}

func anchorPoint(r region.Rect, a Anchor) (int32, int32) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	switch a {
	case AnchorTop:
		return cx, r.Y
	case AnchorBottom:
		return cx, r.Bottom()
	case AnchorLeft:
		return r.X, cy
	case AnchorRight:
		return r.Right(), cy
	case AnchorTopLeft:
		return r.X, r.Y
	case AnchorBottomLeft:
		return r.X, r.Bottom()
	case AnchorTopRight:
		return r.Right(), r.Y
	case AnchorBottomRight:
		return r.Right(), r.Bottom()
	default:
		return cx, cy
	}
}

func fits(r, containment region.Rect) bool {
	return fitsAxisX(r, containment) && fitsAxisY(r, containment)
}

func fitsAxisX(r, containment region.Rect) bool {
	return r.X >= containment.X && r.Right() <= containment.Right()
}

func fitsAxisY(r, containment region.Rect) bool {
	return r.Y >= containment.Y && r.Bottom() <= containment.Bottom()
}

func flipGravityX(g Gravity) Gravity {
	switch g {
	case GravityLeft:
		return GravityRight
	case GravityRight:
		return GravityLeft
	case GravityTopLeft:
		return GravityTopRight
	case GravityTopRight:
		return GravityTopLeft
	case GravityBottomLeft:
		return GravityBottomRight
	case GravityBottomRight:
		return GravityBottomLeft
	default:
		return g
	}
}

func flipGravityY(g Gravity) Gravity {
	switch g {
	case GravityTop:
		return GravityBottom
	case GravityBottom:
		return GravityTop
	case GravityTopLeft:
		return GravityBottomLeft
	case GravityBottomLeft:
		return GravityTopLeft
	case GravityTopRight:
		return GravityBottomRight
	case GravityBottomRight:
		return GravityTopRight
	default:
		return g
	}
}

// slideX translates r along X to maximize overlap with containment,
// without resizing it.
func slideX(r, containment region.Rect) region.Rect {
	if r.X < containment.X {
		r.X = containment.X
	} else if r.Right() > containment.Right() {
		r.X = containment.Right() - r.W
	}
	return r
}

func slideY(r, containment region.Rect) region.Rect {
	if r.Y < containment.Y {
		r.Y = containment.Y
	} else if r.Bottom() > containment.Bottom() {
		r.Y = containment.Bottom() - r.H
	}
	return r
}

// resizeX clamps r's horizontal extent to containment, shrinking it.
func resizeX(r, containment region.Rect) region.Rect {
	x0 := max32(r.X, containment.X)
	x1 := min32(r.Right(), containment.Right())
	if x1 < x0 {
		x1 = x0
	}
	r.X = x0
	r.W = x1 - x0
	return r
}

func resizeY(r, containment region.Rect) region.Rect {
	y0 := max32(r.Y, containment.Y)
	y1 := min32(r.Bottom(), containment.Bottom())
	if y1 < y0 {
		y1 = y0
	}
	r.Y = y0
	r.H = y1 - y0
	return r
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
