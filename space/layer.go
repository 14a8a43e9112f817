package space

import "github.com/gogpu/wlcompositor/region"

// Anchor is the layer-shell anchor bitmask: which edges of the output
// a layer surface is pinned to.
type Anchor uint8

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// Margin is the layer-shell per-edge margin, applied only to anchored
// edges.
type Margin struct {
	Top, Bottom, Left, Right int32
}

// Layer is the layer-shell stacking layer a LayerSurface belongs to;
// it maps directly onto the matching z bucket.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) zBucket() ZBucket {
	switch l {
	case LayerBackground:
		return ZBackground
	case LayerBottom:
		return ZBottom
	case LayerTop:
		return ZTop
	default:
		return ZOverlay
	}
}

// LayerSurface is one layer-shell surface's placement configuration.
// Width/Height of 0 means "stretch to fill the work area between its
// anchored edges on that axis".
type LayerSurface struct {
	Window *Window

	Layer         Layer
	Anchor        Anchor
	Margin        Margin
	ExclusiveZone int32
	Width, Height int32
}

// LayerMap arranges a single output's layer surfaces, in declaration
// order, reducing the output's work area by each surface's exclusive
// zone as it is placed.
type LayerMap struct {
	output Output
	layers []*LayerSurface
}

// NewLayerMap returns an empty LayerMap for output.
func NewLayerMap(output Output) *LayerMap {
	return &LayerMap{output: output}
}

// Add appends ls to the map in declaration order and places it in its
// layer's z bucket.
func (lm *LayerMap) Add(ls *LayerSurface) {
	lm.layers = append(lm.layers, ls)
	ls.Window.SetZBucket(ls.Layer.zBucket())
}

// Remove drops ls from the map.
func (lm *LayerMap) Remove(ls *LayerSurface) {
	for i, v := range lm.layers {
		if v == ls {
			lm.layers = append(lm.layers[:i], lm.layers[i+1:]...)
			return
		}
	}
}

// Arrange computes each layer surface's position (via Window.location,
// through MapElement) from anchor + margin + exclusive zone, reducing
// the available work area for each subsequent surface in declaration
// order, and returns the remaining work area after all exclusive zones
// are applied. outputOrigin is the output's location in space
// coordinates; fullSize is the output's logical size.
func (lm *LayerMap) Arrange(sp *Space, outputOrigin Point, fullSize [2]int32) region.Rect {
	work := region.Rect{X: outputOrigin.X, Y: outputOrigin.Y, W: fullSize[0], H: fullSize[1]}

	for _, ls := range lm.layers {
		w, h := ls.Width, ls.Height
		if w == 0 {
			w = anchoredWidth(ls.Anchor, work)
		}
		if h == 0 {
			h = anchoredHeight(ls.Anchor, work)
		}

		loc := placeAnchored(ls.Anchor, ls.Margin, work, w, h)
		sp.MapElement(ls.Window, loc, false)

		if ls.ExclusiveZone > 0 {
			work = shrinkByExclusiveZone(work, ls.Anchor, ls.ExclusiveZone)
		}
	}
	return work
}

func anchoredWidth(a Anchor, work region.Rect) int32 {
	if a&AnchorLeft != 0 && a&AnchorRight != 0 {
		return work.W
	}
	return 0
}

func anchoredHeight(a Anchor, work region.Rect) int32 {
	if a&AnchorTop != 0 && a&AnchorBottom != 0 {
		return work.H
	}
	return 0
}

func placeAnchored(a Anchor, m Margin, work region.Rect, w, h int32) Point {
	var x, y int32
	switch {
	case a&AnchorLeft != 0 && a&AnchorRight != 0:
		x = work.X + m.Left
	case a&AnchorLeft != 0:
		x = work.X + m.Left
	case a&AnchorRight != 0:
		x = work.Right() - w - m.Right
	default:
		x = work.X + (work.W-w)/2
	}
	switch {
	case a&AnchorTop != 0 && a&AnchorBottom != 0:
		y = work.Y + m.Top
	case a&AnchorTop != 0:
		y = work.Y + m.Top
	case a&AnchorBottom != 0:
		y = work.Bottom() - h - m.Bottom
	default:
		y = work.Y + (work.H-h)/2
	}
	return Point{X: x, Y: y}
}

// shrinkByExclusiveZone reduces work by zone pixels from whichever
// single edge a is anchored to. A surface anchored to more than one
// opposing edge (or none) contributes no exclusive zone, matching the
// layer-shell protocol's requirement that exclusive zone only applies
// to surfaces anchored to exactly one edge (or a full edge run).
func shrinkByExclusiveZone(work region.Rect, a Anchor, zone int32) region.Rect {
	switch {
	case a == AnchorTop || a == (AnchorTop|AnchorLeft|AnchorRight):
		return region.Rect{X: work.X, Y: work.Y + zone, W: work.W, H: work.H - zone}
	case a == AnchorBottom || a == (AnchorBottom|AnchorLeft|AnchorRight):
		return region.Rect{X: work.X, Y: work.Y, W: work.W, H: work.H - zone}
	case a == AnchorLeft || a == (AnchorLeft|AnchorTop|AnchorBottom):
		return region.Rect{X: work.X + zone, Y: work.Y, W: work.W - zone, H: work.H}
	case a == AnchorRight || a == (AnchorRight|AnchorTop|AnchorBottom):
		return region.Rect{X: work.X, Y: work.Y, W: work.W - zone, H: work.H}
	default:
		return work
	}
}
