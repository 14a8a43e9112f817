package wlcompositor

import (
	"github.com/gogpu/wlcompositor/damage"
	"github.com/gogpu/wlcompositor/output"
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/renderer"
	"github.com/gogpu/wlcompositor/space"
	"github.com/gogpu/wlcompositor/surface"
)

// PixelSource is implemented by a surface.Buffer that can expose its
// own pixel content, letting Display import it into the configured
// Renderer without this package decoding wl_shm itself.
type PixelSource interface {
	Pixels() (data []byte, width, height, stride int, format renderer.ShmFormat)
}

// windowElement adapts a mapped space.Window into a damage.Element,
// translating its space-coordinate geometry into the physical
// coordinate space of one output.
type windowElement struct {
	window      *space.Window
	outputLoc   space.Point
	outputScale int32
}

func (e *windowElement) ID() any { return e.window }

func (e *windowElement) CommitCounter() uint64 {
	return e.window.Element.RootSurface().Current().Generation
}

func (e *windowElement) Geometry() region.Rect {
	return toOutputPhysical(e.window.Rect(), e.outputLoc, e.outputScale)
}

func (e *windowElement) SourceRect() region.Rect {
	if ps, ok := e.pixelSource(); ok {
		_, w, h, _, _ := ps.Pixels()
		return region.Rect{W: int32(w), H: int32(h)}
	}
	g := e.window.Rect()
	return region.Rect{W: g.W, H: g.H}
}

func (e *windowElement) Transform() surface.Transform {
	return e.window.Element.RootSurface().Current().BufferTransform
}

func (e *windowElement) OpaqueRegions() region.Region {
	cur := e.window.Element.RootSurface().Current()
	loc := e.window.Location()
	var out region.Region
	for _, r := range cur.Opaque.Rects() {
		out.Add(toOutputPhysical(r.Translate(loc.X, loc.Y), e.outputLoc, e.outputScale))
	}
	return out
}

// DamageSince always reports that it cannot produce incremental
// damage: the surface store does not retain a per-commit damage
// history (only the current generation's buffer damage), so every
// pass treats a changed commit as fully damaging the element's bbox.
func (e *windowElement) DamageSince(sinceCommit uint64) (region.Region, bool) {
	return region.Region{}, false
}

func (e *windowElement) pixelSource() (PixelSource, bool) {
	buf := e.window.Element.RootSurface().Current().Buffer
	if buf == nil {
		return nil, false
	}
	ps, ok := buf.(PixelSource)
	return ps, ok
}

var _ damage.Element = (*windowElement)(nil)

// toOutputPhysical converts a rect in space (logical) coordinates to
// an output's physical coordinates: translate by the output's space
// origin, then scale. Outputs with a 90/270 transform are not given
// axis-swapped geometry here; a caller compositing onto a rotated
// output adapts this step itself.
func toOutputPhysical(r region.Rect, outputLoc space.Point, scale int32) region.Rect {
	if scale < 1 {
		scale = 1
	}
	return region.Rect{
		X: (r.X - outputLoc.X) * scale,
		Y: (r.Y - outputLoc.Y) * scale,
		W: r.W * scale,
		H: r.H * scale,
	}
}

// outputPhysicalSize returns an output's physical (device-pixel) frame
// size from its current mode, ignoring scale (modes are already in
// device pixels).
func outputPhysicalSize(o *output.Output) (w, h int32) {
	m, ok := o.CurrentMode()
	if !ok {
		return 0, 0
	}
	return m.Width, m.Height
}
