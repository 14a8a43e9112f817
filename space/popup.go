package space

import "github.com/gogpu/wlcompositor/surface"

// PopupElement is the Element contract for a popup: in addition to
// the base Element methods, a popup knows its parent surface and the
// offset its positioner resolved it to.
type PopupElement interface {
	Element
	// Parent returns the surface the popup is positioned relative to.
	Parent() *surface.Surface
	// ConfiguredOffset returns the popup's resolved position relative
	// to its parent's effective position (xdg_positioner's resolved
	// rectangle origin).
	ConfiguredOffset() Point
}

// PopupLocation computes a popup's effective space-coordinate
// position: its parent's effective position, plus the popup's
// configured offset, minus the popup surface's own window-geometry
// origin (so the popup's geometry top-left — not its surface
// top-left — lands at parent + offset).
func PopupLocation(parentEffective Point, popup PopupElement) Point {
	geo := popup.Geometry()
	offset := popup.ConfiguredOffset()
	return Point{
		X: parentEffective.X + offset.X - geo.X,
		Y: parentEffective.Y + offset.Y - geo.Y,
	}
}

// RootWindow walks up a chain of popup parents starting at w,
// returning the first ancestor that is not itself a popup (i.e. the
// toplevel or foreign window the popup chain is ultimately attached
// to). findWindow resolves a surface back to the Window mapping it
// (e.g. Space.ElementForSurface with ScopeToplevelOnly).
func RootWindow(w *Window, findWindow func(*surface.Surface) *Window) *Window {
	for {
		pe, ok := w.Element.(PopupElement)
		if !ok {
			return w
		}
		parentWin := findWindow(pe.Parent())
		if parentWin == nil {
			return w
		}
		w = parentWin
	}
}
