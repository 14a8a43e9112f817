package space

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

type fakePopupElement struct {
	fakeElement
	parent *surface.Surface
	offset Point
	geo    region.Rect
}

func (e *fakePopupElement) Parent() *surface.Surface { return e.parent }
func (e *fakePopupElement) ConfiguredOffset() Point  { return e.offset }
func (e *fakePopupElement) Geometry() region.Rect    { return e.geo }

func TestPopupLocationIsParentPlusOffsetMinusGeometryOrigin(t *testing.T) {
	parentSt := surface.NewStore(nil)
	parentSurf := parentSt.Create()

	popup := &fakePopupElement{
		fakeElement: fakeElement{id: "popup", root: parentSt.Create(), bbox: region.Rect{X: -5, Y: -5, W: 50, H: 50}},
		parent:      parentSurf,
		offset:      Point{X: 20, Y: 30},
		geo:         region.Rect{X: -5, Y: -5, W: 50, H: 50},
	}

	loc := PopupLocation(Point{X: 100, Y: 100}, popup)
	if loc.X != 100+20-(-5) || loc.Y != 100+30-(-5) {
		t.Fatalf("popup location = %v, want (125,135)", loc)
	}
}

func TestRootWindowWalksPopupToItsToplevel(t *testing.T) {
	sp := New(nil)
	toplevelSt := surface.NewStore(nil)
	toplevelSurf := toplevelSt.Create()
	toplevelEl := &fakeElement{id: "toplevel", root: toplevelSurf, bbox: region.Rect{W: 100, H: 100}}
	toplevelWin := NewWindow(toplevelEl)
	sp.MapElement(toplevelWin, Point{}, false)

	popupEl := &fakePopupElement{
		fakeElement: fakeElement{id: "popup", root: toplevelSt.Create(), bbox: region.Rect{W: 10, H: 10}},
		parent:      toplevelSurf,
		offset:      Point{X: 1, Y: 1},
		geo:         region.Rect{W: 10, H: 10},
	}
	popupWin := NewWindow(popupEl)

	find := func(s *surface.Surface) *Window { return sp.ElementForSurface(s, ScopeToplevelOnly) }
	root := RootWindow(popupWin, find)
	if root != toplevelWin {
		t.Fatalf("expected popup's root window to resolve to the toplevel")
	}
}

func TestRootWindowReturnsSelfWhenNotAPopup(t *testing.T) {
	sp := New(nil)
	win := NewWindow(newElement(t, "a", 10, 10))
	sp.MapElement(win, Point{}, false)

	find := func(s *surface.Surface) *Window { return sp.ElementForSurface(s, ScopeToplevelOnly) }
	if RootWindow(win, find) != win {
		t.Fatalf("non-popup window should resolve to itself")
	}
}
