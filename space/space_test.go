package space

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

type fakeElement struct {
	id   string
	root *surface.Surface
	bbox region.Rect
}

func (e *fakeElement) ID() any                      { return e.id }
func (e *fakeElement) RootSurface() *surface.Surface { return e.root }
func (e *fakeElement) Bbox() region.Rect             { return e.bbox }
func (e *fakeElement) BboxWithPopups() region.Rect   { return e.bbox }
func (e *fakeElement) Geometry() region.Rect         { return e.bbox }

func newElement(t *testing.T, id string, w, h int32) *fakeElement {
	t.Helper()
	st := surface.NewStore(nil)
	return &fakeElement{id: id, root: st.Create(), bbox: region.Rect{X: 0, Y: 0, W: w, H: h}}
}

func TestMapElementInsertsAndRaises(t *testing.T) {
	sp := New(nil)
	w1 := NewWindow(newElement(t, "a", 100, 100))
	w2 := NewWindow(newElement(t, "b", 100, 100))

	sp.MapElement(w1, Point{0, 0}, false)
	sp.MapElement(w2, Point{50, 50}, true)

	els := sp.Elements()
	if len(els) != 2 || els[0] != w1 || els[1] != w2 {
		t.Fatalf("expected [w1, w2] bottom-to-top, got %v", els)
	}
	if !w2.Activated() {
		t.Fatalf("w2 should be activated")
	}
}

func TestRaiseElementMovesToTopOfBucket(t *testing.T) {
	sp := New(nil)
	w1 := NewWindow(newElement(t, "a", 10, 10))
	w2 := NewWindow(newElement(t, "b", 10, 10))
	sp.MapElement(w1, Point{}, false)
	sp.MapElement(w2, Point{}, false)

	sp.RaiseElement(w1, true)
	els := sp.Elements()
	if els[len(els)-1] != w1 {
		t.Fatalf("w1 should now be topmost")
	}
}

func TestZBucketOrderingIsRespectedAcrossRaise(t *testing.T) {
	sp := New(nil)
	bg := NewWindow(newElement(t, "bg", 10, 10))
	bg.SetZBucket(ZBackground)
	shell := NewWindow(newElement(t, "shell", 10, 10))

	sp.MapElement(shell, Point{}, false)
	sp.MapElement(bg, Point{}, false)
	sp.RaiseElement(bg, false)

	els := sp.Elements()
	if els[0] != bg || els[1] != shell {
		t.Fatalf("background bucket must stay below shell bucket regardless of raise order")
	}
}

func TestUnmapElementRemovesFromSpace(t *testing.T) {
	sp := New(nil)
	w := NewWindow(newElement(t, "a", 10, 10))
	sp.MapElement(w, Point{}, false)
	sp.UnmapElement(w)

	if len(sp.Elements()) != 0 {
		t.Fatalf("expected space to be empty after unmap")
	}
	if w.Mapped() {
		t.Fatalf("window should report unmapped")
	}
}

func TestElementUnderReturnsTopmostContainingPoint(t *testing.T) {
	sp := New(nil)
	w1 := NewWindow(newElement(t, "a", 100, 100))
	w2 := NewWindow(newElement(t, "b", 50, 50))
	sp.MapElement(w1, Point{0, 0}, false)
	sp.MapElement(w2, Point{0, 0}, true)

	if sp.ElementUnder(Point{10, 10}) != w2 {
		t.Fatalf("expected w2 (topmost, overlapping) at (10,10)")
	}
	if sp.ElementUnder(Point{70, 70}) != w1 {
		t.Fatalf("expected w1 at (70,70), outside w2's bbox")
	}
	if sp.ElementUnder(Point{500, 500}) != nil {
		t.Fatalf("expected no element far outside both bboxes")
	}
}

func TestElementForSurfaceToplevelOnlyDoesNotMatchSubsurface(t *testing.T) {
	sp := New(nil)
	st := surface.NewStore(nil)
	root := st.Create()
	el := &fakeElement{id: "a", root: root, bbox: region.Rect{X: 0, Y: 0, W: 10, H: 10}}
	w := NewWindow(el)
	sp.MapElement(w, Point{}, false)

	child := st.Create()
	root.AddSubsurface(child)

	if sp.ElementForSurface(el.root, ScopeToplevelOnly) != w {
		t.Fatalf("expected match on root surface")
	}
	if sp.ElementForSurface(child, ScopeToplevelOnly) != nil {
		t.Fatalf("toplevel-only scope should not match a subsurface")
	}
	if sp.ElementForSurface(child, ScopeSubtree) != w {
		t.Fatalf("subtree scope should match a mapped subsurface")
	}
}

type fakeOutput struct {
	id   string
	w, h int32
}

func (o *fakeOutput) ID() any                   { return o.id }
func (o *fakeOutput) PixelSize() (int32, int32) { return o.w, o.h }

type recordingObserver struct {
	entered, left []string
}

func (r *recordingObserver) Enter(w *Window, o Output) {
	r.entered = append(r.entered, w.Element.ID().(string)+"@"+o.ID().(string))
}
func (r *recordingObserver) Leave(w *Window, o Output) {
	r.left = append(r.left, w.Element.ID().(string)+"@"+o.ID().(string))
}

func TestRefreshFiresEnterLeaveOnOverlapChange(t *testing.T) {
	obs := &recordingObserver{}
	sp := New(obs)
	out := &fakeOutput{id: "out0", w: 100, h: 100}
	sp.MapOutput(out, Point{0, 0})

	w := NewWindow(newElement(t, "a", 50, 50))
	sp.MapElement(w, Point{200, 200}, false) // outside the output
	sp.Refresh()
	if len(obs.entered) != 0 {
		t.Fatalf("should not have entered yet: %v", obs.entered)
	}

	sp.MapElement(w, Point{10, 10}, false) // now overlaps
	sp.Refresh()
	if len(obs.entered) != 1 || obs.entered[0] != "a@out0" {
		t.Fatalf("expected enter a@out0, got %v", obs.entered)
	}

	sp.MapElement(w, Point{500, 500}, false) // moved away
	sp.Refresh()
	if len(obs.left) != 1 || obs.left[0] != "a@out0" {
		t.Fatalf("expected leave a@out0, got %v", obs.left)
	}
}

func TestOutputUnderReturnsOutputContainingPoint(t *testing.T) {
	sp := New(nil)
	out := &fakeOutput{id: "out0", w: 100, h: 100}
	sp.MapOutput(out, Point{0, 0})

	if sp.OutputUnder(Point{50, 50}) != out {
		t.Fatalf("expected out0 at (50,50)")
	}
	if sp.OutputUnder(Point{500, 500}) != nil {
		t.Fatalf("expected no output at (500,500)")
	}
}

func TestUnmapOutputStopsOverlap(t *testing.T) {
	sp := New(nil)
	out := &fakeOutput{id: "out0", w: 100, h: 100}
	sp.MapOutput(out, Point{0, 0})
	sp.UnmapOutput(out)

	if sp.OutputUnder(Point{10, 10}) != nil {
		t.Fatalf("expected no output after unmap")
	}
}
