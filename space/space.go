package space

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// OutputOverlapObserver is notified when Refresh detects that a
// window's overlap with an output changed. This stands in for the
// wl_surface.enter/leave wire events: the embedding compositor wires
// Enter/Leave to actually emit them (Component J's concern), Space
// only computes when they are due.
type OutputOverlapObserver interface {
	Enter(w *Window, o Output)
	Leave(w *Window, o Output)
}

// Space is an ordered collection of windows and outputs sharing one
// two-dimensional coordinate plane.
type Space struct {
	mu sync.Mutex

	windows []*Window
	outputs []*outputMapping

	observer OutputOverlapObserver
}

// New returns an empty Space. observer may be nil, in which case
// Refresh still recomputes overlap bookkeeping but fires no
// enter/leave notifications.
func New(observer OutputOverlapObserver) *Space {
	return &Space{observer: observer}
}

// MapElement inserts w (if not already mapped) or moves it to loc,
// optionally marking it activated. A freshly mapped window is raised
// to the top of its bucket.
func (sp *Space) MapElement(w *Window, loc Point, activate bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	w.mu.Lock()
	wasMapped := w.mapped
	w.mapped = true
	w.location = loc
	w.activated = activate
	w.mu.Unlock()

	if !wasMapped {
		sp.windows = append(sp.windows, w)
	}
	sp.raiseLocked(w)
}

// UnmapElement removes w from the space and fires Leave for every
// output it currently overlapped.
func (sp *Space) UnmapElement(w *Window) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	for i, v := range sp.windows {
		if v == w {
			sp.windows = append(sp.windows[:i], sp.windows[i+1:]...)
			break
		}
	}

	w.mu.Lock()
	w.mapped = false
	overlapped := w.overlaps
	w.overlaps = make(map[any]bool)
	w.mu.Unlock()

	if sp.observer == nil {
		return
	}
	for _, om := range sp.outputs {
		if overlapped[om.output.ID()] {
			sp.observer.Leave(w, om.output)
		}
	}
}

// RaiseElement moves w to the top of its z bucket, optionally setting
// activate.
func (sp *Space) RaiseElement(w *Window, activate bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	w.mu.Lock()
	w.activated = activate
	w.mu.Unlock()
	sp.raiseLocked(w)
}

// raiseLocked moves w to the end of its bucket's run within
// sp.windows (the draw order is bottom-to-top, buckets in ascending
// order, most-recently-raised last within a bucket).
func (sp *Space) raiseLocked(w *Window) {
	idx := -1
	for i, v := range sp.windows {
		if v == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	sp.windows = append(sp.windows[:idx], sp.windows[idx+1:]...)

	bucket := w.ZBucket()
	insertAt := len(sp.windows)
	for i, v := range sp.windows {
		if v.ZBucket() > bucket {
			insertAt = i
			break
		}
	}
	sp.windows = append(sp.windows, nil)
	copy(sp.windows[insertAt+1:], sp.windows[insertAt:])
	sp.windows[insertAt] = w
}

// Elements returns the mapped windows in bottom-to-top draw order.
// The slice is a snapshot; it is not aliased by the Space.
func (sp *Space) Elements() []*Window {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	out := make([]*Window, len(sp.windows))
	copy(out, sp.windows)
	return out
}

// ElementUnder returns the topmost mapped window whose bbox contains
// pt, or nil.
func (sp *Space) ElementUnder(pt Point) *Window {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	for i := len(sp.windows) - 1; i >= 0; i-- {
		w := sp.windows[i]
		if w.Rect().Contains(pt.X, pt.Y) {
			return w
		}
	}
	return nil
}

// ElementForSurface finds the window whose element tree contains surf,
// per scope.
func (sp *Space) ElementForSurface(surf *surface.Surface, scope Scope) *Window {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	for _, w := range sp.windows {
		if w.Element.RootSurface() == surf {
			return w
		}
		if scope == ScopeToplevelOnly {
			continue
		}
		if surfaceInSubtree(w.Element.RootSurface(), surf) {
			return w
		}
	}
	return nil
}

func surfaceInSubtree(root, target *surface.Surface) bool {
	if root == target {
		return true
	}
	for _, child := range root.Children() {
		if surfaceInSubtree(child, target) {
			return true
		}
	}
	return false
}

// MapOutput inserts or moves an output to loc.
func (sp *Space) MapOutput(o Output, loc Point) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	for _, om := range sp.outputs {
		if om.output.ID() == o.ID() {
			om.location = loc
			return
		}
	}
	sp.outputs = append(sp.outputs, &outputMapping{output: o, location: loc})
}

// UnmapOutput removes a previously mapped output.
func (sp *Space) UnmapOutput(o Output) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	for i, om := range sp.outputs {
		if om.output.ID() == o.ID() {
			sp.outputs = append(sp.outputs[:i], sp.outputs[i+1:]...)
			return
		}
	}
}

// OutputUnder returns the output whose geometry contains pt, or nil.
func (sp *Space) OutputUnder(pt Point) Output {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	for _, om := range sp.outputs {
		r := sp.outputRectLocked(om)
		if r.Contains(pt.X, pt.Y) {
			return om.output
		}
	}
	return nil
}

func (sp *Space) outputRectLocked(om *outputMapping) region.Rect {
	w, h := om.output.PixelSize()
	return region.Rect{X: om.location.X, Y: om.location.Y, W: w, H: h}
}

// Refresh recomputes output↔window overlap for every mapped window
// and fires Enter/Leave on the observer for anything that changed
// since the last Refresh.
func (sp *Space) Refresh() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	outRects := make(map[any]region.Rect, len(sp.outputs))
	for _, om := range sp.outputs {
		outRects[om.output.ID()] = sp.outputRectLocked(om)
	}

	for _, w := range sp.windows {
		wr := w.Rect()
		w.mu.Lock()
		prev := w.overlaps
		next := make(map[any]bool, len(sp.outputs))
		for _, om := range sp.outputs {
			id := om.output.ID()
			if wr.Overlaps(outRects[id]) {
				next[id] = true
			}
		}
		w.overlaps = next
		w.mu.Unlock()

		if sp.observer == nil {
			continue
		}
		for _, om := range sp.outputs {
			id := om.output.ID()
			was, now := prev[id], next[id]
			switch {
			case now && !was:
				sp.observer.Enter(w, om.output)
			case was && !now:
				sp.observer.Leave(w, om.output)
			}
		}
	}
}
