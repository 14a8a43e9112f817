package output

import "github.com/gogpu/wlcompositor/space"

// SurfaceObserver receives wl_surface.enter/leave notifications for one
// wl_surface resource, fired when the window it belongs to starts or
// stops overlapping an output.
type SurfaceObserver interface {
	Enter(o *Output)
	Leave(o *Output)
}

// WindowOverlap adapts a space.Window to space.OutputOverlapObserver's
// per-window Enter/Leave callbacks, dispatching to whatever
// SurfaceObserver bindings are registered for that window's surface.
// The embedding compositor registers one WindowOverlap as the Space's
// observer and maps window identities to their surface bindings via
// lookup.
type WindowOverlap struct {
	lookup func(w *space.Window) []SurfaceObserver
}

// NewWindowOverlap returns an observer that resolves a window to its
// registered per-client surface bindings via lookup.
func NewWindowOverlap(lookup func(w *space.Window) []SurfaceObserver) *WindowOverlap {
	return &WindowOverlap{lookup: lookup}
}

// Enter implements space.OutputOverlapObserver.
func (wo *WindowOverlap) Enter(w *space.Window, o space.Output) {
	out, ok := o.(*Output)
	if !ok {
		return
	}
	for _, obs := range wo.lookup(w) {
		obs.Enter(out)
	}
}

// Leave implements space.OutputOverlapObserver.
func (wo *WindowOverlap) Leave(w *space.Window, o space.Output) {
	out, ok := o.(*Output)
	if !ok {
		return
	}
	for _, obs := range wo.lookup(w) {
		obs.Leave(out)
	}
}
