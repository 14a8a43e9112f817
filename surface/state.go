package surface

import "github.com/gogpu/wlcompositor/region"

// Transform mirrors wl_output.transform: the rotation/flip a client's
// buffer must be interpreted through before it matches logical surface
// coordinates.
type Transform int

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// Buffer is the compositor's view of a client-supplied wl_buffer: opaque
// pixel content plus a release notification. The surface store holds at
// most one strong reference to a Buffer at a time (in pending, then in
// current once committed); Release is invoked exactly once, when that
// reference is finally dropped.
type Buffer interface {
	Release()
}

// FrameCallback is a client's wl_surface.frame request: CallbackID is the
// id of the wl_callback object to fire, once this content has been
// presented.
type FrameCallback struct {
	CallbackID uint32
}

// State is one of a surface's two buffered slots (pending or current).
// Client requests only ever mutate the pending slot; Commit promotes it.
type State struct {
	// HasBuffer distinguishes "attach(nil)" (explicit detach) from "attach
	// was never called this generation" — both leave Buffer nil but only
	// the former should clear a previously-current buffer on commit.
	HasBuffer bool
	Buffer    Buffer
	// DX, DY is the attach offset: the surface-local delta the new buffer
	// is positioned at relative to the old one.
	DX, DY int32

	BufferTransform Transform
	BufferScale     int32

	// SurfaceDamage and BufferDamage accumulate independently; on commit
	// SurfaceDamage is translated into buffer coordinates by scale, then
	// unioned into BufferDamage (see translateDamage). The buffer
	// transform is not applied to it.
	SurfaceDamage region.Region
	BufferDamage  region.Region

	Opaque region.Region
	Input  region.Region

	Frames []FrameCallback

	// SubX, SubY is this surface's position relative to its parent, valid
	// only when the surface has the subsurface role.
	SubX, SubY int32

	// Generation is the commit counter; current.Generation is strictly
	// monotone across commits (spec.md invariant 3).
	Generation uint64
}

func newState() State {
	return State{BufferScale: 1}
}

// clone deep-copies the parts of a State that must not alias after a
// commit (regions and the frame-callback slice); Buffer is a reference
// and is intentionally shared until explicitly dropped.
func (s State) clone() State {
	out := s
	out.SurfaceDamage = region.New(s.SurfaceDamage.Rects()...)
	out.BufferDamage = region.New(s.BufferDamage.Rects()...)
	out.Opaque = region.New(s.Opaque.Rects()...)
	out.Input = region.New(s.Input.Rects()...)
	out.Frames = append([]FrameCallback(nil), s.Frames...)
	return out
}

// resetDamage clears accumulated damage and buffer/attach bookkeeping
// after it has been folded into a commit, without touching persistent
// fields like opaque/input regions (which, per protocol, stay in effect
// until explicitly replaced).
func (s *State) resetDamage() {
	s.SurfaceDamage = region.Region{}
	s.BufferDamage = region.Region{}
	s.HasBuffer = false
	s.Buffer = nil
	s.DX, s.DY = 0, 0
}
