package seat

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

// ButtonState is the pressed/released state of a pointer button event.
type ButtonState int

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// AxisSource names the device class behind an axis event, per
// wl_pointer.axis_source.
type AxisSource int

const (
	AxisSourceWheel AxisSource = iota
	AxisSourceFinger
	AxisSourceContinuous
	AxisSourceWheelTilt
)

// MotionEvent is a pointer motion sample, in the focused surface's local
// coordinates.
type MotionEvent struct {
	X, Y float64
	Time uint32
}

// ButtonEvent is a pointer button press/release.
type ButtonEvent struct {
	Button uint32
	State  ButtonState
	Serial serial.Serial
	Time   uint32
}

// AxisEvent is one accumulated scroll sample for a frame.
type AxisEvent struct {
	Horizontal, Vertical float64
	Source               AxisSource
	Time                 uint32
}

// RelativeMotionEvent is unaccelerated pointer delta, independent of
// pointer-lock/confinement.
type RelativeMotionEvent struct {
	DX, DY                           float64
	UnacceleratedDX, UnacceleratedDY float64
	Time                              uint64
}

// GrabStartData snapshots the pointer's location, focus, and the serial
// active at the moment a grab began — the grab contract's start_data().
type GrabStartData struct {
	Location      [2]float64
	Focus         *surface.Surface
	ButtonSerial  serial.Serial
}

// PointerGrab replaces the default pointer handler for the duration of
// an interactive operation (move, resize, popup-initiated grabs). Only
// one grab is active per Pointer at a time.
type PointerGrab interface {
	Motion(p *Pointer, ev MotionEvent)
	Button(p *Pointer, ev ButtonEvent)
	Axis(p *Pointer, ev AxisEvent)
	Frame(p *Pointer)
	RelativeMotion(p *Pointer, ev RelativeMotionEvent)
	StartData() GrabStartData
	Unset(p *Pointer)
}

// PointerClient is a per-client binding of wl_pointer: the sink for
// enter/leave/motion/button/axis/frame events. A client that has bound
// wl_pointer more than once registers one PointerClient per resource.
type PointerClient interface {
	ClientID() any
	Enter(s serial.Serial, surf *surface.Surface, x, y float64)
	Leave(s serial.Serial, surf *surface.Surface)
	Motion(ev MotionEvent)
	Button(ev ButtonEvent)
	Axis(ev AxisEvent)
	Frame()
}

// Pointer tracks one seat's pointer: known per-client bindings, current
// focus, and the active grab (defaulting to routing events straight to
// the focused surface's client).
type Pointer struct {
	mu sync.Mutex

	clients []PointerClient

	focus       *surface.Surface
	focusClient any
	x, y        float64

	grab        PointerGrab
	defaultGrab PointerGrab
}

// NewPointer returns a Pointer with no focus and the default grab
// active.
func NewPointer() *Pointer {
	p := &Pointer{}
	p.defaultGrab = &defaultPointerGrab{}
	p.grab = p.defaultGrab
	return p
}

// AddClient registers a per-client wl_pointer binding to receive events
// when its client's surface has focus.
func (p *Pointer) AddClient(c PointerClient) {
	p.mu.Lock()
	p.clients = append(p.clients, c)
	p.mu.Unlock()
}

// RemoveClient unregisters a previously added binding, e.g. on
// destruction.
func (p *Pointer) RemoveClient(c PointerClient) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, v := range p.clients {
		if v == c {
			p.clients = append(p.clients[:i], p.clients[i+1:]...)
			return
		}
	}
}

func (p *Pointer) withFocusedClients(f func(c PointerClient)) {
	if p.focus == nil {
		return
	}
	for _, c := range p.clients {
		if c.ClientID() == p.focusClient {
			f(c)
		}
	}
}

// SetFocus updates the surface under the pointer (ownerClientID
// identifies the client that owns surf, so only its wl_pointer bindings
// receive enter; pass nil surf to mean "not over any client surface").
// This mirrors the default handler's enter/leave bookkeeping; it runs
// regardless of which grab is active, since focus is a property of the
// pointer, not the grab.
func (p *Pointer) SetFocus(surf *surface.Surface, ownerClientID any, s serial.Serial, x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.focus != nil && p.focus != surf {
		p.withFocusedClients(func(c PointerClient) { c.Leave(s, p.focus) })
		p.focus = nil
		p.focusClient = nil
	}
	if surf != nil && p.focus == nil {
		p.focus = surf
		p.focusClient = ownerClientID
		p.x, p.y = x, y
		p.withFocusedClients(func(c PointerClient) { c.Enter(s, surf, x, y) })
	}
}

// Focus returns the surface currently under the pointer, or nil.
func (p *Pointer) Focus() *surface.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focus
}

// Motion delivers a motion sample to the active grab.
func (p *Pointer) Motion(ev MotionEvent) {
	p.mu.Lock()
	p.x, p.y = ev.X, ev.Y
	grab := p.grab
	p.mu.Unlock()
	grab.Motion(p, ev)
}

// Button delivers a button event to the active grab.
func (p *Pointer) Button(ev ButtonEvent) {
	p.mu.Lock()
	grab := p.grab
	p.mu.Unlock()
	grab.Button(p, ev)
}

// Axis delivers an axis event to the active grab.
func (p *Pointer) Axis(ev AxisEvent) {
	p.mu.Lock()
	grab := p.grab
	p.mu.Unlock()
	grab.Axis(p, ev)
}

// Frame ends the current batch of pointer events.
func (p *Pointer) Frame() {
	p.mu.Lock()
	grab := p.grab
	p.mu.Unlock()
	grab.Frame(p)
}

// RelativeMotion delivers unaccelerated pointer delta to the active
// grab, independent of any on-screen cursor constraint.
func (p *Pointer) RelativeMotion(ev RelativeMotionEvent) {
	p.mu.Lock()
	grab := p.grab
	p.mu.Unlock()
	grab.RelativeMotion(p, ev)
}

// SetGrab installs g as the active grab, replacing the default handler
// (or a previous grab). g is installed first; the previous grab's Unset
// is called afterwards.
func (p *Pointer) SetGrab(g PointerGrab) {
	p.mu.Lock()
	prev := p.grab
	p.grab = g
	p.mu.Unlock()
	if prev != nil {
		prev.Unset(p)
	}
}

// Unset restores the default pointer handler.
func (p *Pointer) Unset() {
	p.SetGrab(p.defaultGrab)
}

// GrabActive reports whether a non-default grab currently holds the
// pointer.
func (p *Pointer) GrabActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grab != p.defaultGrab
}

// emitToFocused is used by the default grab to route events to whatever
// client owns the current focus, exactly as PointerClient expects.
func (p *Pointer) emitToFocused(f func(c PointerClient)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withFocusedClients(f)
}

// defaultPointerGrab is the handler active when no interactive
// operation holds the pointer: it routes every event straight to the
// focused surface's client bindings.
type defaultPointerGrab struct{}

func (defaultPointerGrab) Motion(p *Pointer, ev MotionEvent) {
	p.emitToFocused(func(c PointerClient) { c.Motion(ev) })
}

func (defaultPointerGrab) Button(p *Pointer, ev ButtonEvent) {
	p.emitToFocused(func(c PointerClient) { c.Button(ev) })
}

func (defaultPointerGrab) Axis(p *Pointer, ev AxisEvent) {
	p.emitToFocused(func(c PointerClient) { c.Axis(ev) })
}

func (defaultPointerGrab) Frame(p *Pointer) {
	p.emitToFocused(func(c PointerClient) { c.Frame() })
}

func (defaultPointerGrab) RelativeMotion(p *Pointer, ev RelativeMotionEvent) {}

func (defaultPointerGrab) StartData() GrabStartData { return GrabStartData{} }

func (defaultPointerGrab) Unset(p *Pointer) {}
