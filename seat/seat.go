package seat

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
)

// Seat bundles one wl_seat's pointer, keyboard, and touch state plus
// the bookkeeping needed to validate that a serial a client supplies
// to an interactive request (xdg_toplevel.move/resize,
// xdg_popup.grab) still names a live implicit grab.
type Seat struct {
	Name string

	Pointer  *Pointer
	Keyboard *Keyboard
	Touch    *Touch

	mu        sync.Mutex
	active    map[serial.Serial]bool
	selection selectionState
}

// New returns a Seat with fresh pointer, keyboard, and touch state.
// name identifies the seat (e.g. "seat0") and doubles as the opaque
// seat identity xdgshell.GrabChain keys popup grabs on.
func New(name string) *Seat {
	return &Seat{
		Name:     name,
		Pointer:  NewPointer(),
		Keyboard: NewKeyboard(),
		Touch:    NewTouch(),
		active:   make(map[serial.Serial]bool),
	}
}

// NotePress records s as the serial of a button-press or touch-down
// that has just begun an implicit grab. Call this before delivering
// the press itself, so a client reacting synchronously to the press
// can already pass s to a move/resize/grab request.
func (s *Seat) NotePress(ser serial.Serial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[ser] = true
}

// NoteRelease retires the implicit grab started by ser, once the
// corresponding button-release or touch-up has occurred.
func (s *Seat) NoteRelease(ser serial.Serial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, ser)
}

// ValidGrabSerial reports whether ser still names an implicit grab in
// effect, i.e. NotePress(ser) was called and no matching NoteRelease
// has happened since.
func (s *Seat) ValidGrabSerial(ser serial.Serial) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[ser]
}
