package xdgshell

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
)

// WmBase tracks one client's xdg_wm_base ping/pong exchange: at most one
// ping is outstanding at a time, and a client that never pongs is a
// responsiveness signal the embedder acts on (greying out a window,
// offering to kill it). Scheduling and timing out that wait is the
// embedder's job; WmBase only tracks which serial is outstanding and
// matches the reply.
type WmBase struct {
	mu          sync.Mutex
	counter     *serial.Counter
	outstanding *serial.Serial
}

// NewWmBase returns a WmBase allocating ping serials from counter.
func NewWmBase(counter *serial.Counter) *WmBase {
	return &WmBase{counter: counter}
}

// Ping allocates a fresh serial for an outgoing ping and records it as
// outstanding, replacing any previous one: a client that never pongs the
// first ping is still considered live until the embedder decides
// otherwise, not stuck forever unable to receive a second one.
func (w *WmBase) Ping() serial.Serial {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.counter.Next()
	w.outstanding = &s
	return s
}

// HandlePong matches an incoming pong's serial against the outstanding
// ping, clearing it on success.
func (w *WmBase) HandlePong(s serial.Serial) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.outstanding == nil {
		return ErrNoOutstandingPing
	}
	if *w.outstanding != s {
		return ErrUnexpectedPong
	}
	w.outstanding = nil
	return nil
}

// Outstanding reports the currently outstanding ping serial, if any.
func (w *WmBase) Outstanding() (s serial.Serial, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.outstanding == nil {
		return 0, false
	}
	return *w.outstanding, true
}
