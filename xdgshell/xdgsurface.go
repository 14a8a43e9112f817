package xdgshell

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
)

// XdgSurface tracks the configure-serial bookkeeping shared by
// xdg_toplevel and xdg_popup: every configure event gets a fresh serial;
// ack_configure names the newest one the client has processed; a buffer
// may not be committed before the first configure is acked.
type XdgSurface struct {
	mu         sync.Mutex
	counter    *serial.Counter
	configured bool
}

// NewXdgSurface returns an XdgSurface allocating serials from counter.
func NewXdgSurface(counter *serial.Counter) *XdgSurface {
	return &XdgSurface{counter: counter}
}

// NextSerial allocates the serial for an outgoing configure event. The
// caller (Toplevel/Popup) is responsible for remembering what state that
// serial corresponds to.
func (x *XdgSurface) NextSerial() serial.Serial {
	return x.counter.Next()
}

// MarkAcked records that at least one configure has now been acked,
// satisfying the "must ack before first buffer commit" invariant. Called
// by Toplevel/Popup once they've matched an ack_configure serial against
// their own outstanding list.
func (x *XdgSurface) MarkAcked() {
	x.mu.Lock()
	x.configured = true
	x.mu.Unlock()
}

// Configured reports whether any configure has been acked yet.
func (x *XdgSurface) Configured() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.configured
}
