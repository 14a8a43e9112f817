package xdgshell

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

// ToplevelStateBit names one of the boolean flags sent in an
// xdg_toplevel.configure event's states array.
type ToplevelStateBit uint32

const (
	ToplevelMaximized ToplevelStateBit = 1 << iota
	ToplevelFullscreen
	ToplevelResizing
	ToplevelActivated
	ToplevelTiledLeft
	ToplevelTiledRight
	ToplevelTiledTop
	ToplevelTiledBottom
	ToplevelSuspended
)

// ToplevelConfigure is the content of one xdg_toplevel.configure event:
// a suggested size (0 on an axis means "client chooses") and a set of
// state flags.
type ToplevelConfigure struct {
	Width, Height int32
	States        ToplevelStateBit
}

type pendingToplevelConfigure struct {
	serial serial.Serial
	state  ToplevelConfigure
}

// RegisterToplevelRole installs the xdg_toplevel commit callback (pipeline
// step 6) into roles: promotes the newest acked configure to current
// state. Call once per surface.Store.
func RegisterToplevelRole(roles *surface.RoleRegistry) {
	roles.Register(surface.RoleXDGToplevel, func(s *surface.Surface) {
		if t, ok := s.RoleData().(*Toplevel); ok {
			t.promoteAcked()
		}
	})
}

// Toplevel implements the xdg_toplevel role: the current/pending/
// server-pending triple described in the protocol, configure-diff
// emission, and request validation.
type Toplevel struct {
	mu sync.Mutex

	wl  *surface.Surface
	xdg *XdgSurface

	parent *Toplevel

	title, appID           string
	minW, minH, maxW, maxH int32

	current       ToplevelConfigure
	serverPending ToplevelConfigure
	pending       []pendingToplevelConfigure
	lastAcked     *ToplevelConfigure
}

// NewToplevel creates a Toplevel for wl (which must not yet carry a
// role) and assigns it the xdg_toplevel role. Returns ErrAlreadyRoled if
// wl already carries a different role.
func NewToplevel(wl *surface.Surface, xdg *XdgSurface) (*Toplevel, error) {
	if err := wl.SetRole(surface.RoleXDGToplevel); err != nil {
		return nil, err
	}
	t := &Toplevel{wl: wl, xdg: xdg}
	wl.SetRoleData(t)
	wl.AddCommitHook(func(s *surface.Surface) error {
		if s.Pending().HasBuffer && !xdg.Configured() {
			return ErrNotConfigured
		}
		return nil
	})
	return t, nil
}

// Surface returns the underlying wl_surface.
func (t *Toplevel) Surface() *surface.Surface { return t.wl }

// SetTitle writes the client-visible title. Takes effect immediately;
// the title is metadata, not part of the configure/ack contract.
func (t *Toplevel) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
}

// Title returns the most recently set title.
func (t *Toplevel) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// SetAppID writes the client-visible application id.
func (t *Toplevel) SetAppID(appID string) {
	t.mu.Lock()
	t.appID = appID
	t.mu.Unlock()
}

// AppID returns the most recently set application id.
func (t *Toplevel) AppID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appID
}

// SetParent records parent (nil clears it). No cycle validation is
// performed here; the wiring layer is expected to reject a parent that
// would create a cycle before calling this.
func (t *Toplevel) SetParent(parent *Toplevel) {
	t.mu.Lock()
	t.parent = parent
	t.mu.Unlock()
}

// Parent returns the toplevel set via SetParent, or nil.
func (t *Toplevel) Parent() *Toplevel {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parent
}

// SetMinSize validates min against the current max (0 means unset on
// that axis) and stores it.
func (t *Toplevel) SetMinSize(w, h int32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := checkMinMax(w, h, t.maxW, t.maxH); err != nil {
		return err
	}
	t.minW, t.minH = w, h
	return nil
}

// SetMaxSize validates max against the current min (0 means unset on
// that axis) and stores it.
func (t *Toplevel) SetMaxSize(w, h int32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := checkMinMax(t.minW, t.minH, w, h); err != nil {
		return err
	}
	t.maxW, t.maxH = w, h
	return nil
}

func checkMinMax(minW, minH, maxW, maxH int32) error {
	if maxW > 0 && minW > maxW {
		return ErrInvalidMinMax
	}
	if maxH > 0 && minH > maxH {
		return ErrInvalidMinMax
	}
	return nil
}

// MinSize returns the stored minimum size (0 on an axis means unset).
func (t *Toplevel) MinSize() (w, h int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.minW, t.minH
}

// MaxSize returns the stored maximum size (0 on an axis means unset).
func (t *Toplevel) MaxSize() (w, h int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxW, t.maxH
}

// Current returns the configuration currently in effect (last acked and
// committed).
func (t *Toplevel) Current() ToplevelConfigure {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// WithPendingState lets the compositor mutate the server-pending
// configure (the state SendConfigure will diff against and, if
// different, send next).
func (t *Toplevel) WithPendingState(f func(*ToplevelConfigure)) {
	t.mu.Lock()
	f(&t.serverPending)
	t.mu.Unlock()
}

// SendConfigure diffs server-pending against the tail of the
// outstanding-configures list (or current, if none outstanding). If they
// differ, it allocates a fresh serial, appends the snapshot, and returns
// it for the caller to encode as an xdg_toplevel.configure followed by
// xdg_surface.configure event pair. The second return value is false if
// nothing changed and no configure should be sent.
func (t *Toplevel) SendConfigure() (serial.Serial, ToplevelConfigure, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tail := t.current
	if n := len(t.pending); n > 0 {
		tail = t.pending[n-1].state
	}
	if tail == t.serverPending {
		return 0, ToplevelConfigure{}, false
	}

	s := t.xdg.NextSerial()
	snapshot := t.serverPending
	t.pending = append(t.pending, pendingToplevelConfigure{serial: s, state: snapshot})
	return s, snapshot, true
}

// AckConfigure consumes every outstanding configure up to and including
// s; the newest consumed snapshot becomes the pending "last acked"
// configure, promoted to current on the next commit. Returns
// ErrUnknownSerial if s does not match any outstanding configure.
func (t *Toplevel) AckConfigure(s serial.Serial) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, p := range t.pending {
		if p.serial == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownSerial
	}
	acked := t.pending[idx].state
	t.pending = t.pending[idx+1:]
	t.lastAcked = &acked
	t.xdg.MarkAcked()
	return nil
}

func (t *Toplevel) promoteAcked() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastAcked != nil {
		t.current = *t.lastAcked
		t.lastAcked = nil
	}
}
