package xdgshell

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

type pendingPopupConfigure struct {
	serial serial.Serial
	rect   region.Rect
}

// RegisterPopupRole installs the xdg_popup commit callback into roles:
// promotes the newest acked configured geometry to current. Call once
// per surface.Store.
func RegisterPopupRole(roles *surface.RoleRegistry) {
	roles.Register(surface.RoleXDGPopup, func(s *surface.Surface) {
		if p, ok := s.RoleData().(*Popup); ok {
			p.promoteAcked()
		}
	})
}

// Popup implements the xdg_popup role: positioner-driven geometry,
// configure/ack sequencing (via XdgSurface), and participation in a
// per-seat grab chain.
type Popup struct {
	mu sync.Mutex

	wl  *surface.Surface
	xdg *XdgSurface

	parent     *surface.Surface
	positioner *PositionerState

	current   region.Rect
	pending   []pendingPopupConfigure
	lastAcked *region.Rect

	grabbedOnChain *GrabChain
	grabbedSeat    any
}

// NewPopup creates a Popup for wl, parented to parent (a toplevel's or
// another popup's wl_surface), positioned by positioner.
func NewPopup(wl *surface.Surface, xdg *XdgSurface, parent *surface.Surface, positioner *PositionerState) (*Popup, error) {
	if err := wl.SetRole(surface.RoleXDGPopup); err != nil {
		return nil, err
	}
	p := &Popup{wl: wl, xdg: xdg, parent: parent, positioner: positioner}
	wl.SetRoleData(p)
	wl.AddCommitHook(func(s *surface.Surface) error {
		if s.Pending().HasBuffer && !xdg.Configured() {
			return ErrNotConfigured
		}
		return nil
	})
	return p, nil
}

// Surface returns the underlying wl_surface.
func (p *Popup) Surface() *surface.Surface { return p.wl }

// Parent returns the surface this popup is positioned relative to.
func (p *Popup) Parent() *surface.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parent
}

// Current returns the last configured geometry, in the parent surface's
// local coordinate space.
func (p *Popup) Current() region.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// SendConfigure resolves the positioner against containment and, if the
// result differs from the tail of the outstanding list (or current),
// allocates a serial and queues it for ack. The caller encodes
// popup.configure(x,y,w,h) followed by xdg_surface.configure(serial).
func (p *Popup) SendConfigure(containment region.Rect) (serial.Serial, region.Rect, bool) {
	rect := p.positioner.Resolve(containment)

	p.mu.Lock()
	defer p.mu.Unlock()

	tail := p.current
	if n := len(p.pending); n > 0 {
		tail = p.pending[n-1].rect
	}
	if tail == rect {
		return 0, region.Rect{}, false
	}

	s := p.xdg.NextSerial()
	p.pending = append(p.pending, pendingPopupConfigure{serial: s, rect: rect})
	return s, rect, true
}

// AckConfigure consumes outstanding configures up to and including s.
// Returns ErrUnknownSerial if s names none.
func (p *Popup) AckConfigure(s serial.Serial) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := -1
	for i, e := range p.pending {
		if e.serial == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownSerial
	}
	rect := p.pending[idx].rect
	p.pending = p.pending[idx+1:]
	p.lastAcked = &rect
	p.xdg.MarkAcked()
	return nil
}

func (p *Popup) promoteAcked() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastAcked != nil {
		p.current = *p.lastAcked
		p.lastAcked = nil
	}
}

// Reposition replaces the popup's positioner and sends nothing itself.
// The next SendConfigure resolves the new positioner; the caller is
// responsible for emitting repositioned(token) before that configure
// event.
func (p *Popup) Reposition(positioner *PositionerState) {
	p.mu.Lock()
	p.positioner = positioner
	p.mu.Unlock()
}

// Grab requests an input grab for the popup on chain, identified by
// seatID. Succeeds only if the popup's parent is either a toplevel (an
// empty chain) or the popup currently at the top of the chain — i.e. the
// popup forms a valid next link — per the grab-chain invariant.
func (p *Popup) Grab(chain *GrabChain, seatID any) error {
	if err := chain.push(seatID, p); err != nil {
		return err
	}
	p.mu.Lock()
	p.grabbedOnChain = chain
	p.grabbedSeat = seatID
	p.mu.Unlock()
	return nil
}

// Destroy releases the popup's grab-chain slot, if any. Returns
// ErrNotTopOfChain if the popup is not currently at the top of its
// chain (a popup must be destroyed top-down).
func (p *Popup) Destroy() error {
	p.mu.Lock()
	chain, seatID := p.grabbedOnChain, p.grabbedSeat
	p.mu.Unlock()

	if chain == nil {
		p.wl.Destroy()
		return nil
	}
	if err := chain.pop(seatID, p); err != nil {
		return err
	}
	p.wl.Destroy()
	return nil
}

// GrabChain tracks, per seat, the stack of popups holding an active
// input grab: a popup may only be grabbed if it is parented to a
// toplevel (starting a new chain) or to the popup currently on top of
// the seat's chain (extending it), and may only be destroyed while it is
// the top entry.
type GrabChain struct {
	mu     sync.Mutex
	stacks map[any][]*Popup
}

// NewGrabChain returns an empty chain tracker.
func NewGrabChain() *GrabChain {
	return &GrabChain{stacks: map[any][]*Popup{}}
}

func (g *GrabChain) push(seatID any, p *Popup) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stack := g.stacks[seatID]
	if len(stack) == 0 {
		// Starting a new chain: the parent must not be a popup, since
		// a popup parent would have to be the top of this seat's
		// chain. The wiring layer validates the triggering event
		// serial against a recent implicit grab.
		if parent := p.Parent(); parent != nil && parent.HasRole(surface.RoleXDGPopup) {
			return ErrNotTopOfChain
		}
		g.stacks[seatID] = []*Popup{p}
		return nil
	}
	top := stack[len(stack)-1]
	if top.wl != p.Parent() {
		return ErrNotTopOfChain
	}
	g.stacks[seatID] = append(stack, p)
	return nil
}

func (g *GrabChain) pop(seatID any, p *Popup) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stack := g.stacks[seatID]
	if len(stack) == 0 || stack[len(stack)-1] != p {
		return ErrNotTopOfChain
	}
	g.stacks[seatID] = stack[:len(stack)-1]
	return nil
}

// Top returns the popup currently at the top of seatID's chain, or nil.
func (g *GrabChain) Top(seatID any) *Popup {
	g.mu.Lock()
	defer g.mu.Unlock()
	stack := g.stacks[seatID]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
