package seat

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

// TouchPoint tracks one active touch contact, identified by the
// wire-level touch id the client assigned it at down.
type TouchPoint struct {
	ID      int32
	Surface *surface.Surface
	Client  any
	X, Y    float64
}

// TouchClient is a per-client binding of wl_touch.
type TouchClient interface {
	ClientID() any
	Down(s serial.Serial, surf *surface.Surface, id int32, x, y float64)
	Up(s serial.Serial, id int32)
	Motion(id int32, x, y float64, time uint32)
	Frame()
	Cancel()
}

// Touch tracks one seat's active touch points. Each touch point is
// independent: a down establishes focus for that id, and every
// subsequent motion/up for the id routes to the client that owned the
// surface at down regardless of later pointer/keyboard focus changes.
type Touch struct {
	mu sync.Mutex

	clients []TouchClient
	points  map[int32]TouchPoint
}

// NewTouch returns a Touch with no active contacts.
func NewTouch() *Touch {
	return &Touch{points: make(map[int32]TouchPoint)}
}

// AddClient registers a per-client wl_touch binding.
func (tc *Touch) AddClient(c TouchClient) {
	tc.mu.Lock()
	tc.clients = append(tc.clients, c)
	tc.mu.Unlock()
}

// RemoveClient unregisters a previously added binding.
func (tc *Touch) RemoveClient(c TouchClient) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for i, v := range tc.clients {
		if v == c {
			tc.clients = append(tc.clients[:i], tc.clients[i+1:]...)
			return
		}
	}
}

func (tc *Touch) withClient(owner any, f func(c TouchClient)) {
	for _, c := range tc.clients {
		if c.ClientID() == owner {
			f(c)
		}
	}
}

// Down begins a new touch point on surf, owned by ownerClientID.
func (tc *Touch) Down(s serial.Serial, surf *surface.Surface, ownerClientID any, id int32, x, y float64) {
	tc.mu.Lock()
	tc.points[id] = TouchPoint{ID: id, Surface: surf, Client: ownerClientID, X: x, Y: y}
	owner := ownerClientID
	tc.mu.Unlock()

	tc.withClient(owner, func(c TouchClient) { c.Down(s, surf, id, x, y) })
}

// Motion reports a moved touch point, routed to whichever client owns
// its originating surface.
func (tc *Touch) Motion(id int32, x, y float64, time uint32) {
	tc.mu.Lock()
	pt, ok := tc.points[id]
	if ok {
		pt.X, pt.Y = x, y
		tc.points[id] = pt
	}
	tc.mu.Unlock()
	if !ok {
		return
	}
	tc.withClient(pt.Client, func(c TouchClient) { c.Motion(id, x, y, time) })
}

// Up ends a touch point.
func (tc *Touch) Up(s serial.Serial, id int32) {
	tc.mu.Lock()
	pt, ok := tc.points[id]
	delete(tc.points, id)
	tc.mu.Unlock()
	if !ok {
		return
	}
	tc.withClient(pt.Client, func(c TouchClient) { c.Up(s, id) })
}

// Frame ends the current batch of touch events for every client with
// at least one active point.
func (tc *Touch) Frame() {
	tc.mu.Lock()
	seen := make(map[any]bool)
	for _, pt := range tc.points {
		seen[pt.Client] = true
	}
	clients := append([]TouchClient(nil), tc.clients...)
	tc.mu.Unlock()

	for _, c := range clients {
		if seen[c.ClientID()] {
			c.Frame()
		}
	}
}

// Cancel aborts all active touch points, e.g. on a compositor-side
// gesture takeover, and notifies every client with an active point.
func (tc *Touch) Cancel() {
	tc.mu.Lock()
	seen := make(map[any]bool)
	for _, pt := range tc.points {
		seen[pt.Client] = true
	}
	tc.points = make(map[int32]TouchPoint)
	clients := append([]TouchClient(nil), tc.clients...)
	tc.mu.Unlock()

	for _, c := range clients {
		if seen[c.ClientID()] {
			c.Cancel()
		}
	}
}

// Active reports whether any touch point is currently down.
func (tc *Touch) Active() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.points) > 0
}
