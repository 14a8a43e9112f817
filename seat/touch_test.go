package seat

import (
	"testing"

	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

type fakeTouchClient struct {
	id any

	downs   []int32
	ups     []int32
	motions []int32
	frames  int
	cancels int
}

func (c *fakeTouchClient) ClientID() any { return c.id }
func (c *fakeTouchClient) Down(s serial.Serial, surf *surface.Surface, id int32, x, y float64) {
	c.downs = append(c.downs, id)
}
func (c *fakeTouchClient) Up(s serial.Serial, id int32)      { c.ups = append(c.ups, id) }
func (c *fakeTouchClient) Motion(id int32, x, y float64, t uint32) {
	c.motions = append(c.motions, id)
}
func (c *fakeTouchClient) Frame()  { c.frames++ }
func (c *fakeTouchClient) Cancel() { c.cancels++ }

func TestTouchDownMotionUpRoutesByOwningClient(t *testing.T) {
	tc := NewTouch()
	a := &fakeTouchClient{id: "client-a"}
	b := &fakeTouchClient{id: "client-b"}
	tc.AddClient(a)
	tc.AddClient(b)

	surf := newTestSurface()
	tc.Down(serial.Serial(1), surf, "client-a", 0, 10, 10)
	if len(a.downs) != 1 || len(b.downs) != 0 {
		t.Fatalf("only owning client should receive down")
	}

	tc.Motion(0, 12, 12, 1000)
	if len(a.motions) != 1 || len(b.motions) != 0 {
		t.Fatalf("only owning client should receive motion")
	}

	tc.Up(serial.Serial(2), 0)
	if len(a.ups) != 1 || len(b.ups) != 0 {
		t.Fatalf("only owning client should receive up")
	}
	if tc.Active() {
		t.Fatalf("touch point should no longer be active after up")
	}
}

func TestTouchIndependentPointsToDifferentClients(t *testing.T) {
	tc := NewTouch()
	a := &fakeTouchClient{id: "client-a"}
	b := &fakeTouchClient{id: "client-b"}
	tc.AddClient(a)
	tc.AddClient(b)

	surf1 := newTestSurface()
	surf2 := newTestSurface()
	tc.Down(serial.Serial(1), surf1, "client-a", 0, 1, 1)
	tc.Down(serial.Serial(2), surf2, "client-b", 1, 2, 2)

	tc.Frame()
	if a.frames != 1 || b.frames != 1 {
		t.Fatalf("both clients have an active point, both should get frame")
	}

	tc.Up(serial.Serial(3), 0)
	tc.Frame()
	if a.frames != 1 {
		t.Fatalf("client a has no active point left, should not get a second frame")
	}
	if b.frames != 2 {
		t.Fatalf("client b still has an active point, should get a second frame")
	}
}

func TestTouchCancelClearsAllPointsAndNotifiesOwners(t *testing.T) {
	tc := NewTouch()
	a := &fakeTouchClient{id: "client-a"}
	tc.AddClient(a)
	surf := newTestSurface()
	tc.Down(serial.Serial(1), surf, "client-a", 0, 1, 1)

	tc.Cancel()
	if a.cancels != 1 {
		t.Fatalf("expected cancel notification")
	}
	if tc.Active() {
		t.Fatalf("expected no active points after cancel")
	}
}
