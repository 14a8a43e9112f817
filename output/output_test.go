package output

import (
	"testing"

	"github.com/gogpu/wlcompositor/surface"
)

type fakeClient struct {
	geometries int
	modes      []Mode
	scales     []int32
	dones      int
}

func (c *fakeClient) Geometry(o *Output) { c.geometries++ }
func (c *fakeClient) Mode(m Mode)        { c.modes = append(c.modes, m) }
func (c *fakeClient) Scale(s int32)      { c.scales = append(c.scales, s) }
func (c *fakeClient) Done()              { c.dones++ }

func TestAddClientSendsInitialBurst(t *testing.T) {
	o := New("eDP-1")
	mode := Mode{Width: 1920, Height: 1080, RefreshMilliHz: 60000, Preferred: true}
	o.AddMode(mode)
	o.SetScale(2)

	c := &fakeClient{}
	o.AddClient(c)

	if c.geometries != 1 {
		t.Fatalf("expected one geometry event, got %d", c.geometries)
	}
	if len(c.modes) != 1 || c.modes[0] != mode {
		t.Fatalf("expected initial mode event, got %v", c.modes)
	}
	if len(c.scales) != 1 || c.scales[0] != 2 {
		t.Fatalf("expected initial scale event of 2, got %v", c.scales)
	}
	if c.dones != 1 {
		t.Fatalf("expected one done event, got %d", c.dones)
	}
}

func TestSetModeNotifiesBoundClients(t *testing.T) {
	o := New("eDP-1")
	low := Mode{Width: 1280, Height: 720}
	high := Mode{Width: 1920, Height: 1080}
	o.AddMode(low)
	o.AddMode(high)

	c := &fakeClient{}
	o.AddClient(c)
	c.modes = nil
	c.dones = 0

	if err := o.SetMode(high); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if len(c.modes) != 1 || c.modes[0] != high {
		t.Fatalf("expected mode-change event for high, got %v", c.modes)
	}
	if c.dones != 1 {
		t.Fatalf("expected a done event after mode change")
	}
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	o := New("eDP-1")
	o.AddMode(Mode{Width: 1280, Height: 720})
	if err := o.SetMode(Mode{Width: 999, Height: 999}); err != ErrNoModes {
		t.Fatalf("SetMode unknown = %v, want ErrNoModes", err)
	}
}

func TestPixelSizeAppliesScaleAndTransform(t *testing.T) {
	o := New("eDP-1")
	o.AddMode(Mode{Width: 1920, Height: 1080})
	o.SetScale(2)

	w, h := o.PixelSize()
	if w != 960 || h != 540 {
		t.Fatalf("PixelSize with scale 2 = (%d,%d), want (960,540)", w, h)
	}

	o.SetTransform(surface.Transform90)
	w, h = o.PixelSize()
	if w != 540 || h != 960 {
		t.Fatalf("PixelSize with 90-deg transform = (%d,%d), want (540,960)", w, h)
	}
}

func TestPixelSizeWithNoModeIsZero(t *testing.T) {
	o := New("eDP-1")
	w, h := o.PixelSize()
	if w != 0 || h != 0 {
		t.Fatalf("expected (0,0) with no mode selected, got (%d,%d)", w, h)
	}
}

func TestRemoveClientStopsNotifications(t *testing.T) {
	o := New("eDP-1")
	o.AddMode(Mode{Width: 1920, Height: 1080})
	c := &fakeClient{}
	o.AddClient(c)
	o.RemoveClient(c)

	c.scales = nil
	o.SetScale(3)
	if len(c.scales) != 0 {
		t.Fatalf("removed client should not be notified")
	}
}
