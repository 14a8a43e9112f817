package xdgshell

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
)

func TestPositionerUnconstrained(t *testing.T) {
	p := NewPositionerState()
	mustOK(t, p.SetSize(200, 200))
	mustOK(t, p.SetAnchorRect(100, 100, 50, 50))
	p.SetAnchor(AnchorBottomRight)
	p.SetGravity(GravityBottomRight)

	got := p.Resolve(region.Rect{X: 0, Y: 0, W: 800, H: 600})
	want := region.Rect{X: 150, Y: 150, W: 200, H: 200}
	if got != want {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}
}

func TestPositionerNoConstraintBitsOverflowsUnadjusted(t *testing.T) {
	p := NewPositionerState()
	mustOK(t, p.SetSize(200, 200))
	mustOK(t, p.SetAnchorRect(700, 500, 50, 50))
	p.SetAnchor(AnchorBottomRight)
	p.SetGravity(GravityBottomRight)
	// No constraint adjustment bits set.

	got := p.Resolve(region.Rect{X: 0, Y: 0, W: 800, H: 600})
	want := region.Rect{X: 750, Y: 550, W: 200, H: 200}
	if got != want {
		t.Fatalf("Resolve = %v, want %v (unadjusted overflow)", got, want)
	}
}

// TestPositionerFlipScenario reproduces the documented popup-flip scenario:
// a parent toplevel at (0,0) sized 800x600, positioner size 200x200,
// anchor_rect (700,500,50,50), anchor and gravity both bottom-right,
// constraint flip-x|flip-y. The unflipped placement overflows both axes;
// flipping both yields (550,350,200,200).
func TestPositionerFlipScenario(t *testing.T) {
	p := NewPositionerState()
	mustOK(t, p.SetSize(200, 200))
	mustOK(t, p.SetAnchorRect(700, 500, 50, 50))
	p.SetAnchor(AnchorBottomRight)
	p.SetGravity(GravityBottomRight)
	p.SetConstraintAdjustment(ConstraintFlipX | ConstraintFlipY)

	got := p.Resolve(region.Rect{X: 0, Y: 0, W: 800, H: 600})
	want := region.Rect{X: 550, Y: 350, W: 200, H: 200}
	if got != want {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}
}

func TestPositionerSlideKeepsSize(t *testing.T) {
	p := NewPositionerState()
	mustOK(t, p.SetSize(200, 200))
	mustOK(t, p.SetAnchorRect(700, 500, 50, 50))
	p.SetAnchor(AnchorBottomRight)
	p.SetGravity(GravityBottomRight)
	p.SetConstraintAdjustment(ConstraintSlideX | ConstraintSlideY)

	got := p.Resolve(region.Rect{X: 0, Y: 0, W: 800, H: 600})
	if got.W != 200 || got.H != 200 {
		t.Fatalf("slide changed size: %v", got)
	}
	if got.Right() > 800 || got.Bottom() > 600 {
		t.Fatalf("slide did not bring rect into containment: %v", got)
	}
}

func TestPositionerResizeShrinksToFit(t *testing.T) {
	p := NewPositionerState()
	mustOK(t, p.SetSize(200, 200))
	mustOK(t, p.SetAnchorRect(700, 500, 50, 50))
	p.SetAnchor(AnchorBottomRight)
	p.SetGravity(GravityBottomRight)
	p.SetConstraintAdjustment(ConstraintResizeX | ConstraintResizeY)

	got := p.Resolve(region.Rect{X: 0, Y: 0, W: 800, H: 600})
	if got.Right() > 800 || got.Bottom() > 600 {
		t.Fatalf("resize did not clip to containment: %v", got)
	}
	if got.X != 750 || got.Y != 550 {
		t.Fatalf("resize should not move the unclipped edge: %v", got)
	}
}

func TestPositionerInvalidSize(t *testing.T) {
	p := NewPositionerState()
	if err := p.SetSize(0, 10); err != ErrInvalidSize {
		t.Fatalf("SetSize(0,10) = %v, want ErrInvalidSize", err)
	}
	if err := p.SetAnchorRect(0, 0, -1, 10); err != ErrInvalidSize {
		t.Fatalf("SetAnchorRect with negative width = %v, want ErrInvalidSize", err)
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
