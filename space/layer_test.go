package space

import "testing"

func TestArrangeAnchoredTopStretchesWidthAndReservesExclusiveZone(t *testing.T) {
	sp := New(nil)
	lm := NewLayerMap(&fakeOutput{id: "out0", w: 800, h: 600})

	bar := &LayerSurface{
		Window:        NewWindow(newElement(t, "bar", 0, 30)),
		Layer:         LayerTop,
		Anchor:        AnchorTop | AnchorLeft | AnchorRight,
		ExclusiveZone: 30,
		Height:        30,
	}
	lm.Add(bar)

	work := lm.Arrange(sp, Point{0, 0}, [2]int32{800, 600})

	loc := bar.Window.Location()
	if loc.X != 0 || loc.Y != 0 {
		t.Fatalf("bar location = %v, want (0,0)", loc)
	}
	if work.Y != 30 || work.H != 570 {
		t.Fatalf("work area = %v, want Y=30 H=570", work)
	}
	if bar.Window.ZBucket() != ZTop {
		t.Fatalf("bar should be stacked in ZTop")
	}
}

func TestArrangeReducesWorkAreaInDeclarationOrder(t *testing.T) {
	sp := New(nil)
	lm := NewLayerMap(&fakeOutput{id: "out0", w: 800, h: 600})

	top := &LayerSurface{
		Window: NewWindow(newElement(t, "top", 0, 20)), Layer: LayerTop,
		Anchor: AnchorTop | AnchorLeft | AnchorRight, ExclusiveZone: 20, Height: 20,
	}
	bottom := &LayerSurface{
		Window: NewWindow(newElement(t, "bottom", 0, 40)), Layer: LayerBottom,
		Anchor: AnchorBottom | AnchorLeft | AnchorRight, ExclusiveZone: 40, Height: 40,
	}
	lm.Add(top)
	lm.Add(bottom)

	work := lm.Arrange(sp, Point{0, 0}, [2]int32{800, 600})

	if work.Y != 20 || work.H != 600-20-40 {
		t.Fatalf("work area after both exclusive zones = %v", work)
	}
	bloc := bottom.Window.Location()
	if bloc.Y != 600-40 {
		t.Fatalf("bottom bar Y = %d, want %d", bloc.Y, 600-40)
	}
}

func TestArrangeCenteredUnanchoredSurface(t *testing.T) {
	sp := New(nil)
	lm := NewLayerMap(&fakeOutput{id: "out0", w: 800, h: 600})
	notif := &LayerSurface{
		Window: NewWindow(newElement(t, "notif", 200, 100)), Layer: LayerOverlay,
		Width: 200, Height: 100,
	}
	lm.Add(notif)
	lm.Arrange(sp, Point{0, 0}, [2]int32{800, 600})

	loc := notif.Window.Location()
	if loc.X != 300 || loc.Y != 250 {
		t.Fatalf("centered location = %v, want (300,250)", loc)
	}
}
