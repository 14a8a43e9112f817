package region

import "testing"

func area(rects []Rect) int64 {
	var total int64
	for _, r := range rects {
		total += int64(r.W) * int64(r.H)
	}
	return total
}

func TestSubtractSelfIsEmpty(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	got := a.Subtract(a)
	if !got.IsEmpty() {
		t.Fatalf("subtract(A, A) = %v, want empty", got.Rects())
	}
}

func TestSubtractEmptyIsIdentity(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	got := a.Subtract(Region{})
	if area(got.Rects()) != area(a.Rects()) {
		t.Fatalf("subtract(A, empty) area = %d, want %d", area(got.Rects()), area(a.Rects()))
	}
}

func TestSubtractNoOverlapIsIdentity(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	b := New(Rect{100, 100, 5, 5})
	got := a.Subtract(b)
	if area(got.Rects()) != 100 {
		t.Fatalf("area = %d, want 100", area(got.Rects()))
	}
}

func TestSubtractCenterHole(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	hole := New(Rect{3, 3, 4, 4})
	got := a.Subtract(hole)
	if want := int64(100 - 16); area(got.Rects()) != want {
		t.Fatalf("area = %d, want %d", area(got.Rects()), want)
	}
	// No resulting piece should overlap the hole.
	for _, r := range got.Rects() {
		if r.Overlaps(Rect{3, 3, 4, 4}) {
			t.Fatalf("piece %v overlaps the cut rectangle", r)
		}
	}
}

func TestSubtractOverlappingEdge(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	cut := New(Rect{5, -5, 10, 20}) // cuts clean through, right half removed
	got := a.Subtract(cut)
	if want := int64(50); area(got.Rects()) != want {
		t.Fatalf("area = %d, want %d", area(got.Rects()), want)
	}
}

func TestIntersect(t *testing.T) {
	a := New(Rect{0, 0, 10, 10})
	b := New(Rect{5, 5, 10, 10})
	got := a.Intersect(b)
	if want := int64(25); area(got.Rects()) != want {
		t.Fatalf("intersect area = %d, want %d", area(got.Rects()), want)
	}
}

func TestBounds(t *testing.T) {
	reg := New(Rect{0, 0, 2, 2}, Rect{10, 10, 2, 2})
	b := reg.Bounds()
	want := Rect{0, 0, 12, 12}
	if b != want {
		t.Fatalf("Bounds() = %v, want %v", b, want)
	}
}

func TestTranslate(t *testing.T) {
	reg := New(Rect{0, 0, 2, 2})
	out := reg.Translate(3, 4)
	want := Rect{3, 4, 2, 2}
	if out.Rects()[0] != want {
		t.Fatalf("Translate() = %v, want %v", out.Rects()[0], want)
	}
}

func TestMultiCutSubtraction(t *testing.T) {
	a := New(Rect{0, 0, 100, 100})
	cuts := New(Rect{0, 0, 50, 50}, Rect{50, 50, 50, 50})
	got := a.Subtract(cuts)
	if want := int64(10000 - 2500 - 2500); area(got.Rects()) != want {
		t.Fatalf("area = %d, want %d", area(got.Rects()), want)
	}
}
