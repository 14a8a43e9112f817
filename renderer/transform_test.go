package renderer

import (
	"testing"

	"github.com/gogpu/wlcompositor/surface"
)

func TestCornerUVsNormalIsIdentity(t *testing.T) {
	got := cornerUVs(0, 0, 1, 1, surface.TransformNormal)
	want := uv4{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCornerUVs180IsOppositeCorners(t *testing.T) {
	got := cornerUVs(0, 0, 1, 1, surface.Transform180)
	want := uv4{{1, 1}, {1, 0}, {0, 0}, {0, 1}}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCornerUVsFlippedMirrorsNormal(t *testing.T) {
	normal := cornerUVs(0, 0, 1, 1, surface.TransformNormal)
	flipped := cornerUVs(0, 0, 1, 1, surface.TransformFlipped)
	if normal == flipped {
		t.Fatal("flipped transform produced the same corners as normal")
	}
}

func TestNdcRectCentersWholeFrameAtOrigin(t *testing.T) {
	got := ndcRect(0, 0, 100, 100, 100, 100)
	want := [4]float32{-1, 1, 2, 2}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNdcRectHalfFrameOffsetQuadrant(t *testing.T) {
	// A 50x50 rect in the bottom-right quadrant of a 100x100 frame.
	got := ndcRect(50, 50, 50, 50, 100, 100)
	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("expected top-left NDC at origin, got x=%v y=%v", got[0], got[1])
	}
	if got[2] != 1 || got[3] != 1 {
		t.Fatalf("expected NDC extents of 1, got w=%v h=%v", got[2], got[3])
	}
}
