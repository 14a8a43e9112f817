package renderer

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
)

func TestClampRectsNoDamageMeansWholeDst(t *testing.T) {
	dst := region.Rect{X: 10, Y: 10, W: 20, H: 20}
	got := clampRects(dst, region.Region{}, 100, 100)
	if len(got) != 1 || got[0] != dst {
		t.Fatalf("expected [%v], got %v", dst, got)
	}
}

func TestClampRectsClipsToFrameBounds(t *testing.T) {
	dst := region.Rect{X: -10, Y: -10, W: 30, H: 30}
	got := clampRects(dst, region.Region{}, 100, 100)
	if len(got) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(got))
	}
	want := region.Rect{X: 0, Y: 0, W: 20, H: 20}
	if got[0] != want {
		t.Fatalf("got %v, want %v", got[0], want)
	}
}

func TestClampRectsIntersectsEachDamageRectWithDst(t *testing.T) {
	dst := region.Rect{X: 0, Y: 0, W: 50, H: 50}
	damage := region.New(
		region.Rect{X: 10, Y: 10, W: 10, H: 10},
		region.Rect{X: 200, Y: 200, W: 10, H: 10}, // entirely outside dst
	)
	got := clampRects(dst, damage, 1000, 1000)
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving rect, got %d: %v", len(got), got)
	}
	want := region.Rect{X: 10, Y: 10, W: 10, H: 10}
	if got[0] != want {
		t.Fatalf("got %v, want %v", got[0], want)
	}
}

func TestClampRectsEmptyDstProducesNothing(t *testing.T) {
	got := clampRects(region.Rect{X: 0, Y: 0, W: 0, H: 0}, region.Region{}, 100, 100)
	if len(got) != 0 {
		t.Fatalf("expected no rects for an empty dst, got %v", got)
	}
}

// compile-time assertions that the concrete types satisfy the abstract
// contract without needing a live GPU device to construct them.
var (
	_ Renderer = (*WGPURenderer)(nil)
	_ Frame    = (*wgpuFrame)(nil)
	_ Texture  = (*wgpuTexture)(nil)
	_ SyncPoint = wgpuSyncPoint{}
)
