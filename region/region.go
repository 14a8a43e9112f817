// Package region implements axis-aligned rectangle regions over int32
// coordinates, as used for Wayland opaque regions, input regions, and
// surface/buffer damage. Construction is add/subtract; subtraction uses
// exact rectangle-set arithmetic so damage and occlusion computations never
// under-report.
package region

// Rect is an axis-aligned rectangle in some coordinate space (surface,
// buffer, or output — callers track which). Width and Height are taken to
// be >= 0; a Rect with zero area is considered empty.
type Rect struct {
	X, Y, W, H int32
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the exclusive right edge (X + W).
func (r Rect) Right() int32 { return r.X + r.W }

// Bottom returns the exclusive bottom edge (Y + H).
func (r Rect) Bottom() int32 { return r.Y + r.H }

// Contains reports whether the point (x, y) lies within r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether r and other share any area.
func (r Rect) Overlaps(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersect returns the overlapping area of r and other. The result is
// empty if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max32(r.X, other.X), max32(r.Y, other.Y)
	x1, y1 := min32(r.Right(), other.Right()), min32(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy int32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Union returns the smallest rectangle containing both r and other. Unlike
// Region.Add, this merges the two bounding boxes rather than keeping them
// as separate pieces — used for accumulating a bounding box, not an exact
// shape.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0, y0 := min32(r.X, other.X), min32(r.Y, other.Y)
	x1, y1 := max32(r.Right(), other.Right()), max32(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Region is a set of axis-aligned rectangles. The rectangles may overlap;
// normalization (merging adjacent/overlapping pieces into fewer rects) is
// never required for correctness, only subtraction must be exact.
type Region struct {
	rects []Rect
}

// New returns a Region containing the given rectangles, discarding any
// that are empty.
func New(rects ...Rect) Region {
	var reg Region
	reg.Add(rects...)
	return reg
}

// Rects returns the region's rectangles. The slice is owned by the
// caller; the Region is not aliased by it.
func (reg Region) Rects() []Rect {
	out := make([]Rect, len(reg.rects))
	copy(out, reg.rects)
	return out
}

// IsEmpty reports whether the region covers no area.
func (reg Region) IsEmpty() bool {
	return len(reg.rects) == 0
}

// Add appends rectangles to the region.
func (reg *Region) Add(rects ...Rect) {
	for _, r := range rects {
		if !r.Empty() {
			reg.rects = append(reg.rects, r)
		}
	}
}

// Subtract returns a new Region containing reg minus other, using exact
// rectangle-set arithmetic: every piece of reg not covered by any
// rectangle in other is retained, split as needed.
func (reg Region) Subtract(other Region) Region {
	pieces := append([]Rect(nil), reg.rects...)
	for _, cut := range other.rects {
		var next []Rect
		for _, p := range pieces {
			next = append(next, subtractOne(p, cut)...)
		}
		pieces = next
	}
	return Region{rects: pieces}
}

// Bounds returns the smallest rectangle enclosing the whole region.
func (reg Region) Bounds() Rect {
	var b Rect
	for _, r := range reg.rects {
		b = b.Union(r)
	}
	return b
}

// Translate returns a region with every rectangle shifted by (dx, dy).
func (reg Region) Translate(dx, dy int32) Region {
	out := make([]Rect, len(reg.rects))
	for i, r := range reg.rects {
		out[i] = r.Translate(dx, dy)
	}
	return Region{rects: out}
}

// Intersect returns a region containing only the parts of reg that overlap
// other, computed as the pairwise intersection of their rectangles; the
// resulting pieces may overlap where the input rectangles do.
func (reg Region) Intersect(other Region) Region {
	var out []Rect
	for _, r := range reg.rects {
		for _, o := range other.rects {
			if piece := r.Intersect(o); !piece.Empty() {
				out = append(out, piece)
			}
		}
	}
	return Region{rects: out}
}

// subtractOne splits rect p by removing the area covered by cut, returning
// up to four non-overlapping rectangles that together cover p \ cut.
// Layout (when cut fully crosses the relevant axis is handled by clamping):
//
//	+-------------------+
//	|        top        |
//	+------+------+-----+
//	| left | cut  |right|
//	+------+------+-----+
//	|       bottom      |
//	+-------------------+
func subtractOne(p, cut Rect) []Rect {
	if !p.Overlaps(cut) {
		return []Rect{p}
	}

	var out []Rect

	// Top strip: full width of p, above the overlap.
	if cut.Y > p.Y {
		out = append(out, Rect{X: p.X, Y: p.Y, W: p.W, H: cut.Y - p.Y})
	}
	// Bottom strip: full width of p, below the overlap.
	if cut.Bottom() < p.Bottom() {
		out = append(out, Rect{X: p.X, Y: cut.Bottom(), W: p.W, H: p.Bottom() - cut.Bottom()})
	}

	// Middle band: the vertical range shared by p and cut, minus left/right
	// strips not covered by cut.
	midY0, midY1 := max32(p.Y, cut.Y), min32(p.Bottom(), cut.Bottom())
	if midY1 > midY0 {
		if cut.X > p.X {
			out = append(out, Rect{X: p.X, Y: midY0, W: cut.X - p.X, H: midY1 - midY0})
		}
		if cut.Right() < p.Right() {
			out = append(out, Rect{X: cut.Right(), Y: midY0, W: p.Right() - cut.Right(), H: midY1 - midY0})
		}
	}

	return out
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
