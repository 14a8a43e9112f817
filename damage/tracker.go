package damage

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
)

// elementRecord is what Tracker remembers about one element from its
// last appearance in a render pass, used to detect appear/move/z-order
// changes that force full-bbox damage regardless of DamageSince.
type elementRecord struct {
	bbox   region.Rect
	zIndex int
	commit uint64
}

// rendererState is the damage history for one (output, renderer
// instance) pair.
type rendererState struct {
	ring      []region.Region // ring[0] is the most recently recorded pass
	maxAge    int
	lastState map[any]elementRecord
}

// Tracker owns damage history across render passes, keyed by an
// opaque renderer-instance id (spec.md: "per-output state keyed by
// renderer instance id"). Each distinct rendererID gets its own damage
// ring and element history; wlcompositor.Display keeps one Tracker and
// passes each output as its rendererID.
type Tracker struct {
	mu       sync.Mutex
	maxAge   int
	perState map[any]*rendererState
}

// NewTracker returns a Tracker retaining up to maxAge past damage
// rings per renderer instance.
func NewTracker(maxAge int) *Tracker {
	return &Tracker{maxAge: maxAge, perState: make(map[any]*rendererState)}
}

func (t *Tracker) stateFor(rendererID any) *rendererState {
	t.mu.Lock()
	defer t.mu.Unlock()
	rs, ok := t.perState[rendererID]
	if !ok {
		rs = &rendererState{maxAge: t.maxAge, lastState: make(map[any]elementRecord)}
		t.perState[rendererID] = rs
	}
	return rs
}

// RenderOutputResult is the outcome of one RenderPass.
type RenderOutputResult struct {
	DrawList []DrawEntry
	Damage   region.Region
	Rendered bool
}

// RenderPass runs one render pass against elements (bottom-to-top) for
// the renderer instance rendererID, producing a draw list and the
// pass's total damage. age is the backing buffer's age (0 means
// "unknown content", forcing full-output damage); outputBbox bounds
// the output in the same physical coordinates as every Element's
// Geometry.
func (t *Tracker) RenderPass(rendererID any, elements []Element, age int, outputBbox region.Rect) RenderOutputResult {
	rs := t.stateFor(rendererID)

	perElementDamage := make([]region.Region, len(elements))
	nextState := make(map[any]elementRecord, len(elements))

	t.mu.Lock()
	for i, el := range elements {
		id := el.ID()
		prev, seen := rs.lastState[id]
		bbox := el.Geometry()

		var d region.Region
		switch {
		case !seen:
			d = region.New(bbox)
		case prev.bbox != bbox:
			d = region.New(bbox)
		case prev.zIndex != i:
			d = region.New(bbox)
		default:
			inc, ok := el.DamageSince(prev.commit)
			if !ok {
				d = region.New(bbox)
			} else {
				d = inc
			}
		}
		perElementDamage[i] = d
		nextState[id] = elementRecord{bbox: bbox, zIndex: i, commit: el.CommitCounter()}
	}

	var thisPassDamage region.Region
	for _, d := range perElementDamage {
		thisPassDamage.Add(d.Rects()...)
	}
	thisPassDamage = clipToOutput(thisPassDamage, outputBbox)

	var accumulated region.Region
	if age <= 0 || age > len(rs.ring) {
		// Unknown or never-recorded buffer content: nothing short of
		// the whole output can be safely assumed correct.
		accumulated = region.New(outputBbox)
	} else {
		accumulated.Add(thisPassDamage.Rects()...)
		for i := 0; i < age && i < len(rs.ring); i++ {
			accumulated.Add(rs.ring[i].Rects()...)
		}
		accumulated = clipToOutput(accumulated, outputBbox)
	}

	rs.ring = append([]region.Region{thisPassDamage}, rs.ring...)
	if len(rs.ring) > rs.maxAge {
		rs.ring = rs.ring[:rs.maxAge]
	}
	rs.lastState = nextState
	t.mu.Unlock()

	drawList := buildDrawList(elements, accumulated, outputBbox)

	return RenderOutputResult{
		DrawList: drawList,
		Damage:   accumulated,
		Rendered: len(drawList) > 0,
	}
}

// buildDrawList applies opaque occlusion top-to-bottom, then returns
// the surviving entries bottom-to-top.
func buildDrawList(elements []Element, accumulated region.Region, outputBbox region.Rect) []DrawEntry {
	remaining := accumulated
	var covered region.Region

	var reversed []DrawEntry
	for i := len(elements) - 1; i >= 0; i-- {
		el := elements[i]
		geo := el.Geometry()
		if fullyCovers(covered, geo) {
			continue
		}

		elemDamage := intersectRegionRect(remaining, geo)
		state := Skipped
		if !elemDamage.IsEmpty() {
			state = Rendering
			if zc, ok := el.(ZeroCopyCapable); ok && zc.ZeroCopyEligible() {
				state = ZeroCopy
			}
		}

		reversed = append(reversed, DrawEntry{
			Element: el,
			Src:     el.SourceRect(),
			Dst:     geo,
			Damage:  elemDamage,
			State:   state,
		})

		covered.Add(el.OpaqueRegions().Rects()...)
	}

	out := make([]DrawEntry, len(reversed))
	for i, e := range reversed {
		out[len(reversed)-1-i] = e
	}
	return out
}

func clipToOutput(r region.Region, outputBbox region.Rect) region.Region {
	var out region.Region
	for _, rect := range r.Rects() {
		clipped := rect.Intersect(outputBbox)
		if !clipped.Empty() {
			out.Add(clipped)
		}
	}
	return out
}

func intersectRegionRect(r region.Region, rect region.Rect) region.Region {
	var out region.Region
	for _, piece := range r.Rects() {
		clipped := piece.Intersect(rect)
		if !clipped.Empty() {
			out.Add(clipped)
		}
	}
	return out
}

// fullyCovers reports whether covered entirely contains rect, i.e.
// rect minus covered is empty.
func fullyCovers(covered region.Region, rect region.Rect) bool {
	if rect.Empty() {
		return true
	}
	remainder := region.New(rect).Subtract(covered)
	return remainder.IsEmpty()
}
