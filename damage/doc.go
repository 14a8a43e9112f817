// Package damage implements the per-output damage tracker: age-based
// damage accumulation, opaque occlusion, and draw-list production from
// an ordered list of render elements. It imports neither space nor
// renderer and uses surface only for its Transform type — it consumes
// the Element contract only, and the caller turns the resulting draw
// list into renderer.Frame calls.
package damage
