package renderer

import "github.com/gogpu/wlcompositor/surface"

// uv4 is the four corners of a textured quad's source sample, in
// texture-space [0,1] units, ordered top-left, bottom-left, bottom-right,
// top-right (matching the NDC corner order the vertex shader walks).
type uv4 [4][2]float32

// cornerUVs maps srcBufferRect (already normalized to [0,1] of the
// texture's full size by the caller) through t, producing the corner
// assignment the textured-quad shader should sample. Wayland's output
// transform enum describes the transform already applied to the buffer
// relative to the compositor's idea of "upright"; sampling must apply
// the same transform to the UV corners so the drawn quad appears
// upright on screen.
func cornerUVs(u0, v0, u1, v1 float32, t surface.Transform) uv4 {
	tl := [2]float32{u0, v0}
	bl := [2]float32{u0, v1}
	br := [2]float32{u1, v1}
	tr := [2]float32{u1, v0}

	switch t {
	case surface.TransformNormal:
		return uv4{tl, bl, br, tr}
	case surface.Transform90:
		return uv4{bl, br, tr, tl}
	case surface.Transform180:
		return uv4{br, tr, tl, bl}
	case surface.Transform270:
		return uv4{tr, tl, bl, br}
	case surface.TransformFlipped:
		return uv4{tr, br, bl, tl}
	case surface.TransformFlipped90:
		return uv4{br, bl, tl, tr}
	case surface.TransformFlipped180:
		return uv4{bl, tl, tr, br}
	case surface.TransformFlipped270:
		return uv4{tl, tr, br, bl}
	default:
		return uv4{tl, bl, br, tr}
	}
}

// ndcRect converts a physical-pixel rect within a frame of size (fw, fh)
// into the (x, y, w, h) top-left-origin NDC form the shaders expect,
// where x/y is the top-left corner in NDC and w/h are NDC-space extents.
func ndcRect(x, y, w, h, fw, fh int32) [4]float32 {
	nx := float32(x)/float32(fw)*2 - 1
	ny := 1 - float32(y)/float32(fh)*2
	nw := float32(w) / float32(fw) * 2
	nh := float32(h) / float32(fh) * 2
	return [4]float32{nx, ny, nw, nh}
}
