package renderer

import (
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// Color is a straight-alpha RGBA color in the [0, 1] range.
type Color struct {
	R, G, B, A float64
}

// ShmFormat is a shared-memory buffer pixel format, as named on a
// wl_shm.format event.
type ShmFormat uint32

const (
	ShmFormatARGB8888 ShmFormat = iota
	ShmFormatXRGB8888
	ShmFormatABGR8888
	ShmFormatXBGR8888
)

// SyncPoint is the result of Frame.Finish: either already signaled, or a
// fence the caller may wait on before reusing the buffer it targets. The
// core never blocks on Wait itself; only a caller handing buffers back
// to clients need to.
type SyncPoint interface {
	// Signaled reports whether the GPU work this point represents has
	// already completed.
	Signaled() bool
	// Wait blocks until the GPU work has completed.
	Wait()
}

// Texture is an imported or rendered GPU image, opaque to callers beyond
// its dimensions.
type Texture interface {
	Width() int
	Height() int
}

// Renderer begins frames and imports client buffers into Textures. A
// Renderer renders one frame at a time; wlcompositor.Display drives a
// single Renderer for every output in turn.
type Renderer interface {
	// BeginFrame starts a new frame targeting an output of the given
	// physical size, pre-rotated by transform. The returned Frame is
	// valid until Finish is called on it.
	BeginFrame(size Size, transform surface.Transform) (Frame, error)

	// ImportSHM uploads a shared-memory buffer's pixels as a Texture.
	// damage restricts the upload to the changed region when the
	// backend supports partial uploads; a nil damage re-uploads the
	// whole buffer.
	ImportSHM(pixels []byte, width, height int, format ShmFormat, stride int, damage region.Region) (Texture, error)

	// ImportDMABuf imports a dmabuf-backed buffer as a Texture. Not every
	// backend can do this; callers must check DMABufCapable first.
	ImportDMABuf(buf DMABuf, damage region.Region) (Texture, error)

	// DMABufCapable reports whether ImportDMABuf is usable and, if so,
	// the dmabuf formats/modifiers it accepts.
	DMABufCapable() (formats []DMABufFormat, ok bool)
}

// Size is a physical pixel size.
type Size struct {
	Width, Height int
}

// DMABuf describes a dmabuf-backed client buffer: one or more planes,
// each a file descriptor plus offset/stride, tagged with a format and
// modifier.
type DMABuf struct {
	Width, Height int
	Format        uint32
	Modifier      uint64
	Planes        []DMABufPlane
}

// DMABufPlane is one plane of a DMABuf.
type DMABufPlane struct {
	FD     int
	Offset uint32
	Stride uint32
}

// DMABufFormat is one (format, modifier) pair a Renderer's ImportDMABuf
// can accept, as advertised by the linux-dmabuf format/modifier events.
type DMABufFormat struct {
	Format   uint32
	Modifier uint64
}

// Frame is the draw surface for one BeginFrame call. Every draw call
// takes its own damage region so the backend can scissor work to only
// the pixels that actually need repainting.
type Frame interface {
	// Clear fills damage (in the frame's physical coordinate space) with
	// color.
	Clear(color Color, damage region.Region)

	// DrawTextured samples srcBufferRect out of texture (in the
	// texture's own pixel coordinates) and draws it into dstPhysicalRect
	// (in the frame's physical coordinate space), clipped to damage,
	// applying transform to the sample and alpha to the result.
	DrawTextured(texture Texture, srcBufferRect region.Rect, dstPhysicalRect region.Rect, damage region.Region, transform surface.Transform, alpha float64)

	// DrawSolid fills dstRect, clipped to damage, with color.
	DrawSolid(color Color, dstRect region.Rect, damage region.Region)

	// Finish submits the frame's accumulated draw calls and returns a
	// SyncPoint for the work.
	Finish() (SyncPoint, error)
}
