package renderer

import (
	"fmt"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// wgpuFrame implements Frame. Every draw call opens its own render pass
// with LoadOp: Load (never Clear) against the renderer's offscreen
// target, so pixels outside the call's damage are left exactly as the
// previous frame rendered them — damage-scissored drawing is the whole
// point of taking an explicit damage region per call.
type wgpuFrame struct {
	renderer  *WGPURenderer
	encoder   *wgpu.CommandEncoder
	view      *wgpu.TextureView
	transform surface.Transform
	width     int32
	height    int32
	finished  bool
}

func (f *wgpuFrame) loadPass() *wgpu.RenderPassEncoder {
	return f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{View: f.view, LoadOp: wgpu.LoadOpLoad, StoreOp: wgpu.StoreOpStore},
		},
	})
}

// Clear implements Frame by drawing solid color over every rect in
// damage; the renderer never issues a whole-attachment LoadOp: Clear,
// since that would erase undamaged content this frame is not asked to
// repaint.
func (f *wgpuFrame) Clear(color Color, damage region.Region) {
	f.DrawSolid(color, region.Rect{X: 0, Y: 0, W: f.width, H: f.height}, damage)
}

// DrawSolid implements Frame.
func (f *wgpuFrame) DrawSolid(color Color, dstRect region.Rect, damage region.Region) {
	r := f.renderer
	for _, rect := range clampRects(dstRect, damage, f.width, f.height) {
		ndc := ndcRect(rect.X, rect.Y, rect.W, rect.H, f.width, f.height)

		uniforms := solidUniforms{ndcRect: ndc, color: [4]float32{
			float32(color.R), float32(color.G), float32(color.B), float32(color.A),
		}}
		ubuf := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Usage:    wgpu.BufferUsageUniform,
			Contents: encodeSolidUniforms(uniforms),
		})

		bindGroup := r.device.CreateBindGroupSimple(r.solidPipeline, 0, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ubuf},
		})

		pass := f.loadPass()
		pass.SetScissorRect(uint32(rect.X), uint32(rect.Y), uint32(rect.W), uint32(rect.H))
		pass.SetPipeline(r.solidPipeline)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
		pass.End()
		pass.Release()

		bindGroup.Release()
		ubuf.Release()
	}
}

// DrawTextured implements Frame.
func (f *wgpuFrame) DrawTextured(tex Texture, srcBufferRect, dstPhysicalRect region.Rect, damage region.Region, transform surface.Transform, alpha float64) {
	wt, ok := tex.(*wgpuTexture)
	if !ok || wt.view == nil {
		return
	}
	r := f.renderer

	u0 := float32(srcBufferRect.X) / float32(wt.width)
	v0 := float32(srcBufferRect.Y) / float32(wt.height)
	u1 := float32(srcBufferRect.Right()) / float32(wt.width)
	v1 := float32(srcBufferRect.Bottom()) / float32(wt.height)
	uvs := cornerUVs(u0, v0, u1, v1, transform)

	for _, rect := range clampRects(dstPhysicalRect, damage, f.width, f.height) {
		ndc := ndcRect(rect.X, rect.Y, rect.W, rect.H, f.width, f.height)

		uniforms := texturedUniforms{ndcRect: ndc, uv: uvs, alpha: float32(alpha)}
		ubuf := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Usage:    wgpu.BufferUsageUniform,
			Contents: encodeTexturedUniforms(uniforms),
		})

		uniformGroup := r.device.CreateBindGroupSimple(r.texturedPipeline, 0, []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ubuf},
		})
		textureGroup := r.device.CreateBindGroupSimple(r.texturedPipeline, 1, []wgpu.BindGroupEntry{
			{Binding: 0, Sampler: r.sampler},
			{Binding: 1, TextureView: wt.view},
		})

		pass := f.loadPass()
		pass.SetScissorRect(uint32(rect.X), uint32(rect.Y), uint32(rect.W), uint32(rect.H))
		pass.SetPipeline(r.texturedPipeline)
		pass.SetBindGroup(0, uniformGroup, nil)
		pass.SetBindGroup(1, textureGroup, nil)
		pass.Draw(6, 1, 0, 0)
		pass.End()
		pass.Release()

		textureGroup.Release()
		uniformGroup.Release()
		ubuf.Release()
	}
}

// Finish implements Frame.
func (f *wgpuFrame) Finish() (SyncPoint, error) {
	if f.finished {
		return nil, fmt.Errorf("renderer: frame already finished")
	}
	f.finished = true

	commands := f.encoder.Finish(nil)
	f.encoder.Release()
	f.renderer.queue.Submit(commands)
	commands.Release()

	return wgpuSyncPoint{}, nil
}

// clampRects intersects dstRect with every rect of damage and with the
// frame bounds, dropping empty results. A nil/empty damage is treated as
// "the whole of dstRect", matching spec.md's convention that an absent
// damage region means "redraw it all".
func clampRects(dstRect region.Rect, damage region.Region, frameW, frameH int32) []region.Rect {
	bounds := region.Rect{X: 0, Y: 0, W: frameW, H: frameH}.Intersect(dstRect)
	if bounds.Empty() {
		return nil
	}

	rects := damage.Rects()
	if len(rects) == 0 {
		return []region.Rect{bounds}
	}

	out := make([]region.Rect, 0, len(rects))
	for _, d := range rects {
		clipped := d.Intersect(bounds)
		if !clipped.Empty() {
			out = append(out, clipped)
		}
	}
	return out
}

type solidUniforms struct {
	ndcRect [4]float32
	color   [4]float32
}

type texturedUniforms struct {
	ndcRect [4]float32
	uv      uv4
	alpha   float32
}

// encodeSolidUniforms/encodeTexturedUniforms pack the uniform structs
// into the byte layout the WGSL side expects (tightly packed float32s;
// WGSL's default uniform alignment rules apply beyond what these simple
// structs need, since every field here is already a multiple of 16
// bytes or trails the struct).
func encodeSolidUniforms(u solidUniforms) []byte {
	buf := make([]byte, 0, 32)
	buf = appendFloats(buf, u.ndcRect[:])
	buf = appendFloats(buf, u.color[:])
	return buf
}

func encodeTexturedUniforms(u texturedUniforms) []byte {
	buf := make([]byte, 0, 64)
	buf = appendFloats(buf, u.ndcRect[:])
	for _, c := range u.uv {
		buf = appendFloats(buf, c[:])
	}
	buf = appendFloats(buf, []float32{u.alpha, 0, 0, 0})
	return buf
}

func appendFloats(buf []byte, vs []float32) []byte {
	for _, v := range vs {
		bits := math.Float32bits(v)
		buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return buf
}
