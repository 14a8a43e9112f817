package renderer

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/surface"
)

// WGPURenderer is a Renderer backed by WebGPU, adapted from the
// instance/adapter/device/queue lifecycle of a single-window GPU
// renderer to one that renders into an offscreen color texture per
// output rather than presenting to a platform window surface — output
// scanout (DRM/KMS, a debug window, whatever) is left to a caller that
// reads the texture WGPURenderer's Frame rendered into.
type WGPURenderer struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format wgpu.TextureFormat

	solidPipeline    *wgpu.RenderPipeline
	texturedPipeline *wgpu.RenderPipeline
	sampler          *wgpu.Sampler

	// target is the offscreen color texture the next BeginFrame renders
	// into; resized in place when the requested Size changes.
	target     *wgpu.Texture
	targetView *wgpu.TextureView
	width      uint32
	height     uint32
}

// NewWGPURenderer creates and initializes a WGPURenderer: WebGPU
// instance, adapter, device and queue, plus the two built-in pipelines
// (solid fill, textured quad) used by every Frame it produces.
func NewWGPURenderer() (*WGPURenderer, error) {
	r := &WGPURenderer{format: wgpu.TextureFormatBGRA8Unorm}

	var err error
	r.instance, err = wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("renderer: create wgpu instance: %w", err)
	}

	r.adapter, err = r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}

	r.device, err = r.adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	r.queue = r.device.GetQueue()

	if err := r.initPipelines(); err != nil {
		return nil, err
	}

	r.sampler = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	})

	return r, nil
}

func (r *WGPURenderer) initPipelines() error {
	solidModule := r.device.CreateShaderModuleWGSL(solidShaderSource)
	if solidModule == nil {
		return fmt.Errorf("renderer: failed to compile solid shader")
	}
	defer solidModule.Release()

	r.solidPipeline = r.device.CreateRenderPipelineSimple(nil, solidModule, "vs_main", solidModule, "fs_main", r.format)
	if r.solidPipeline == nil {
		return fmt.Errorf("renderer: failed to create solid pipeline")
	}

	texModule := r.device.CreateShaderModuleWGSL(texturedShaderSource)
	if texModule == nil {
		return fmt.Errorf("renderer: failed to compile textured shader")
	}
	defer texModule.Release()

	r.texturedPipeline = r.device.CreateRenderPipelineSimple(nil, texModule, "vs_main", texModule, "fs_main", r.format)
	if r.texturedPipeline == nil {
		return fmt.Errorf("renderer: failed to create textured pipeline")
	}

	return nil
}

// resizeTarget (re)creates the offscreen render target if size changed.
func (r *WGPURenderer) resizeTarget(width, height uint32) error {
	if r.target != nil && r.width == width && r.height == height {
		return nil
	}
	if r.targetView != nil {
		r.targetView.Release()
		r.targetView = nil
	}
	if r.target != nil {
		r.target.Release()
		r.target = nil
	}

	target := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        r.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if target == nil {
		return fmt.Errorf("renderer: failed to create %dx%d render target", width, height)
	}
	view := target.CreateView(nil)
	if view == nil {
		target.Release()
		return fmt.Errorf("renderer: failed to create render target view")
	}

	r.target, r.targetView = target, view
	r.width, r.height = width, height
	return nil
}

// BeginFrame implements Renderer.
func (r *WGPURenderer) BeginFrame(size Size, transform surface.Transform) (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("renderer: invalid frame size %dx%d", size.Width, size.Height)
	}
	if err := r.resizeTarget(uint32(size.Width), uint32(size.Height)); err != nil {
		return nil, err
	}

	encoder := r.device.CreateCommandEncoder(nil)
	return &wgpuFrame{
		renderer:  r,
		encoder:   encoder,
		view:      r.targetView,
		transform: transform,
		width:     int32(size.Width),
		height:    int32(size.Height),
	}, nil
}

// ImportSHM implements Renderer, uploading pixels as a BGRA8 texture
// (RGBA8 for the ABGR/XBGR formats).
// damage is accepted for interface symmetry with a zero-copy-capable
// backend; this implementation always re-uploads the whole buffer, since
// the Go wgpu binding's WriteTexture call has no sub-image offset used
// here beyond the destination origin.
func (r *WGPURenderer) ImportSHM(pixels []byte, width, height int, format ShmFormat, stride int, damage region.Region) (Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer: invalid shm buffer size %dx%d", width, height)
	}
	expected := stride * height
	if len(pixels) < expected {
		return nil, fmt.Errorf("renderer: shm buffer too small: have %d bytes, want %d", len(pixels), expected)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tex := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        shmTextureFormat(format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if tex == nil {
		return nil, fmt.Errorf("renderer: failed to create shm texture")
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, MipLevel: 0, Origin: wgpu.Origin3D{}},
		pixels,
		&wgpu.ImageDataLayout{Offset: 0, BytesPerRow: uint32(stride), RowsPerImage: uint32(height)},
		&wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)

	view := tex.CreateView(nil)
	if view == nil {
		tex.Release()
		return nil, fmt.Errorf("renderer: failed to create shm texture view")
	}

	return &wgpuTexture{renderer: r, texture: tex, view: view, width: width, height: height}, nil
}

func shmTextureFormat(f ShmFormat) wgpu.TextureFormat {
	switch f {
	case ShmFormatABGR8888, ShmFormatXBGR8888:
		return wgpu.TextureFormatRGBA8Unorm
	default:
		return wgpu.TextureFormatBGRA8Unorm
	}
}

// ImportDMABuf implements Renderer. Direct dmabuf import requires a
// native wgpu extension this binding does not expose, so this backend
// never advertises the capability; callers must fall back to shm.
func (r *WGPURenderer) ImportDMABuf(buf DMABuf, damage region.Region) (Texture, error) {
	return nil, fmt.Errorf("renderer: dmabuf import not supported by this backend")
}

// DMABufCapable implements Renderer.
func (r *WGPURenderer) DMABufCapable() ([]DMABufFormat, bool) {
	return nil, false
}

// Destroy releases all GPU resources the renderer owns.
func (r *WGPURenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.solidPipeline != nil {
		r.solidPipeline.Release()
		r.solidPipeline = nil
	}
	if r.texturedPipeline != nil {
		r.texturedPipeline.Release()
		r.texturedPipeline = nil
	}
	if r.targetView != nil {
		r.targetView.Release()
		r.targetView = nil
	}
	if r.target != nil {
		r.target.Release()
		r.target = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}

// wgpuTexture implements Texture, wrapping an imported or rendered-to
// GPU texture and its sampling view.
type wgpuTexture struct {
	renderer *WGPURenderer
	texture  *wgpu.Texture
	view     *wgpu.TextureView
	width    int
	height   int
}

func (t *wgpuTexture) Width() int  { return t.width }
func (t *wgpuTexture) Height() int { return t.height }

// Release frees the texture's GPU resources. Safe to call once.
func (t *wgpuTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// wgpuSyncPoint is always pre-signaled: queue submission in this binding
// is ordered, and nothing downstream of Finish currently waits on a
// fence before reusing a buffer.
type wgpuSyncPoint struct{}

func (wgpuSyncPoint) Signaled() bool { return true }
func (wgpuSyncPoint) Wait()          {}
