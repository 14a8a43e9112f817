package wlcompositor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gogpu/wlcompositor/damage"
	"github.com/gogpu/wlcompositor/objreg"
	"github.com/gogpu/wlcompositor/output"
	"github.com/gogpu/wlcompositor/region"
	"github.com/gogpu/wlcompositor/renderer"
	"github.com/gogpu/wlcompositor/socket"
	"github.com/gogpu/wlcompositor/space"
	"github.com/gogpu/wlcompositor/surface"
)

// frameInterval paces the render loop at a fixed 60Hz; a caller driving
// real vblank timing would instead call renderFrame-equivalent logic
// itself, which this package does not currently expose per output.
const frameInterval = time.Second / 60

// Display is the compositor's event loop: it binds a socket, accepts
// clients, dispatches their decoded requests through Runtime, and
// drives one render pass per mapped output on every tick.
type Display struct {
	mu     sync.Mutex
	opts   Options
	logger *log.Logger

	Runtime  *objreg.Runtime
	Surfaces *surface.Store
	Roles    *surface.RoleRegistry
	Scene    *space.Space
	Tracker  *damage.Tracker

	renderer renderer.Renderer
	listener *socket.Listener

	outputs map[*output.Output]space.Point

	onRenderOutput func(out *output.Output, ctx *FrameContext)
	onOutputEnter  func(w *space.Window, out *output.Output)
	onOutputLeave  func(w *space.Window, out *output.Output)

	running      bool
	actions      chan func()
	nextClientID objreg.ClientID
}

// NewDisplay returns a Display ready to Run. r may be nil for a caller
// that drives Runtime, Scene and Tracker itself instead of calling Run;
// Run returns ErrNoRenderer when r is nil.
func NewDisplay(opts Options, r renderer.Renderer) *Display {
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultOptions().MaxAge
	}

	roles := surface.NewRoleRegistry()
	runtime := objreg.NewRuntime()
	logger := log.Default()
	runtime.SetLogger(logger)

	d := &Display{
		opts:     opts,
		logger:   logger,
		Runtime:  runtime,
		Surfaces: surface.NewStore(roles),
		Roles:    roles,
		Tracker:  damage.NewTracker(opts.MaxAge),
		renderer: r,
		outputs:  make(map[*output.Output]space.Point),
		actions:  make(chan func(), 64),
	}
	d.Scene = space.New(d)
	return d
}

// SetLogger replaces the Display's (and its Runtime's) logger.
func (d *Display) SetLogger(l *log.Logger) *Display {
	d.mu.Lock()
	d.logger = l
	d.mu.Unlock()
	d.Runtime.SetLogger(l)
	return d
}

// OnRenderOutput sets the callback invoked after an output's scene has
// been composited, for drawing overlays (cursor, OSD) directly through
// a FrameContext. The context is only valid for the callback's
// duration.
func (d *Display) OnRenderOutput(fn func(out *output.Output, ctx *FrameContext)) *Display {
	d.onRenderOutput = fn
	return d
}

// OnOutputEnter sets the callback fired when Space.Refresh detects a
// window newly overlapping an output.
func (d *Display) OnOutputEnter(fn func(w *space.Window, out *output.Output)) *Display {
	d.onOutputEnter = fn
	return d
}

// OnOutputLeave sets the callback fired when a window stops
// overlapping an output it previously did.
func (d *Display) OnOutputLeave(fn func(w *space.Window, out *output.Output)) *Display {
	d.onOutputLeave = fn
	return d
}

// Enter satisfies space.OutputOverlapObserver.
func (d *Display) Enter(w *space.Window, o space.Output) {
	if d.onOutputEnter == nil {
		return
	}
	if out, ok := o.(*output.Output); ok {
		d.onOutputEnter(w, out)
	}
}

// Leave satisfies space.OutputOverlapObserver.
func (d *Display) Leave(w *space.Window, o space.Output) {
	if d.onOutputLeave == nil {
		return
	}
	if out, ok := o.(*output.Output); ok {
		d.onOutputLeave(w, out)
	}
}

// AddOutput maps o into the scene at loc and starts including it in
// render passes.
func (d *Display) AddOutput(o *output.Output, loc space.Point) {
	d.mu.Lock()
	d.outputs[o] = loc
	d.mu.Unlock()
	d.Scene.MapOutput(o, loc)
}

// RemoveOutput unmaps o from the scene and stops rendering it.
func (d *Display) RemoveOutput(o *output.Output) {
	d.mu.Lock()
	delete(d.outputs, o)
	d.mu.Unlock()
	d.Scene.UnmapOutput(o)
}

// Run binds the configured socket and runs the event loop until ctx is
// canceled or an unrecoverable accept error occurs. It blocks.
func (d *Display) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	if d.renderer == nil {
		d.mu.Unlock()
		return ErrNoRenderer
	}
	d.running = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	ln, err := d.listen()
	if err != nil {
		return err
	}
	d.listener = ln
	defer ln.Close()

	d.logger.Printf("wlcompositor: listening on %s", ln.Name())

	acceptErr := make(chan error, 1)
	go d.acceptLoop(ln, acceptErr)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-acceptErr:
			return err
		case action := <-d.actions:
			action()
		case <-ticker.C:
			d.renderFrame()
		}
	}
}

func (d *Display) listen() (*socket.Listener, error) {
	if d.opts.SocketName != "" {
		return socket.Listen(d.opts.SocketName)
	}
	return socket.ListenAuto()
}

// renderFrame runs one damage-tracked render pass per mapped output.
func (d *Display) renderFrame() {
	d.mu.Lock()
	outputs := make(map[*output.Output]space.Point, len(d.outputs))
	for o, loc := range d.outputs {
		outputs[o] = loc
	}
	d.mu.Unlock()

	for o, loc := range outputs {
		d.renderOutput(o, loc)
	}
}

func (d *Display) renderOutput(o *output.Output, loc space.Point) {
	width, height := outputPhysicalSize(o)
	if width <= 0 || height <= 0 {
		return
	}
	scale := o.Scale()
	logicalW, logicalH := o.PixelSize()
	outputRect := region.Rect{X: loc.X, Y: loc.Y, W: logicalW, H: logicalH}

	var elements []damage.Element
	for _, w := range d.Scene.Elements() {
		if !w.Rect().Overlaps(outputRect) {
			continue
		}
		elements = append(elements, &windowElement{window: w, outputLoc: loc, outputScale: scale})
	}

	outputBbox := region.Rect{X: 0, Y: 0, W: width, H: height}
	result := d.Tracker.RenderPass(o, elements, 1, outputBbox)
	if !result.Rendered {
		return
	}

	frame, err := d.renderer.BeginFrame(renderer.Size{Width: int(width), Height: int(height)}, o.Transform())
	if err != nil {
		d.logger.Printf("wlcompositor: output %s: begin frame: %v", o.Name, err)
		return
	}

	frame.Clear(renderer.Color{}, result.Damage)

	for _, entry := range result.DrawList {
		if entry.State == damage.Skipped {
			continue
		}
		we, ok := entry.Element.(*windowElement)
		if !ok {
			continue
		}
		ps, ok := we.pixelSource()
		if !ok {
			continue
		}
		pixels, pw, ph, stride, format := ps.Pixels()
		tex, err := d.renderer.ImportSHM(pixels, pw, ph, format, stride, region.Region{})
		if err != nil {
			d.logger.Printf("wlcompositor: output %s: import buffer: %v", o.Name, err)
			continue
		}
		frame.DrawTextured(tex, entry.Src, entry.Dst, entry.Damage, we.Transform(), 1.0)
		if rel, ok := tex.(interface{ Release() }); ok {
			rel.Release()
		}
	}

	if d.onRenderOutput != nil {
		d.onRenderOutput(o, newFrameContext(frame, width, height))
	}

	syncPoint, err := frame.Finish()
	if err != nil {
		d.logger.Printf("wlcompositor: output %s: finish frame: %v", o.Name, err)
		return
	}
	syncPoint.Wait()
}
