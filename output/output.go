package output

import (
	"errors"
	"sync"

	"github.com/gogpu/wlcompositor/surface"
)

// ErrNoModes is returned by SetMode when the requested mode was never
// added via AddMode.
var ErrNoModes = errors.New("output: mode not found")

// Mode is one output mode: a supported pixel size and refresh rate.
type Mode struct {
	Width, Height  int32
	RefreshMilliHz int32
	Preferred      bool
}

// Client is a per-client wl_output binding. Geometry/Mode/Scale/Done
// mirror the wire events of the same name; the embedding compositor's
// wl_output adapter implements this to actually encode and send them.
type Client interface {
	Geometry(o *Output)
	Mode(m Mode)
	Scale(factor int32)
	Done()
}

// Output is compositor-owned state for one physical or virtual
// display: its supported modes, current mode, integer scale, and
// transform. It has no rendering concerns; renderer/damage consume
// its PixelSize/Scale/Transform to size and orient a frame.
type Output struct {
	mu sync.Mutex

	Name                              string
	Make, Model                       string
	PhysicalWidthMM, PhysicalHeightMM int32

	modes       []Mode
	currentMode int

	scale     int32
	transform surface.Transform

	clients []Client
}

// New returns an Output with no modes, scale 1, and the identity
// transform. At least one mode must be added via AddMode (the first one
// added becomes current) before PixelSize is meaningful.
func New(name string) *Output {
	return &Output{Name: name, scale: 1, currentMode: -1}
}

// ID satisfies space.Output: an Output's identity is its own address.
func (o *Output) ID() any { return o }

// AddMode appends a supported mode. The first mode added becomes
// current if none is selected yet.
func (o *Output) AddMode(m Mode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.modes = append(o.modes, m)
	if o.currentMode < 0 {
		o.currentMode = len(o.modes) - 1
	}
}

// SetMode selects m (which must have been added via AddMode) as
// current, and notifies every bound client with mode + done.
func (o *Output) SetMode(m Mode) error {
	o.mu.Lock()
	idx := -1
	for i, mm := range o.modes {
		if mm == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return ErrNoModes
	}
	o.currentMode = idx
	clients := append([]Client(nil), o.clients...)
	o.mu.Unlock()

	for _, c := range clients {
		c.Mode(m)
		c.Done()
	}
	return nil
}

// CurrentMode returns the currently selected mode and whether one has
// been selected.
func (o *Output) CurrentMode() (Mode, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.currentMode < 0 {
		return Mode{}, false
	}
	return o.modes[o.currentMode], true
}

// Modes returns every mode added via AddMode.
func (o *Output) Modes() []Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Mode(nil), o.modes...)
}

// SetScale updates the integer scale factor and notifies every bound
// client with scale + done.
func (o *Output) SetScale(scale int32) {
	o.mu.Lock()
	o.scale = scale
	clients := append([]Client(nil), o.clients...)
	o.mu.Unlock()

	for _, c := range clients {
		c.Scale(scale)
		c.Done()
	}
}

// Scale returns the current integer scale factor.
func (o *Output) Scale() int32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scale
}

// SetTransform updates the output's transform and notifies every bound
// client with geometry + done.
func (o *Output) SetTransform(t surface.Transform) {
	o.mu.Lock()
	o.transform = t
	clients := append([]Client(nil), o.clients...)
	o.mu.Unlock()

	for _, c := range clients {
		c.Geometry(o)
		c.Done()
	}
}

// Transform returns the output's current transform.
func (o *Output) Transform() surface.Transform {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transform
}

// AddClient registers a per-client wl_output binding and immediately
// sends its initial geometry/mode/scale/done burst.
func (o *Output) AddClient(c Client) {
	o.mu.Lock()
	o.clients = append(o.clients, c)
	mode, hasMode := Mode{}, false
	if o.currentMode >= 0 {
		mode, hasMode = o.modes[o.currentMode], true
	}
	scale := o.scale
	o.mu.Unlock()

	c.Geometry(o)
	if hasMode {
		c.Mode(mode)
	}
	c.Scale(scale)
	c.Done()
}

// RemoveClient unregisters a previously added binding.
func (o *Output) RemoveClient(c Client) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, v := range o.clients {
		if v == c {
			o.clients = append(o.clients[:i], o.clients[i+1:]...)
			return
		}
	}
}

// PixelSize returns the output's logical size: its current mode's
// pixel size, divided by scale, with width/height swapped for a
// 90/270-degree transform. Satisfies space.Output.
func (o *Output) PixelSize() (w, h int32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.currentMode < 0 {
		return 0, 0
	}
	m := o.modes[o.currentMode]
	w, h = m.Width, m.Height
	if o.scale > 1 {
		w, h = w/o.scale, h/o.scale
	}
	if transformSwapsAxes(o.transform) {
		w, h = h, w
	}
	return w, h
}

func transformSwapsAxes(t surface.Transform) bool {
	switch t {
	case surface.Transform90, surface.Transform270,
		surface.TransformFlipped90, surface.TransformFlipped270:
		return true
	default:
		return false
	}
}
