package wlcompositor

// Options configures a Display. The zero value is usable: an empty
// SocketName means ListenAuto picks the name, and NewDisplay replaces a
// zero MaxAge with DefaultOptions' value.
type Options struct {
	// SocketName, if non-empty, is the exact name to bind under
	// $XDG_RUNTIME_DIR (e.g. "wayland-1"). Empty auto-selects one.
	SocketName string

	// MaxAge is how many past render passes' damage the damage tracker
	// retains per output, for buffer-age-based accumulation.
	MaxAge int

	// SeedOutputWidth, SeedOutputHeight describe the initial output
	// geometry a caller may map before any real output is known,
	// useful for tests and headless runs.
	SeedOutputWidth  int32
	SeedOutputHeight int32
}

// DefaultOptions returns sensible defaults: auto-selected socket name,
// a two-frame damage history.
func DefaultOptions() Options {
	return Options{
		MaxAge:           2,
		SeedOutputWidth:  1920,
		SeedOutputHeight: 1080,
	}
}

// WithSocketName returns a copy with the socket name set.
func (o Options) WithSocketName(name string) Options {
	o.SocketName = name
	return o
}

// WithMaxAge returns a copy with the damage history depth set.
func (o Options) WithMaxAge(age int) Options {
	o.MaxAge = age
	return o
}

// WithSeedOutputSize returns a copy with the seed output geometry set.
func (o Options) WithSeedOutputSize(width, height int32) Options {
	o.SeedOutputWidth = width
	o.SeedOutputHeight = height
	return o
}
