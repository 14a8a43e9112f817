// Package space implements the two-dimensional layout of windows, layer
// surfaces, and outputs: z-index stacking, output↔window overlap
// tracking, layer-shell exclusive-zone arrangement, and popup
// attachment math. It has no rendering concerns of its own; the
// damage package does not import it, and callers turn a Space's
// windows into damage elements.
package space
