// Package output implements compositor-side wl_output state: modes,
// scale, and transform, plus the change notifications a bound client
// expects (geometry/mode/scale/done). It satisfies space.Output so a
// space.Space can map it without importing this package.
package output
