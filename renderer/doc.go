// Package renderer defines the abstract frame contract a compositor core
// needs from a GPU backend, and ships one concrete implementation,
// WGPURenderer, backed by WebGPU. surface, xdgshell, space, and damage
// never import this package; they only ever receive a Frame or Texture
// value through caller-supplied code, so a caller is free to substitute
// an entirely different backend without touching core state.
package renderer
