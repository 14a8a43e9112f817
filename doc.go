// Package wlcompositor ties the toolkit's components into a runnable
// compositor event loop: accept client connections, dispatch decoded
// requests through objreg, let surface/xdgshell/seat/space/damage do
// their work, and drive one render pass per output.
//
// # Quick Start
//
// A minimal compositor binds an auto-selected socket and renders with
// the built-in WebGPU backend:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/gogpu/wlcompositor"
//	    "github.com/gogpu/wlcompositor/renderer"
//	)
//
//	func main() {
//	    r, err := renderer.NewWGPURenderer()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer r.Destroy()
//
//	    d := wlcompositor.NewDisplay(wlcompositor.DefaultOptions(), r)
//	    if err := d.Run(context.Background()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// wlcompositor.Display owns the process-wide singletons every other
// package needs a handle to (objreg.Runtime, surface.Store, space.Space,
// damage.Tracker, the output set) and the socket.Listener clients
// connect to. It does not itself decode any protocol beyond the wire
// header: request handlers for wl_compositor, wl_surface, xdg_wm_base,
// and the rest are registered against Display.Runtime the same way any
// out-of-scope auxiliary protocol would be (see objreg's RegisterHandler
// seam).
//
// # Configuration
//
// Use Options to customize socket naming and damage history depth:
//
//	opts := wlcompositor.DefaultOptions().
//	    WithSocketName("wayland-1").
//	    WithMaxAge(3)
//
// # Dependencies
//
// wlcompositor depends on:
//   - golang.org/x/sys (via socket) - UNIX socket + SCM_RIGHTS plumbing
//   - github.com/go-webgpu/webgpu (via renderer) - the reference
//     WebGPU-backed Frame implementation
package wlcompositor
