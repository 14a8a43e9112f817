// Package xdgshell implements the xdg_shell protocol's state machines on
// top of package surface: xdg_surface configure-serial sequencing, the
// xdg_toplevel current/pending/server-pending triple, the xdg_popup
// lifecycle (positioner, grab, reposition), positioner geometry
// resolution, and xdg_wm_base ping/pong serial tracking.
//
// Nothing here touches the wire: callers decode requests, call into the
// types below, and encode whatever configure/popup/close events result.
package xdgshell
