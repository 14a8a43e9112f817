// Package surface implements the Wayland double-buffered surface state
// machine: the surface store (Component C), the commit pipeline
// (Component D), and the role system (Component E).
//
// A Surface carries two state slots, pending and current. Client requests
// (attach, damage, set_opaque_region, ...) only ever write pending; a
// wl_surface.commit request promotes pending to current through Commit,
// which runs blockers, pre-commit hooks, the atomic synchronized-subtree
// apply, cached-state rotation, post-commit hooks, the role callback, and
// buffer release accounting, in that fixed order.
//
// Roles (xdg_toplevel, xdg_popup, subsurface, cursor, dnd_icon, layer) are
// write-once: the first call to SetRole wins, and RoleRegistry dispatches
// the commit-time role callback by name instead of through a virtual
// hierarchy.
package surface
