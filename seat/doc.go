// Package seat implements wl_seat's keyboard, pointer, and touch focus
// tracking, the pointer-grab contract (the mechanism behind interactive
// move/resize and popup grabs), recent-serial tracking used to validate
// that a client-supplied serial still names an active implicit grab,
// sealed keymap fds, and the clipboard/drag selection abstraction.
package seat
