// Package socket implements the compositor's client-facing listening
// socket: binding under $XDG_RUNTIME_DIR, automatic name selection when
// the caller doesn't care which display name it gets, and the
// SCM_RIGHTS framing every Wayland connection needs to pass file
// descriptors (shm pool fds, sync fds) alongside message bytes.
package socket
