//go:build linux || darwin || freebsd || openbsd || netbsd

package socket

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrNoRuntimeDir is returned when $XDG_RUNTIME_DIR is unset; every
// Wayland socket lives under it.
var ErrNoRuntimeDir = errors.New("socket: XDG_RUNTIME_DIR not set")

// ErrNoFreeName is returned by ListenAuto when every name in its search
// range is already taken.
var ErrNoFreeName = errors.New("socket: no free wayland-N socket name available")

// Listener accepts client connections on a named Wayland socket under
// $XDG_RUNTIME_DIR.
type Listener struct {
	name string
	path string
	ln   *net.UnixListener
	lock *os.File
}

// Listen binds a listening socket at $XDG_RUNTIME_DIR/name. name is
// typically "wayland-0", "wayland-1", etc., but any non-path name is
// accepted, matching WAYLAND_DISPLAY's own convention.
func Listen(name string) (*Listener, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, ErrNoRuntimeDir
	}
	return listenAt(runtimeDir, name)
}

func listenAt(runtimeDir, name string) (*Listener, error) {
	path := filepath.Join(runtimeDir, name)
	lockPath := path + ".lock"

	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("socket: open lock file %s: %w", lockPath, err)
	}
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("socket: %s already in use: %w", name, err)
	}

	// A stale socket file from a previous, uncleanly-terminated run would
	// otherwise make bind fail with EADDRINUSE even though nothing is
	// listening; holding the lock above proves no other process holds
	// this name, so it is safe to remove.
	_ = os.Remove(path)

	addr := &net.UnixAddr{Name: path, Net: "unix"}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		_ = unix.Flock(int(lock.Fd()), unix.LOCK_UN)
		_ = lock.Close()
		return nil, fmt.Errorf("socket: listen on %s: %w", path, err)
	}

	return &Listener{name: name, path: path, ln: ln, lock: lock}, nil
}

// ListenAuto binds the first available name in wayland-1..wayland-32,
// skipping wayland-0: clients should discover a compositor through
// WAYLAND_DISPLAY or WAYLAND_SOCKET rather than guessing wayland-0, so
// that name is reserved and never auto-assigned.
func ListenAuto() (*Listener, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, ErrNoRuntimeDir
	}
	return listenAutoIn(runtimeDir)
}

func listenAutoIn(runtimeDir string) (*Listener, error) {
	for i := 1; i < 33; i++ {
		name := fmt.Sprintf("wayland-%d", i)
		ln, err := listenAt(runtimeDir, name)
		if err == nil {
			return ln, nil
		}
	}
	return nil, ErrNoFreeName
}

// Name returns the socket's display name (e.g. "wayland-1"), suitable
// for exporting as WAYLAND_DISPLAY to launched clients.
func (l *Listener) Name() string {
	return l.name
}

// Accept blocks until a client connects, returning a Conn wrapping it.
func (l *Listener) Accept() (*Conn, error) {
	c, err := l.ln.AcceptUnix()
	if err != nil {
		return nil, err
	}
	return newConn(c)
}

// Close stops accepting connections, removes the socket file, and
// releases the name's lock so another process may reuse it.
func (l *Listener) Close() error {
	err := l.ln.Close()
	_ = os.Remove(l.path)
	if l.lock != nil {
		_ = unix.Flock(int(l.lock.Fd()), unix.LOCK_UN)
		_ = l.lock.Close()
		_ = os.Remove(l.path + ".lock")
	}
	return err
}
