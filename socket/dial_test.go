//go:build linux || darwin || freebsd || openbsd || netbsd

package socket

import "net"

// dialUnix connects to a listener set up by this package's own tests,
// standing in for what a client-side library would do when connecting
// to a compositor's socket.
func dialUnix(path string) (*Conn, error) {
	uc, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, err
	}
	return newConn(uc)
}
