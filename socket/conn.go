//go:build linux || darwin || freebsd || openbsd || netbsd

package socket

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// ErrClosed is returned by RecvMsg when the peer has closed the
// connection (a read of zero bytes with no ancillary data).
var ErrClosed = errors.New("socket: connection closed")

// Conn is one accepted client connection, supporting the SCM_RIGHTS
// ancillary-data framing the Wayland wire protocol uses to pass file
// descriptors (shm pool fds, sync fds) alongside message bytes.
type Conn struct {
	uc   *net.UnixConn
	file *os.File
}

func newConn(uc *net.UnixConn) (*Conn, error) {
	file, err := uc.File()
	if err != nil {
		_ = uc.Close()
		return nil, fmt.Errorf("socket: get connection file: %w", err)
	}
	return &Conn{uc: uc, file: file}, nil
}

// Fd returns the connection's raw file descriptor, for registering with
// an event loop's poll/epoll set.
func (c *Conn) Fd() int {
	return int(c.file.Fd())
}

// SendMsg writes data to the client, attaching fds as an SCM_RIGHTS
// control message when any are given.
func (c *Conn) SendMsg(data []byte, fds []int) error {
	if len(fds) == 0 {
		_, err := c.uc.Write(data)
		return err
	}
	rights := unix.UnixRights(fds...)
	return unix.Sendmsg(c.Fd(), data, rights, nil, 0)
}

// maxAncillaryFDs bounds how many fds RecvMsg will accept in a single
// control message; the wire protocol never passes more than a handful
// per message.
const maxAncillaryFDs = 28

// RecvMsg reads into buf, returning the number of bytes read and any
// fds received alongside them via SCM_RIGHTS.
func (c *Conn) RecvMsg(buf []byte) (n int, fds []int, err error) {
	oob := make([]byte, unix.CmsgSpace(maxAncillaryFDs*4))

	n, oobn, _, _, err := unix.Recvmsg(c.Fd(), buf, oob, 0)
	if err != nil {
		return 0, nil, fmt.Errorf("socket: recvmsg: %w", err)
	}
	if n == 0 && oobn == 0 {
		return 0, nil, ErrClosed
	}

	fds, err = parseRights(oob[:oobn])
	if err != nil {
		return n, nil, err
	}
	return n, fds, nil
}

func parseRights(oob []byte) ([]int, error) {
	if len(oob) == 0 {
		return nil, nil
	}
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, fmt.Errorf("socket: parse control message: %w", err)
	}

	var fds []int
	for _, scm := range scms {
		if scm.Header.Level != unix.SOL_SOCKET || scm.Header.Type != unix.SCM_RIGHTS {
			continue
		}
		got, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return nil, fmt.Errorf("socket: parse unix rights: %w", err)
		}
		fds = append(fds, got...)
	}
	return fds, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	_ = c.file.Close()
	return c.uc.Close()
}
