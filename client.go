package wlcompositor

import (
	"github.com/gogpu/wlcompositor/objreg"
	"github.com/gogpu/wlcompositor/socket"
	"github.com/gogpu/wlcompositor/wire"
)

// clientConn pairs a connected socket with the objreg.Client tracking
// its live objects.
type clientConn struct {
	id     objreg.ClientID
	conn   *socket.Conn
	client *objreg.Client
}

// acceptLoop accepts connections until ln errors (typically because
// Run's deferred Close ran), reporting the terminal error on errc.
func (d *Display) acceptLoop(ln *socket.Listener, errc chan<- error) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			errc <- err
			return
		}

		d.mu.Lock()
		d.nextClientID++
		id := d.nextClientID
		d.mu.Unlock()

		cc := &clientConn{id: id, conn: conn}
		d.actions <- func() { d.addClient(cc) }
	}
}

func (d *Display) addClient(cc *clientConn) {
	cc.client = d.Runtime.AddClient(cc.id, func(msg *wire.Message) error {
		buf, err := wire.EncodeMessage(msg)
		if err != nil {
			return err
		}
		return cc.conn.SendMsg(buf, msg.FDs)
	})
	d.logger.Printf("wlcompositor: client %d connected", cc.id)
	go d.readLoop(cc)
}

func (d *Display) removeClient(cc *clientConn) {
	d.Runtime.RemoveClient(cc.id)
	_ = cc.conn.Close()
	d.logger.Printf("wlcompositor: client %d disconnected", cc.id)
}

// readLoop decodes one message per read, matching the one-message-per-
// recvmsg simplification the teacher's own client-side transport
// makes (see internal/platform/wayland's former Display.RecvMessage):
// a client is expected to write one message's bytes, and any fds it
// carries, in a single call.
func (d *Display) readLoop(cc *clientConn) {
	buf := make([]byte, 4096)
	for {
		n, fds, err := cc.conn.RecvMsg(buf)
		if err != nil {
			d.actions <- func() { d.removeClient(cc) }
			return
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		dec := wire.NewDecoder(data)
		dec.Reset(data, fds)
		msg, err := dec.DecodeMessage()
		if err != nil {
			d.logger.Printf("wlcompositor: client %d: decode: %v", cc.id, err)
			continue
		}
		msg.FDs = fds

		d.actions <- func() {
			if err := d.Runtime.Dispatch(cc.id, msg, msg.FDs); err != nil {
				d.logger.Printf("wlcompositor: client %d: dispatch: %v", cc.id, err)
			}
		}
	}
}
