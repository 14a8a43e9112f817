// Package objreg is the concrete, minimal implementation of the object
// registry and per-client state contract every Wayland extension relies
// on: typed objects keyed by (client, object id), request dispatch,
// event/error posting, and destruction notification.
//
// objreg does not marshal wire bytes itself — that remains the
// transport's job (see package wire and package socket) — it only tracks
// object lifetime and routes already-decoded requests to handlers. Every
// auxiliary protocol this toolkit does not implement directly (data
// device, presentation-time, viewporter, ...) would register its own
// (interface, opcode) handler table through the same seam used here by
// wl_compositor/wl_surface and xdg_shell.
package objreg

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/wlcompositor/wire"
)

// ClientID identifies one connected client.
type ClientID uint32

// ErrorCode is a Wayland protocol error code, specific to the interface
// posting it (object-local codes, not globally unique numbers).
type ErrorCode uint32

// ProtocolError terminates the client that triggered it. It is never
// returned to the caller that detected the violation — it is posted on
// the offending object and recorded so the transport can disconnect the
// client after flushing the wl_display.error event.
type ProtocolError struct {
	Object  wire.ObjectID
	Code    ErrorCode
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("objreg: protocol error on object %d (code %d): %s", e.Object, e.Code, e.Message)
}

// RequestHandler decodes and acts on one request's arguments. args is the
// raw wire payload following the message header; fds carries any file
// descriptors the transport collected for this message.
type RequestHandler func(client *Client, obj *Object, opcode wire.Opcode, args []byte, fds []int) error

// EventWriter sends an already-encoded event to a client. The transport
// (package socket) supplies this; objreg never opens a connection itself.
type EventWriter func(msg *wire.Message) error

// Object is one live protocol object belonging to a client.
type Object struct {
	mu sync.Mutex

	id        wire.ObjectID
	iface     string
	client    *Client
	userData  any
	alive     bool
	onDestroy []func()
}

// ID returns the object's id, stable for its lifetime.
func (o *Object) ID() wire.ObjectID { return o.id }

// Interface returns the interface name the object was created with.
func (o *Object) Interface() string { return o.iface }

// Client returns the owning client.
func (o *Object) Client() *Client { return o.client }

// UserData returns the value attached at creation time.
func (o *Object) UserData() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.userData
}

// SetUserData replaces the attached value.
func (o *Object) SetUserData(v any) {
	o.mu.Lock()
	o.userData = v
	o.mu.Unlock()
}

// Alive reports whether the object has not yet been destroyed.
func (o *Object) Alive() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.alive
}

// OnDestroy registers fn to run exactly once, when the object is
// destroyed. If the object is already dead, fn runs immediately.
func (o *Object) OnDestroy(fn func()) {
	o.mu.Lock()
	if !o.alive {
		o.mu.Unlock()
		fn()
		return
	}
	o.onDestroy = append(o.onDestroy, fn)
	o.mu.Unlock()
}

// destroy marks the object dead and runs destruction callbacks. Further
// requests against this id are ignored by Runtime.Dispatch.
func (o *Object) destroy() {
	o.mu.Lock()
	if !o.alive {
		o.mu.Unlock()
		return
	}
	o.alive = false
	callbacks := o.onDestroy
	o.onDestroy = nil
	o.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// PostEvent encodes and sends ev to this object's client, as long as the
// object is still alive. Posting to a dead object is a silent no-op,
// matching the "operation on a dead surface is a no-op" failure mode
// specified for the rest of the core.
func (o *Object) PostEvent(opcode wire.Opcode, args []byte) error {
	if !o.Alive() {
		return nil
	}
	return o.client.write(&wire.Message{ObjectID: o.id, Opcode: opcode, Args: args})
}

// PostError sends a wl_display.error event for this object to its client
// and returns the matching *ProtocolError. The caller should stop
// processing the current request and return that error; Runtime.Dispatch
// then terminates the client.
func (o *Object) PostError(code ErrorCode, format string, a ...any) error {
	perr := &ProtocolError{Object: o.id, Code: code, Message: fmt.Sprintf(format, a...)}
	// wl_display (object 1) error event, opcode 0: object, code, message.
	args, _ := wire.NewMessageBuilder().PutObject(o.id).PutUint32(uint32(code)).PutString(perr.Message).Build()
	_ = o.client.write(&wire.Message{ObjectID: 1, Opcode: 0, Args: args})
	return perr
}

// Client holds everything the registry tracks about one connection:
// its live objects and an opaque per-client data slot compositor code
// can use for things like a per-client commit-state cache.
type Client struct {
	mu       sync.RWMutex
	id       ClientID
	objects  map[wire.ObjectID]*Object
	writer   EventWriter
	data     any
	defunct  bool
	runtime  *Runtime
}

// ID returns the client's id.
func (c *Client) ID() ClientID { return c.id }

// Data returns the per-client compositor-defined state slot.
func (c *Client) Data() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// SetData replaces the per-client state slot.
func (c *Client) SetData(v any) {
	c.mu.Lock()
	c.data = v
	c.mu.Unlock()
}

// Defunct reports whether the client has been disconnected following a
// protocol error.
func (c *Client) Defunct() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defunct
}

// Lookup returns the live object with the given id, or nil.
func (c *Client) Lookup(id wire.ObjectID) *Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.objects[id]
}

func (c *Client) write(msg *wire.Message) error {
	c.mu.RLock()
	w := c.writer
	c.mu.RUnlock()
	if w == nil {
		return nil
	}
	return w(msg)
}

// terminate marks the client defunct, destroys every object it owns
// (running destruction hooks), and forgets them. The transport is
// responsible for actually closing the socket after seeing Defunct() go
// true; objreg has no transport handle of its own.
func (c *Client) terminate() {
	c.mu.Lock()
	if c.defunct {
		c.mu.Unlock()
		return
	}
	c.defunct = true
	objs := make([]*Object, 0, len(c.objects))
	for _, o := range c.objects {
		objs = append(objs, o)
	}
	c.objects = map[wire.ObjectID]*Object{}
	c.mu.Unlock()

	for _, o := range objs {
		o.destroy()
	}
}

// Runtime is the process-wide object registry: the set of connected
// clients and the dispatch table mapping (interface, opcode) to handlers.
type Runtime struct {
	mu       sync.RWMutex
	clients  map[ClientID]*Client
	handlers map[dispatchKey]RequestHandler
	nextObj  map[ClientID]*wire.ObjectID
	logger   *log.Logger
}

type dispatchKey struct {
	iface  string
	opcode wire.Opcode
}

// NewRuntime returns an empty Runtime, logging to log.Default() until
// SetLogger is called.
func NewRuntime() *Runtime {
	return &Runtime{
		clients:  map[ClientID]*Client{},
		handlers: map[dispatchKey]RequestHandler{},
		logger:   log.Default(),
	}
}

// SetLogger replaces the runtime's logger. Passing nil discards log
// output instead of falling back to a default.
func (r *Runtime) SetLogger(l *log.Logger) {
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

func (r *Runtime) logf(format string, args ...any) {
	r.mu.RLock()
	l := r.logger
	r.mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// RegisterHandler installs the handler invoked for opcode requests on
// objects of the given interface. Extensions call this once at startup
// for every request their interface accepts.
func (r *Runtime) RegisterHandler(iface string, opcode wire.Opcode, h RequestHandler) {
	r.mu.Lock()
	r.handlers[dispatchKey{iface, opcode}] = h
	r.mu.Unlock()
}

// AddClient registers a new connection, given a writer the transport
// supplies for sending events back out.
func (r *Runtime) AddClient(id ClientID, writer EventWriter) *Client {
	c := &Client{id: id, objects: map[wire.ObjectID]*Object{}, writer: writer, runtime: r}
	r.mu.Lock()
	r.clients[id] = c
	r.mu.Unlock()
	return c
}

// RemoveClient terminates and forgets a client, e.g. after its socket
// closes.
func (r *Runtime) RemoveClient(id ClientID) {
	r.mu.Lock()
	c := r.clients[id]
	delete(r.clients, id)
	r.mu.Unlock()
	if c != nil {
		c.terminate()
	}
}

// Client returns the client with the given id, or nil.
func (r *Runtime) Client(id ClientID) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[id]
}

// CreateObject allocates a new live object with the given id and
// interface name on client, with userData attached. Object ids are
// caller-supplied (the client picks its own for requests; the compositor
// picks server-allocated ones for new_id return values) and must not be
// reused while still alive on that client.
func CreateObject(client *Client, id wire.ObjectID, iface string, userData any) *Object {
	obj := &Object{id: id, iface: iface, client: client, userData: userData, alive: true}
	client.mu.Lock()
	client.objects[id] = obj
	client.mu.Unlock()
	return obj
}

// Destroy removes obj from its client and runs its destruction
// callbacks. Safe to call more than once.
func Destroy(obj *Object) {
	obj.client.mu.Lock()
	delete(obj.client.objects, obj.id)
	obj.client.mu.Unlock()
	obj.destroy()
}

// Dispatch routes one decoded request to its registered handler. Requests
// against a dead object, or from a defunct client, are silently dropped —
// per the core's "operation on a dead surface is a no-op" rule. A handler
// returning a *ProtocolError terminates the client after the error event
// the caller is expected to have already posted via Object.PostError.
func (r *Runtime) Dispatch(clientID ClientID, msg *wire.Message, fds []int) error {
	client := r.Client(clientID)
	if client == nil || client.Defunct() {
		return nil
	}

	obj := client.Lookup(msg.ObjectID)
	if obj == nil || !obj.Alive() {
		return nil
	}

	r.mu.RLock()
	h := r.handlers[dispatchKey{obj.Interface(), msg.Opcode}]
	r.mu.RUnlock()
	if h == nil {
		err := fmt.Errorf("objreg: no handler for %s opcode %d", obj.Interface(), msg.Opcode)
		r.logf("objreg: client %d: %v", clientID, err)
		return err
	}

	err := h(client, obj, msg.Opcode, msg.Args, fds)
	var perr *ProtocolError
	if asProtocolError(err, &perr) {
		r.logf("objreg: client %d: protocol error: %v", clientID, perr)
		client.terminate()
		return perr
	}
	return err
}

func asProtocolError(err error, out **ProtocolError) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*ProtocolError); ok {
		*out = pe
		return true
	}
	return false
}
