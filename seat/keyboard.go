package seat

import (
	"sync"

	"github.com/gogpu/wlcompositor/serial"
	"github.com/gogpu/wlcompositor/surface"
)

// Modifiers is the xkb modifier state sent with wl_keyboard.modifiers.
type Modifiers struct {
	Depressed, Latched, Locked uint32
	Group                      uint32
}

// KeyEvent is a single key press/release, already translated to a
// Linux evdev keycode.
type KeyEvent struct {
	Key    uint32
	State  ButtonState
	Serial serial.Serial
	Time   uint32
}

// KeyboardClient is a per-client binding of wl_keyboard.
type KeyboardClient interface {
	ClientID() any
	Enter(s serial.Serial, surf *surface.Surface, keys []uint32)
	Leave(s serial.Serial, surf *surface.Surface)
	Key(ev KeyEvent)
	Modifiers(s serial.Serial, mods Modifiers)
}

// Keyboard tracks one seat's keyboard focus and modifier state.
type Keyboard struct {
	mu sync.Mutex

	clients []KeyboardClient

	focus       *surface.Surface
	focusClient any

	mods    Modifiers
	pressed []uint32
}

// NewKeyboard returns an unfocused Keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// AddClient registers a per-client wl_keyboard binding.
func (k *Keyboard) AddClient(c KeyboardClient) {
	k.mu.Lock()
	k.clients = append(k.clients, c)
	k.mu.Unlock()
}

// RemoveClient unregisters a previously added binding.
func (k *Keyboard) RemoveClient(c KeyboardClient) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, v := range k.clients {
		if v == c {
			k.clients = append(k.clients[:i], k.clients[i+1:]...)
			return
		}
	}
}

func (k *Keyboard) withFocusedClients(f func(c KeyboardClient)) {
	if k.focus == nil {
		return
	}
	for _, c := range k.clients {
		if c.ClientID() == k.focusClient {
			f(c)
		}
	}
}

// SetFocus changes keyboard focus: fires leave(old, serial) then
// enter(new, serial, currently-pressed-keys) then modifiers(serial,
// ...), per the keyboard focus-change sequence.
func (k *Keyboard) SetFocus(surf *surface.Surface, ownerClientID any, s serial.Serial) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.focus != nil {
		k.withFocusedClients(func(c KeyboardClient) { c.Leave(s, k.focus) })
	}
	k.focus = surf
	k.focusClient = ownerClientID
	if surf == nil {
		return
	}
	keys := append([]uint32(nil), k.pressed...)
	k.withFocusedClients(func(c KeyboardClient) { c.Enter(s, surf, keys) })
	mods := k.mods
	k.withFocusedClients(func(c KeyboardClient) { c.Modifiers(s, mods) })
}

// Focus returns the currently focused surface, or nil.
func (k *Keyboard) Focus() *surface.Surface {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.focus
}

// Key delivers a key event to the focused client and updates the
// pressed-key set used for the next focus-change enter event.
func (k *Keyboard) Key(ev KeyEvent) {
	k.mu.Lock()
	if ev.State == ButtonPressed {
		k.pressed = appendIfMissing(k.pressed, ev.Key)
	} else {
		k.pressed = removeKey(k.pressed, ev.Key)
	}
	k.mu.Unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.withFocusedClients(func(c KeyboardClient) { c.Key(ev) })
}

// SetModifiers updates the modifier state and notifies the focused
// client.
func (k *Keyboard) SetModifiers(mods Modifiers, s serial.Serial) {
	k.mu.Lock()
	k.mods = mods
	k.mu.Unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.withFocusedClients(func(c KeyboardClient) { c.Modifiers(s, mods) })
}

func appendIfMissing(keys []uint32, key uint32) []uint32 {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}

func removeKey(keys []uint32, key uint32) []uint32 {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
