package seat

import (
	"os"
)

// SealedKeymap is a compiled XKB keymap string backed by a read-only,
// size-fixed fd suitable for wl_keyboard.keymap: the client mmaps it
// PROT_READ and is guaranteed the mapping's size and contents never
// change underneath it, which the protocol requires but a plain pipe or
// writable tmpfile can't.
type SealedKeymap struct {
	file *os.File
	size int64
}

// NewSealedKeymap writes keymap (the XKB keymap string, including its
// trailing NUL) into a backing file sealed against further writes or
// resizing and returns a SealedKeymap wrapping it.
func NewSealedKeymap(keymap []byte) (*SealedKeymap, error) {
	f, err := newSealedKeymapFile(keymap)
	if err != nil {
		return nil, err
	}
	return &SealedKeymap{file: f, size: int64(len(keymap))}, nil
}

// Fd returns the raw file descriptor to pass as the keymap event's fd
// argument. The SealedKeymap retains ownership; call Close once the
// send has completed (the kernel keeps the underlying file alive for
// any peer that received a duplicate via SCM_RIGHTS).
func (k *SealedKeymap) Fd() uintptr {
	return k.file.Fd()
}

// Size is the exact byte length to pass as the keymap event's size
// argument.
func (k *SealedKeymap) Size() int64 {
	return k.size
}

// Close releases this process's reference to the backing file. A client
// that already received the fd over SCM_RIGHTS keeps its own reference
// regardless.
func (k *SealedKeymap) Close() error {
	return k.file.Close()
}
