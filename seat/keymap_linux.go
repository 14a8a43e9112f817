//go:build linux

package seat

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// newSealedKeymapFile backs a SealedKeymap with a memfd: write the
// keymap (the write sets the file's final size), then seal it against
// further writes, shrinking, growing, or re-sealing, so the fd handed to
// a client can never be mutated or resized out from under it after the
// fact.
func newSealedKeymapFile(data []byte) (*os.File, error) {
	fd, err := unix.MemfdCreate("wlcompositor-keymap", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return nil, fmt.Errorf("seat: memfd_create: %w", err)
	}
	f := os.NewFile(uintptr(fd), "wlcompositor-keymap")

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("seat: write keymap: %w", err)
	}

	seals := unix.F_SEAL_WRITE | unix.F_SEAL_SHRINK | unix.F_SEAL_GROW | unix.F_SEAL_SEAL
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, seals); err != nil {
		f.Close()
		return nil, fmt.Errorf("seat: seal keymap fd: %w", err)
	}

	return f, nil
}
