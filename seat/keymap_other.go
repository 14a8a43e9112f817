//go:build !linux

package seat

import (
	"fmt"
	"os"
)

// newSealedKeymapFile backs a SealedKeymap with an unlinked temp file on
// platforms without memfd_create/F_ADD_SEALS: the file is written then
// immediately unlinked from the filesystem namespace, so the only way to
// reach its contents is the fd this function returns, which a client can
// read and mmap but never observe change, the same practical guarantee
// sealing gives on Linux without the seal syscalls that don't exist here.
func newSealedKeymapFile(data []byte) (*os.File, error) {
	f, err := os.CreateTemp("", "wlcompositor-keymap-*")
	if err != nil {
		return nil, fmt.Errorf("seat: create keymap temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("seat: write keymap: %w", err)
	}
	return f, nil
}
