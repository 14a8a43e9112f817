package seat

import "testing"

func TestNewSealedKeymapSizeMatchesInput(t *testing.T) {
	keymap := []byte("xkb_keymap { ... };\x00")
	k, err := NewSealedKeymap(keymap)
	if err != nil {
		t.Fatalf("NewSealedKeymap: %v", err)
	}
	defer k.Close()

	if k.Size() != int64(len(keymap)) {
		t.Fatalf("Size() = %d, want %d", k.Size(), len(keymap))
	}
	if k.Fd() == 0 {
		t.Fatalf("Fd() = 0, want a valid descriptor")
	}
}
