package seat

import (
	"testing"

	"github.com/gogpu/wlcompositor/serial"
)

func TestSeatBundlesPointerKeyboardTouch(t *testing.T) {
	s := New("seat0")
	if s.Pointer == nil || s.Keyboard == nil || s.Touch == nil {
		t.Fatalf("New should populate all three input devices")
	}
	if s.Name != "seat0" {
		t.Fatalf("Name = %q", s.Name)
	}
}

func TestValidGrabSerialTracksPressAndRelease(t *testing.T) {
	s := New("seat0")
	press := serial.Serial(42)

	if s.ValidGrabSerial(press) {
		t.Fatalf("serial should not be valid before any press")
	}

	s.NotePress(press)
	if !s.ValidGrabSerial(press) {
		t.Fatalf("serial should be valid immediately after NotePress")
	}

	s.NoteRelease(press)
	if s.ValidGrabSerial(press) {
		t.Fatalf("serial should be invalid once the implicit grab ends")
	}
}

func TestValidGrabSerialRejectsUnrelatedSerial(t *testing.T) {
	s := New("seat0")
	s.NotePress(serial.Serial(1))
	if s.ValidGrabSerial(serial.Serial(2)) {
		t.Fatalf("unrelated serial must not validate")
	}
}

func TestValidGrabSerialSupportsConcurrentImplicitGrabs(t *testing.T) {
	s := New("seat0")
	s.NotePress(serial.Serial(1))
	s.NotePress(serial.Serial(2))

	if !s.ValidGrabSerial(serial.Serial(1)) || !s.ValidGrabSerial(serial.Serial(2)) {
		t.Fatalf("both concurrent implicit grabs should validate")
	}
	s.NoteRelease(serial.Serial(1))
	if s.ValidGrabSerial(serial.Serial(1)) {
		t.Fatalf("released grab should no longer validate")
	}
	if !s.ValidGrabSerial(serial.Serial(2)) {
		t.Fatalf("other still-active grab should remain valid")
	}
}
