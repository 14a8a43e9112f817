package surface

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
)

type fakeBuffer struct {
	released int
}

func (b *fakeBuffer) Release() { b.released++ }

func newTestSurface() *Surface {
	st := NewStore(nil)
	return st.Create()
}

func TestCommitNoOpStillFiresFrameCallbacks(t *testing.T) {
	s := newTestSurface()
	s.AddFrameCallback(42)

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	cbs := s.TakeReadyFrameCallbacks()
	if len(cbs) != 1 || cbs[0].CallbackID != 42 {
		t.Fatalf("frame callbacks = %v, want one with id 42", cbs)
	}
}

func TestGenerationMonotone(t *testing.T) {
	s := newTestSurface()
	var prev uint64
	for i := 0; i < 5; i++ {
		if err := s.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		gen := s.Current().Generation
		if gen <= prev {
			t.Fatalf("generation did not increase: %d -> %d", prev, gen)
		}
		prev = gen
	}
}

func TestAttachAndBufferRelease(t *testing.T) {
	s := newTestSurface()
	buf1 := &fakeBuffer{}
	s.Attach(buf1, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if s.Current().Buffer != buf1 {
		t.Fatalf("current buffer not set")
	}

	buf2 := &fakeBuffer{}
	s.Attach(buf2, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if buf1.released != 1 {
		t.Fatalf("old buffer released %d times, want 1", buf1.released)
	}
	if buf2.released != 0 {
		t.Fatalf("new buffer should not be released yet")
	}
}

func TestDamageAccumulatesIntoBufferCoords(t *testing.T) {
	s := newTestSurface()
	s.SetBufferScale(2)
	s.DamageSurface(region.Rect{X: 0, Y: 0, W: 10, H: 10})

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := s.Current().BufferDamage.Bounds()
	want := region.Rect{X: 0, Y: 0, W: 20, H: 20}
	if got != want {
		t.Fatalf("BufferDamage bounds = %v, want %v", got, want)
	}
}

func TestRoleFirstWins(t *testing.T) {
	s := newTestSurface()
	if err := s.SetRole(RoleXDGToplevel); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if err := s.SetRole(RoleXDGToplevel); err != nil {
		t.Fatalf("re-asserting same role should be idempotent: %v", err)
	}
	if err := s.SetRole(RoleSubsurface); err != ErrAlreadyRoled {
		t.Fatalf("SetRole with a different role = %v, want ErrAlreadyRoled", err)
	}
	if s.Role() != RoleXDGToplevel {
		t.Fatalf("role changed after a rejected SetRole")
	}
}

func TestRoleCallbackInvokedOnCommit(t *testing.T) {
	roles := NewRoleRegistry()
	called := 0
	roles.Register(RoleXDGToplevel, func(s *Surface) { called++ })

	st := NewStore(roles)
	s := st.Create()
	_ = s.SetRole(RoleXDGToplevel)

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if called != 1 {
		t.Fatalf("role callback invoked %d times, want 1", called)
	}
}

func TestDestroyRunsDestructionHooksOnce(t *testing.T) {
	s := newTestSurface()
	n := 0
	s.AddDestructionHook(func(s *Surface) { n++ })
	s.Destroy()
	s.Destroy()
	if n != 1 {
		t.Fatalf("destruction hook ran %d times, want 1", n)
	}
}

func TestOperationsOnDeadSurfaceAreNoops(t *testing.T) {
	s := newTestSurface()
	s.Destroy()

	s.Attach(&fakeBuffer{}, 0, 0)
	s.DamageSurface(region.Rect{X: 0, Y: 0, W: 1, H: 1})
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit on dead surface returned error: %v", err)
	}
	if s.Current().Generation != 0 {
		t.Fatalf("dead surface's state should not change")
	}
}

func TestRemoveHookInsideItself(t *testing.T) {
	s := newTestSurface()
	var id HookID
	ran := 0
	id = s.AddCommitHook(func(s *Surface) error {
		ran++
		return s.RemoveHook(id)
	})

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if ran != 1 {
		t.Fatalf("hook ran %d times, want 1 (removed after first commit)", ran)
	}
}

func TestBlockerQueuesCommit(t *testing.T) {
	s := newTestSurface()
	state := BlockerPending
	s.AddBlocker(FuncBlocker(func() BlockerState { return state }))

	s.Attach(&fakeBuffer{}, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if s.Current().Generation != 0 {
		t.Fatalf("commit should have queued, not applied")
	}

	state = BlockerReleased
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if s.Current().Generation != 1 {
		t.Fatalf("commit should apply once blocker releases")
	}
}

func TestBlockerCancelledDropsCommit(t *testing.T) {
	s := newTestSurface()
	buf := &fakeBuffer{}
	s.AddBlocker(FuncBlocker(func() BlockerState { return BlockerCancelled }))
	s.Attach(buf, 0, 0)

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if s.Current().Generation != 0 {
		t.Fatalf("cancelled commit should not have applied")
	}
	if buf.released != 1 {
		t.Fatalf("buffer from a cancelled commit should be released, got %d releases", buf.released)
	}
}

func TestPreCommitHookAbortDiscardsPending(t *testing.T) {
	s := newTestSurface()
	buf := &fakeBuffer{}
	s.AddCommitHook(func(s *Surface) error { return ErrHookNotFound })
	s.Attach(buf, 0, 0)

	if err := s.Commit(); err == nil {
		t.Fatalf("expected the hook's error to propagate")
	}
	if s.Current().Generation != 0 {
		t.Fatalf("aborted commit should not have applied")
	}
	if buf.released != 1 {
		t.Fatalf("pending buffer should be released on abort")
	}
}

func TestSubsurfaceAtomicity(t *testing.T) {
	parent := newTestSurface()
	st := parent.store
	child := st.Create()
	parent.AddSubsurface(child)
	_ = child.SetRole(RoleSubsurface)

	child.DamageSurface(region.Rect{X: 0, Y: 0, W: 5, H: 5})
	if err := child.Commit(); err != nil {
		t.Fatalf("child Commit: %v", err)
	}
	// Synchronized child: nothing visible yet.
	if !child.Current().BufferDamage.IsEmpty() {
		t.Fatalf("synchronized child damage became visible before parent commit")
	}

	parent.DamageSurface(region.Rect{X: 10, Y: 10, W: 5, H: 5})
	if err := parent.Commit(); err != nil {
		t.Fatalf("parent Commit: %v", err)
	}

	if child.Current().BufferDamage.IsEmpty() {
		t.Fatalf("child damage should be visible once parent (desynchronized ancestor) commits")
	}
	if parent.Current().BufferDamage.IsEmpty() {
		t.Fatalf("parent's own damage should also be visible")
	}
}

func TestPlaceAboveRequiresSharedParent(t *testing.T) {
	parentA := newTestSurface()
	parentB := newTestSurface()
	childA := parentA.store.Create()
	childB := parentB.store.Create()
	parentA.AddSubsurface(childA)
	parentB.AddSubsurface(childB)

	if err := childA.PlaceAbove(childB); err != ErrNotSiblings {
		t.Fatalf("PlaceAbove across parents = %v, want ErrNotSiblings", err)
	}
}

func TestPlaceAboveReordersOnCommit(t *testing.T) {
	parent := newTestSurface()
	st := parent.store
	a := st.Create()
	b := st.Create()
	parent.AddSubsurface(a)
	parent.AddSubsurface(b)

	if err := a.PlaceAbove(b); err != nil {
		t.Fatalf("PlaceAbove: %v", err)
	}
	if err := parent.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	children := parent.Children()
	if len(children) != 2 || children[0] != b || children[1] != a {
		t.Fatalf("children order = %v, want [b, a]", children)
	}
}
