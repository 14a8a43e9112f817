package surface

import (
	"testing"

	"github.com/gogpu/wlcompositor/region"
)

func TestPostCommitHookSeesAppliedState(t *testing.T) {
	s := newTestSurface()
	buf := &fakeBuffer{}
	s.Attach(buf, 0, 0)

	var sawBuffer Buffer
	s.AddPostCommitHook(func(s *Surface) {
		sawBuffer = s.Current().Buffer
	})

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if sawBuffer != buf {
		t.Fatalf("post-commit hook saw buffer %v, want %v", sawBuffer, buf)
	}
}

func TestRoleCallbackRunsAfterPostCommitHooks(t *testing.T) {
	roles := NewRoleRegistry()
	var order []string
	roles.Register(RoleXDGToplevel, func(s *Surface) { order = append(order, "role") })

	st := NewStore(roles)
	s := st.Create()
	_ = s.SetRole(RoleXDGToplevel)
	s.AddPostCommitHook(func(s *Surface) { order = append(order, "post-commit") })

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(order) != 2 || order[0] != "post-commit" || order[1] != "role" {
		t.Fatalf("order = %v, want [post-commit, role]", order)
	}
}

func TestCommitHooksRunInRegistrationOrder(t *testing.T) {
	s := newTestSurface()
	var order []int
	s.AddCommitHook(func(s *Surface) error { order = append(order, 1); return nil })
	s.AddCommitHook(func(s *Surface) error { order = append(order, 2); return nil })
	s.AddCommitHook(func(s *Surface) error { order = append(order, 3); return nil })

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
}

func TestSecondCommitHookAbortStopsChain(t *testing.T) {
	s := newTestSurface()
	ran := []int{}
	s.AddCommitHook(func(s *Surface) error { ran = append(ran, 1); return nil })
	s.AddCommitHook(func(s *Surface) error { ran = append(ran, 2); return ErrHookNotFound })
	s.AddCommitHook(func(s *Surface) error { ran = append(ran, 3); return nil })

	if err := s.Commit(); err == nil {
		t.Fatalf("expected error from second hook")
	}
	if len(ran) != 2 {
		t.Fatalf("ran = %v, want only the first two hooks to have run", ran)
	}
}

func TestDiscardedBlockerKeepsPreviousCurrentState(t *testing.T) {
	s := newTestSurface()
	buf1 := &fakeBuffer{}
	s.Attach(buf1, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	buf2 := &fakeBuffer{}
	s.AddBlocker(FuncBlocker(func() BlockerState { return BlockerCancelled }))
	s.Attach(buf2, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if s.Current().Buffer != buf1 {
		t.Fatalf("current buffer changed despite cancelled commit")
	}
	if buf2.released != 1 {
		t.Fatalf("the never-applied pending buffer should still be released")
	}
}

func TestReattachingSameBufferDoesNotReleaseIt(t *testing.T) {
	s := newTestSurface()
	buf := &fakeBuffer{}
	s.Attach(buf, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	s.Attach(buf, 0, 0)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if buf.released != 0 {
		t.Fatalf("buffer released %d times, want 0 for reattaching the same buffer", buf.released)
	}
}

func TestDesynchronizedSubsurfaceCommitsImmediately(t *testing.T) {
	parent := newTestSurface()
	child := parent.store.Create()
	parent.AddSubsurface(child)

	// The sync flag write is itself double-buffered: while the child is
	// still synchronized, its own commit only stages; the flag change
	// takes effect once the parent's commit promotes the staged child.
	child.SetSubsurfaceSync(false)
	if err := child.Commit(); err != nil {
		t.Fatalf("child Commit: %v", err)
	}
	if !child.Synchronized() {
		t.Fatalf("sync flag should not change before the parent promotes it")
	}
	if err := parent.Commit(); err != nil {
		t.Fatalf("parent Commit: %v", err)
	}
	if child.Synchronized() {
		t.Fatalf("child should be desynchronized after the parent's commit promoted it")
	}

	child.DamageSurface(region.Rect{X: 0, Y: 0, W: 3, H: 3})
	if err := child.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if child.Current().BufferDamage.IsEmpty() {
		t.Fatalf("a desynchronized child's own commit should apply immediately")
	}
}
