package surface

import (
	"sync"

	"github.com/gogpu/wlcompositor/region"
)

// Store creates surfaces and owns the role registry they consult on
// commit. A compositor typically has exactly one Store.
type Store struct {
	roles *RoleRegistry
}

// NewStore returns a Store driving commits against roles.
func NewStore(roles *RoleRegistry) *Store {
	if roles == nil {
		roles = NewRoleRegistry()
	}
	return &Store{roles: roles}
}

// Roles returns the store's role registry, so extensions can register
// role commit callbacks against it.
func (st *Store) Roles() *RoleRegistry { return st.roles }

// Create allocates a new surface: empty pending and current state, no
// role, alive.
func (st *Store) Create() *Surface {
	return &Surface{
		store:        st,
		pending:      newState(),
		current:      newState(),
		alive:        NewAliveTracker(),
		sync:         true,
		cachedPending: map[string]any{},
		cachedCurrent: map[string]any{},
		userData:      map[string]any{},
	}
}

// Surface is the central double-buffered entity: see package doc for the
// commit pipeline this type drives.
type Surface struct {
	mu sync.RWMutex

	store *Store

	// handle is an opaque slot for the wiring layer (objreg.Object, or a
	// test double) to stash whatever it needs to correlate this Surface
	// with its protocol object, without surface importing objreg.
	handle any

	parent   *Surface
	children []*Surface

	pendingStack []pendingStackEdit

	role     string
	roleData any

	alive *AliveTracker

	pending State
	current State

	// sync is the subsurface synchronized flag; meaningless when parent
	// is nil. pendingSync/pendingSyncSet buffer a pending write the same
	// way other persistent-but-double-buffered fields would, except sync
	// takes effect immediately on the owning surface's own next promote
	// (it does not need cached-state rotation since it only gates
	// traversal, not visible content).
	sync           bool
	pendingSync    bool
	pendingSyncSet bool

	// hasStagedCommit is set when Commit() resolved to "stage" (this
	// surface is a synchronized subsurface with a commit pending nearest
	// desynchronized ancestor promotion) and cleared once a promote
	// consumes it.
	hasStagedCommit bool

	cachedPending map[string]any
	cachedCurrent map[string]any

	commitHooks      []commitHook
	postCommitHooks  []postCommitHook
	destructionHooks []destructionHook
	nextHookID       uint64

	blockers []Blocker

	nextGeneration uint64
	readyFrames    []FrameCallback

	userData map[string]any
}

// SetHandle attaches the wiring layer's correlation value.
func (s *Surface) SetHandle(v any) {
	s.mu.Lock()
	s.handle = v
	s.mu.Unlock()
}

// Handle returns the value set by SetHandle, or nil.
func (s *Surface) Handle() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

// Alive reports whether the surface has not yet been destroyed.
func (s *Surface) Alive() bool {
	return s.alive.Alive()
}

// Destroy tears the surface down: unlinks it from its parent, runs
// destruction hooks, and flips it dead. Operations against a dead surface
// are no-ops, never errors, per spec's failure-mode rule.
func (s *Surface) Destroy() {
	if !s.alive.Alive() {
		return
	}
	s.alive.DestroyNotify()

	if parent := s.Parent(); parent != nil {
		parent.removeChild(s)
	}

	s.mu.Lock()
	hooks := s.destructionHooks
	s.destructionHooks = nil
	s.mu.Unlock()

	for _, h := range hooks {
		h.cb(s)
	}
}

// AddSubsurface creates child as a synchronized subsurface of s.
func (s *Surface) AddSubsurface(child *Surface) {
	s.addChild(child)
}

// Attach writes a (possibly nil, for detach) buffer reference plus the
// attach offset into pending state.
func (s *Surface) Attach(buf Buffer, dx, dy int32) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.HasBuffer = true
	s.pending.Buffer = buf
	s.pending.DX, s.pending.DY = dx, dy
	s.mu.Unlock()
}

// DamageSurface accumulates damage in surface-local coordinates.
func (s *Surface) DamageSurface(r region.Rect) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.SurfaceDamage.Add(r)
	s.mu.Unlock()
}

// DamageBuffer accumulates damage in buffer coordinates.
func (s *Surface) DamageBuffer(r region.Rect) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.BufferDamage.Add(r)
	s.mu.Unlock()
}

// SetOpaqueRegion writes the pending opaque region, replacing any
// previous value.
func (s *Surface) SetOpaqueRegion(reg region.Region) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.Opaque = region.New(reg.Rects()...)
	s.mu.Unlock()
}

// SetInputRegion writes the pending input region, replacing any previous
// value. The input region starts out empty, the same value an explicit
// empty region gives; callers that want "whole surface accepts input"
// should pass the surface bbox.
func (s *Surface) SetInputRegion(reg region.Region) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.Input = region.New(reg.Rects()...)
	s.mu.Unlock()
}

// SetBufferTransform writes the pending buffer transform.
func (s *Surface) SetBufferTransform(t Transform) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.BufferTransform = t
	s.mu.Unlock()
}

// SetBufferScale writes the pending buffer scale.
func (s *Surface) SetBufferScale(scale int32) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.BufferScale = scale
	s.mu.Unlock()
}

// AddFrameCallback queues a frame callback in pending state; it moves to
// the ready list on commit (pipeline step 8) and fires on next frame
// emission.
func (s *Surface) AddFrameCallback(callbackID uint32) {
	if !s.Alive() {
		return
	}
	s.mu.Lock()
	s.pending.Frames = append(s.pending.Frames, FrameCallback{CallbackID: callbackID})
	s.mu.Unlock()
}

// TakeReadyFrameCallbacks returns and clears the callbacks that became
// ready on a past commit, for the compositor to fire on the next frame
// emission.
func (s *Surface) TakeReadyFrameCallbacks() []FrameCallback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.readyFrames
	s.readyFrames = nil
	return out
}

// Current returns a snapshot copy of the surface's current state.
func (s *Surface) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Pending returns a snapshot copy of the surface's pending state, for
// inspection only — mutate it through the dedicated setters above, not
// through this copy.
func (s *Surface) Pending() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending.clone()
}

// WithStates calls f with the surface's cached-state maps (pending
// mutable, current read-only) and the current state, under the
// surface's lock. f must not call back into the surface (e.g. Commit) or
// it will deadlock.
func (s *Surface) WithStates(f func(cachedPending, cachedCurrent map[string]any, current *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.cachedPending, s.cachedCurrent, &s.current)
}

// AddBlocker registers a commit blocker. The next Commit call (and every
// subsequent one, until it resolves) checks it: Pending queues the
// commit, Cancelled drops it, Released lets it proceed.
func (s *Surface) AddBlocker(b Blocker) {
	s.mu.Lock()
	s.blockers = append(s.blockers, b)
	s.mu.Unlock()
}

// AddCommitHook registers a pre-commit hook, run in registration order
// with a mutable view of pending state (via the surface's own setters)
// before the atomic apply.
func (s *Surface) AddCommitHook(cb func(s *Surface) error) HookID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHookID++
	id := HookID(s.nextHookID)
	s.commitHooks = append(s.commitHooks, commitHook{id: id, cb: cb})
	return id
}

// AddPostCommitHook registers a hook run after cached-state rotation,
// with a read-only view of the new current state.
func (s *Surface) AddPostCommitHook(cb func(s *Surface)) HookID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHookID++
	id := HookID(s.nextHookID)
	s.postCommitHooks = append(s.postCommitHooks, postCommitHook{id: id, cb: cb})
	return id
}

// AddDestructionHook registers a hook run exactly once, when the surface
// is destroyed.
func (s *Surface) AddDestructionHook(cb func(s *Surface)) HookID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHookID++
	id := HookID(s.nextHookID)
	s.destructionHooks = append(s.destructionHooks, destructionHook{id: id, cb: cb})
	return id
}

// RemoveHook removes a commit, post-commit, or destruction hook by id.
// Safe to call from inside the hook's own callback; the removal takes
// effect starting with the next dispatch.
func (s *Surface) RemoveHook(id HookID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.commitHooks {
		if h.id == id {
			s.commitHooks = append(s.commitHooks[:i], s.commitHooks[i+1:]...)
			return nil
		}
	}
	for i, h := range s.postCommitHooks {
		if h.id == id {
			s.postCommitHooks = append(s.postCommitHooks[:i], s.postCommitHooks[i+1:]...)
			return nil
		}
	}
	for i, h := range s.destructionHooks {
		if h.id == id {
			s.destructionHooks = append(s.destructionHooks[:i], s.destructionHooks[i+1:]...)
			return nil
		}
	}
	return ErrHookNotFound
}

// UserData returns the value stored under key, or nil.
func (s *Surface) UserData(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userData[key]
}

// SetUserData stores v under key.
func (s *Surface) SetUserData(key string, v any) {
	s.mu.Lock()
	s.userData[key] = v
	s.mu.Unlock()
}
