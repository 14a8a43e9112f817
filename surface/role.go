package surface

import "errors"

// ErrAlreadyRoled is returned by SetRole when the surface already carries
// a different role. Setting the same role again is not an error — it is
// idempotent success, per spec.
var ErrAlreadyRoled = errors.New("surface: already has a different role")

// RoleCommitFunc is the capability a role registers: invoked once per
// commit (pipeline step 6) on any surface holding that role, after the
// atomic apply, cached-state rotation, and post-commit hooks. Typical use:
// xdg_surface compares acked-vs-current configure state; layer-shell
// re-emits a configure if geometry changed.
type RoleCommitFunc func(s *Surface)

// RoleRegistry maps a role name to its commit callback, replacing a
// virtual-dispatch hierarchy with a name-indexed table populated once at
// extension-registration time.
type RoleRegistry struct {
	callbacks map[string]RoleCommitFunc
}

// NewRoleRegistry returns an empty registry.
func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{callbacks: map[string]RoleCommitFunc{}}
}

// Register installs the commit callback for a role name. Calling it twice
// for the same name replaces the previous callback — used by tests and by
// extensions that want to override a default no-op registration.
func (r *RoleRegistry) Register(role string, cb RoleCommitFunc) {
	r.callbacks[role] = cb
}

func (r *RoleRegistry) invoke(s *Surface) {
	if r == nil {
		return
	}
	role := s.Role()
	if role == "" {
		return
	}
	if cb, ok := r.callbacks[role]; ok && cb != nil {
		cb(s)
	}
}

// Well-known role names. Extensions may register additional ones.
const (
	RoleXDGToplevel = "xdg_toplevel"
	RoleXDGPopup    = "xdg_popup"
	RoleSubsurface  = "subsurface"
	RoleCursor      = "cursor"
	RoleDnDIcon     = "dnd_icon"
	RoleLayer       = "layer"
)

// SetRole assigns role to the surface if it has none yet. Re-asserting
// the same role is idempotent success. Asserting a different role than
// one already set returns ErrAlreadyRoled; the role remains whatever it
// was before the call.
func (s *Surface) SetRole(role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role == "" {
		s.role = role
		return nil
	}
	if s.role == role {
		return nil
	}
	return ErrAlreadyRoled
}

// Role returns the surface's role name, or "" if none has been set.
func (s *Surface) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// HasRole reports whether role has been assigned to this surface.
func (s *Surface) HasRole(role string) bool {
	return s.Role() == role
}

// RoleData returns the role-specific state attached via SetRoleData, or
// nil if none has been attached. Role-specific structs (xdg_toplevel
// state, positioner snapshot, layer geometry, ...) live in package
// xdgshell/seat/space; surface only stores the opaque pointer.
func (s *Surface) RoleData() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleData
}

// SetRoleData attaches role-specific state, replacing any previous value.
func (s *Surface) SetRoleData(v any) {
	s.mu.Lock()
	s.roleData = v
	s.mu.Unlock()
}
