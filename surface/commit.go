package surface

import "github.com/gogpu/wlcompositor/region"

// Commit runs the full commit pipeline for a wl_surface.commit request on
// s: blocker check, pre-commit hooks, then the atomic apply together with
// cached-state rotation, damage accumulation and frame-callback
// promotion, then post-commit hooks, the role callback, and buffer
// release accounting — in that fixed order. Post-commit hooks and the
// role callback therefore already see this commit's damage and ready
// frame callbacks. Synchronized descendants with a staged commit are
// then promoted the same way.
//
// A non-nil return means a pre-commit hook requested the commit be
// aborted; this surface's pending damage and attached buffer have already
// been discarded (see discardPending) and the caller is expected to post
// a protocol error on the corresponding wire object.
func (s *Surface) Commit() error {
	if !s.Alive() {
		return nil
	}

	if queued, cancelled := s.resolveBlockers(); cancelled {
		s.discardPending()
		return nil
	} else if queued {
		return nil
	}

	if err := s.runPreCommitHooks(); err != nil {
		s.discardPending()
		return err
	}

	// Hooks may have registered new blockers; honor them before applying.
	if queued, cancelled := s.resolveBlockers(); cancelled {
		s.discardPending()
		return nil
	} else if queued {
		return nil
	}

	if parent := s.Parent(); parent != nil && s.Synchronized() {
		s.mu.Lock()
		s.hasStagedCommit = true
		s.mu.Unlock()
		return nil
	}

	s.promote()
	return nil
}

// resolveBlockers polls every registered blocker. If any is Pending, the
// commit is queued (blockers stay registered). If any is Cancelled, the
// commit is dropped and blockers are cleared. Otherwise (all Released,
// or none registered) blockers are cleared and the commit proceeds.
func (s *Surface) resolveBlockers() (queued, cancelled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blockers {
		switch b.State() {
		case BlockerPending:
			return true, false
		case BlockerCancelled:
			s.blockers = nil
			return false, true
		}
	}
	s.blockers = nil
	return false, false
}

func (s *Surface) runPreCommitHooks() error {
	s.mu.RLock()
	hooks := append([]commitHook(nil), s.commitHooks...)
	s.mu.RUnlock()

	for _, h := range hooks {
		if err := h.cb(s); err != nil {
			return err
		}
	}
	return nil
}

// discardPending drops pending damage and the pending buffer attach
// without promoting them: used on blocker cancellation and pre-commit
// hook abort. The previously attached pending buffer (if any) is released
// since it never becomes current. Other pending fields (regions,
// transform, scale, frame callbacks, subsurface position and stacking
// edits) are not cleared and take effect with the next applied commit.
func (s *Surface) discardPending() {
	s.mu.Lock()
	buf := s.pending.Buffer
	hasBuf := s.pending.HasBuffer
	s.pending.resetDamage()
	s.mu.Unlock()

	if hasBuf && buf != nil {
		buf.Release()
	}
}

// promote is the per-node body of pipeline steps 3-9, applied to s, then
// recursively to every synchronized child that has a staged commit
// waiting.
func (s *Surface) promote() {
	s.mu.Lock()

	// Step 3 (this node's share of the atomic apply): swap the
	// persistent-but-buffered fields and resolve the pending stacking
	// order.
	oldBuffer := s.current.Buffer
	if s.pending.HasBuffer {
		s.current.Buffer = s.pending.Buffer
	}
	s.current.BufferTransform = s.pending.BufferTransform
	s.current.BufferScale = s.pending.BufferScale
	if s.pending.BufferScale == 0 {
		s.current.BufferScale = 1
	}
	s.current.Opaque = region.New(s.pending.Opaque.Rects()...)
	s.current.Input = region.New(s.pending.Input.Rects()...)
	s.current.SubX, s.current.SubY = s.pending.SubX, s.pending.SubY

	if s.pendingSyncSet {
		s.sync = s.pendingSync
		s.pendingSyncSet = false
	}

	children := applyStackEdits(s.children, s.pendingStack)
	s.children = children
	s.pendingStack = nil

	// Step 4: cached-state rotation.
	for k, v := range s.cachedPending {
		s.cachedCurrent[k] = v
	}

	hadNewBuffer := s.pending.HasBuffer
	if !hadNewBuffer {
		// Nothing replaced the current buffer this commit; no release is due.
		oldBuffer = nil
	} else if oldBuffer == s.current.Buffer {
		// The same buffer was reattached; it still holds a live reference.
		oldBuffer = nil
	}

	// Step 7: damage accumulation (surface-coords translated into
	// buffer-coords, unioned with buffer-coord damage).
	translated := translateDamage(s.pending.SurfaceDamage, s.current.BufferTransform, s.current.BufferScale)
	merged := region.Region{}
	merged.Add(s.current.BufferDamage.Rects()...)
	merged.Add(translated.Rects()...)
	merged.Add(s.pending.BufferDamage.Rects()...)
	s.current.BufferDamage = merged
	s.current.SurfaceDamage = region.New(s.pending.SurfaceDamage.Rects()...)

	// Step 8: frame callbacks move to the ready list.
	s.readyFrames = append(s.readyFrames, s.pending.Frames...)
	s.pending.Frames = nil

	s.nextGeneration++
	s.current.Generation = s.nextGeneration

	s.pending.resetDamage()
	s.hasStagedCommit = false

	store := s.store
	s.mu.Unlock()

	// Step 5: post-commit hooks (read-only view of new current state).
	s.mu.RLock()
	postHooks := append([]postCommitHook(nil), s.postCommitHooks...)
	s.mu.RUnlock()
	for _, h := range postHooks {
		h.cb(s)
	}

	// Step 6: role callback.
	if store != nil {
		store.roles.invoke(s)
	}

	// Step 9: buffer release accounting — exactly once, for the buffer
	// this commit displaced, once a new one has taken its place.
	if hadNewBuffer && oldBuffer != nil {
		oldBuffer.Release()
	}

	// Recurse into synchronized children with a staged commit waiting.
	for _, child := range s.Children() {
		if child.Synchronized() && child.hasStagedPromotable() {
			child.promote()
		}
	}
}

func (s *Surface) hasStagedPromotable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasStagedCommit
}

// translateDamage maps surface-local damage into buffer coordinates by
// multiplying by the integer scale. transform is not applied: rotated or
// flipped buffers get their surface damage scaled but not rotated or
// mirrored.
func translateDamage(surfaceDamage region.Region, transform Transform, scale int32) region.Region {
	if scale <= 0 {
		scale = 1
	}
	var out region.Region
	for _, r := range surfaceDamage.Rects() {
		out.Add(region.Rect{X: r.X * scale, Y: r.Y * scale, W: r.W * scale, H: r.H * scale})
	}
	return out
}
