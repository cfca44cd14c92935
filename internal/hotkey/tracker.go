package hotkey

import "sync"

// activationSet tracks which action ids are currently held down. OS
// auto-repeat resends press events without an intervening release, so the
// set is what distinguishes a first press from a repeat.
type activationSet struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newActivationSet() *activationSet {
	return &activationSet{held: make(map[string]struct{})}
}

// TryActivate atomically test-and-inserts the id. It returns true exactly
// once per press until a matching Deactivate; that is the first-press signal.
func (s *activationSet) TryActivate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.held[id]; ok {
		return false
	}
	s.held[id] = struct{}{}
	return true
}

// IsActive reports whether the id is currently held.
func (s *activationSet) IsActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.held[id]
	return ok
}

// Deactivate removes the id unconditionally; idempotent.
func (s *activationSet) Deactivate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, id)
}
