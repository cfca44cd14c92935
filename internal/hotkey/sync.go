package hotkey

import (
	"context"
	"log"
	"sync"
)

// Activation is the desired or current registration state of the whole
// shortcut set.
type Activation int

const (
	Active Activation = iota
	Inactive
)

func (a Activation) String() string {
	if a == Active {
		return "active"
	}
	return "inactive"
}

// synchronizer reconciles desired activation against current activation.
// A single long-lived convergence goroutine consumes requests through a
// size-1 wake channel; any number of rapid requests collapse into the pass
// already scheduled, and the final applied state always matches the most
// recently requested one (last-desired-wins, not FIFO).
//
// Invariants: syncing implies the convergence goroutine has a pass pending
// or running; whenever syncing is false, current == desired.
type synchronizer struct {
	mu      sync.Mutex
	current Activation
	desired Activation
	syncing bool

	wake  chan struct{}
	apply func(Activation)
}

func newSynchronizer(apply func(Activation)) *synchronizer {
	return &synchronizer{
		current: Active,
		desired: Active,
		wake:    make(chan struct{}, 1),
		apply:   apply,
	}
}

// Request records the new desired activation. If a convergence pass is
// already in flight it will observe the update on its next iteration;
// otherwise one is scheduled, unless the state already matches.
func (s *synchronizer) Request(desired Activation) {
	s.mu.Lock()
	s.desired = desired

	if s.syncing || s.current == s.desired {
		s.mu.Unlock()
		return
	}
	s.syncing = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// run is the convergence loop. Activation is applied outside the state lock;
// the OS registration calls must never run under it.
func (s *synchronizer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			want := s.desired
			s.mu.Unlock()

			s.apply(want)

			s.mu.Lock()
			s.current = want
			if s.current == s.desired {
				s.syncing = false
				s.mu.Unlock()
				log.Printf("Hotkey activation converged: %s", want)
				break
			}
			s.mu.Unlock()
		}
	}
}

// snapshot returns the current state triple for diagnostics and tests.
func (s *synchronizer) snapshot() (current, desired Activation, syncing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.desired, s.syncing
}
