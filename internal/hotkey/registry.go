package hotkey

import (
	"log"
	"strings"
	"sync"
)

// Event is the key transition delivered to an action handler.
type Event int

const (
	Pressed Event = iota
	Released
)

// Handler receives press/release events for one registered action. Handlers
// run on the backend's event goroutine and must not block; anything
// non-trivial is handed to the dispatcher.
type Handler func(Event)

// Entry is one row of the registration table.
type Entry struct {
	ID         string
	Descriptor string
}

// BatchItem is a single registration inside a RegisterBatch call.
type BatchItem struct {
	ID         string
	Descriptor string
	Handler    Handler
}

// Registry owns the live mapping from action ids to OS shortcut bindings.
// Register/unregister for the same id are mutually exclusive under the
// table lock, so no caller observes a half-replaced entry.
type Registry struct {
	mu       sync.Mutex
	backend  Backend
	statuses *StatusReporter
	entries  []Entry
}

// NewRegistry creates a registration table over the given backend. A nil
// backend makes every registration fail with ErrNotInitialized.
func NewRegistry(backend Backend, statuses *StatusReporter) *Registry {
	return &Registry{backend: backend, statuses: statuses}
}

// Initialized reports whether a usable backend is installed.
func (t *Registry) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.backend != nil
}

// Register parses and binds descriptor under id, replacing any existing
// entry for the same id. Parse failures never touch the OS layer.
func (t *Registry) Register(id, descriptor string, handler Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.registerLocked(id, descriptor, handler, true)
}

func (t *Registry) registerLocked(id, descriptor string, handler Handler, recordStatus bool) error {
	if t.backend == nil {
		return ErrNotInitialized
	}

	// Idempotent re-registration: never leave a stale duplicate behind.
	t.unregisterLocked(id)

	combo, err := Parse(descriptor)
	if err != nil {
		if recordStatus {
			t.statuses.Set(id, descriptor, false, CodeParseFailed)
		}
		return err
	}

	reg, err := t.backend.Register(combo)
	if err != nil {
		if recordStatus {
			t.statuses.Set(id, descriptor, false, codeFor(err))
		}
		return err
	}

	go listen(id, reg, handler)

	t.entries = append(t.entries, Entry{ID: id, Descriptor: descriptor})
	if recordStatus {
		t.statuses.Set(id, descriptor, true, "")
	}
	log.Printf("Registered shortcut [%s]: %s", id, descriptor)
	return nil
}

// listen converts the binding's channel events into handler calls. It exits
// when the binding is closed and its channels drain.
func listen(id string, reg RegisteredHotkey, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("RECOVERED FROM PANIC IN SHORTCUT LISTENER (%s): %v", id, r)
		}
	}()

	down, up := reg.Keydown(), reg.Keyup()
	for down != nil || up != nil {
		select {
		case _, ok := <-down:
			if !ok {
				down = nil
				continue
			}
			handler(Pressed)
		case _, ok := <-up:
			if !ok {
				up = nil
				continue
			}
			handler(Released)
		}
	}
}

// Unregister removes the entry for id, re-deriving the OS-level call from
// the stored descriptor string. No-op if id is absent.
func (t *Registry) Unregister(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unregisterLocked(id)
}

func (t *Registry) unregisterLocked(id string) {
	for i, e := range t.entries {
		if e.ID != id {
			continue
		}
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
		// Re-parse rather than trusting a cached handle; the stored string
		// is the single source of truth.
		if combo, err := Parse(e.Descriptor); err == nil && t.backend != nil {
			if err := t.backend.Unregister(combo); err != nil {
				log.Printf("Failed to unregister shortcut [%s]: %v", id, err)
			} else {
				log.Printf("Unregistered shortcut [%s]: %s", id, e.Descriptor)
			}
		}
		break
	}
	t.statuses.Clear(id)
}

// UnregisterAll removes every entry and clears the whole status table. Used
// for shutdown and for pausing all hotkeys while keeping configuration.
func (t *Registry) UnregisterAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.ID
	}
	for _, id := range ids {
		t.unregisterLocked(id)
	}
	t.statuses.ClearAll()
}

// UnregisterPrefix removes every entry whose id starts with prefix.
func (t *Registry) UnregisterPrefix(prefix string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var ids []string
	for _, e := range t.entries {
		if strings.HasPrefix(e.ID, prefix) {
			ids = append(ids, e.ID)
		}
	}
	for _, id := range ids {
		t.unregisterLocked(id)
	}
}

// RegisterBatch attempts each registration independently; one failure never
// aborts the rest. All failing descriptors are folded into one synthetic
// aggregate status entry so diagnostics show a single row instead of N.
func (t *Registry) RegisterBatch(aggregateID string, items []BatchItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.backend == nil {
		return ErrNotInitialized
	}

	t.statuses.Clear(aggregateID)

	var failed []string
	for _, item := range items {
		if err := t.registerLocked(item.ID, item.Descriptor, item.Handler, false); err != nil {
			log.Printf("Failed to register shortcut [%s] '%s': %v, continuing with the rest", item.ID, item.Descriptor, err)
			failed = append(failed, item.Descriptor)
		}
	}

	if len(failed) > 0 {
		t.statuses.Set(aggregateID, strings.Join(failed, ", "), false, CodeRegistrationFailed)
	}
	return nil
}

// Entries returns a snapshot of the registration table.
func (t *Registry) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
