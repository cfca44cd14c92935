package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeBinding is a RegisteredHotkey whose events tests inject directly.
type fakeBinding struct {
	down chan struct{}
	up   chan struct{}
	once sync.Once
}

func newFakeBinding() *fakeBinding {
	return &fakeBinding{
		down: make(chan struct{}, 4),
		up:   make(chan struct{}, 4),
	}
}

func (b *fakeBinding) Keydown() <-chan struct{} { return b.down }
func (b *fakeBinding) Keyup() <-chan struct{}   { return b.up }

func (b *fakeBinding) Close() error {
	b.once.Do(func() {
		close(b.down)
		close(b.up)
	})
	return nil
}

// fakeBackend records registrations keyed by canonical descriptor and can be
// primed to fail specific combinations.
type fakeBackend struct {
	mu            sync.Mutex
	bound         map[string]*fakeBinding
	failWith      map[string]error
	registerCalls int
	unregistered  []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		bound:    make(map[string]*fakeBinding),
		failWith: make(map[string]error),
	}
}

func (f *fakeBackend) Register(combo Combo) (RegisteredHotkey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	if err, ok := f.failWith[combo.Canonical]; ok {
		return nil, err
	}
	if _, ok := f.bound[combo.Canonical]; ok {
		return nil, fmt.Errorf("%w: %s", ErrConflict, combo.Canonical)
	}
	b := newFakeBinding()
	f.bound[combo.Canonical] = b
	return b, nil
}

func (f *fakeBackend) Unregister(combo Combo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, combo.Canonical)
	if b, ok := f.bound[combo.Canonical]; ok {
		b.Close()
		delete(f.bound, combo.Canonical)
	}
	return nil
}

func (f *fakeBackend) UnregisterAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for canonical, b := range f.bound {
		b.Close()
		delete(f.bound, canonical)
	}
	return nil
}

func (f *fakeBackend) Name() string      { return "fake" }
func (f *fakeBackend) IsAvailable() bool { return true }

func (f *fakeBackend) boundCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bound)
}

func (f *fakeBackend) binding(canonical string) *fakeBinding {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bound[canonical]
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerCalls
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", d)
}

func TestRegisterIdempotent(t *testing.T) {
	backend := newFakeBackend()
	reg := NewRegistry(backend, NewStatusReporter())

	if err := reg.Register("toggle", "Ctrl+Alt+A", func(Event) {}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register("toggle", "Ctrl+Alt+B", func(Event) {}); err != nil {
		t.Fatalf("second register: %v", err)
	}

	entries := reg.Entries()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry after re-register, got %d", len(entries))
	}
	if entries[0].Descriptor != "Ctrl+Alt+B" {
		t.Errorf("want entry bound to new descriptor, got %q", entries[0].Descriptor)
	}
	if backend.boundCount() != 1 {
		t.Errorf("want 1 live OS binding, got %d", backend.boundCount())
	}
	if backend.binding("Control+Alt+A") != nil {
		t.Error("old binding still live after re-register")
	}
	if backend.binding("Control+Alt+B") == nil {
		t.Error("new binding not live after re-register")
	}
}

func TestParseFailureNeverTouchesBackend(t *testing.T) {
	backend := newFakeBackend()
	statuses := NewStatusReporter()
	reg := NewRegistry(backend, statuses)

	err := reg.Register("toggle", "Ctrl+Frobnicate", func(Event) {})
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("want ErrParseFailed, got %v", err)
	}
	if backend.calls() != 0 {
		t.Errorf("backend touched on parse failure: %d calls", backend.calls())
	}
	st, ok := statuses.Get("toggle")
	if !ok {
		t.Fatal("no status recorded for failed registration")
	}
	if st.Success || st.Error != CodeParseFailed {
		t.Errorf("want failed status with %s, got %+v", CodeParseFailed, st)
	}
}

func TestRegisterNotInitialized(t *testing.T) {
	reg := NewRegistry(nil, NewStatusReporter())
	if err := reg.Register("toggle", "Alt+V", func(Event) {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
	if reg.Initialized() {
		t.Error("Initialized() true with nil backend")
	}
}

func TestConflictStatusCode(t *testing.T) {
	backend := newFakeBackend()
	backend.failWith["Alt+V"] = fmt.Errorf("%w: Alt+V", ErrConflict)
	statuses := NewStatusReporter()
	reg := NewRegistry(backend, statuses)

	err := reg.Register("toggle", "Alt+V", func(Event) {})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	st, _ := statuses.Get("toggle")
	if st.Error != CodeConflict {
		t.Errorf("want status code %s, got %q", CodeConflict, st.Error)
	}
	if len(reg.Entries()) != 0 {
		t.Error("failed registration left an entry behind")
	}
}

func TestUnregisterReParsesDescriptor(t *testing.T) {
	backend := newFakeBackend()
	reg := NewRegistry(backend, NewStatusReporter())

	if err := reg.Register("plain", "Ctrl+Shift+,", func(Event) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Unregister("plain")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.unregistered) != 1 || backend.unregistered[0] != "Control+Shift+Comma" {
		t.Errorf("want unregister of Control+Shift+Comma, got %v", backend.unregistered)
	}
}

func TestUnregisterAllEmptiesTableAndStatuses(t *testing.T) {
	backend := newFakeBackend()
	statuses := NewStatusReporter()
	reg := NewRegistry(backend, statuses)

	for _, d := range []struct{ id, desc string }{
		{"toggle", "Alt+V"},
		{"quickpaste", "Ctrl+Shift+V"},
		{"paste_plain_text", "Ctrl+Shift+P"},
	} {
		if err := reg.Register(d.id, d.desc, func(Event) {}); err != nil {
			t.Fatalf("register %s: %v", d.id, err)
		}
	}

	reg.UnregisterAll()

	if n := len(reg.Entries()); n != 0 {
		t.Errorf("want empty table, got %d entries", n)
	}
	if n := len(statuses.All()); n != 0 {
		t.Errorf("want empty status table, got %d entries", n)
	}
	if backend.boundCount() != 0 {
		t.Errorf("want no live bindings, got %d", backend.boundCount())
	}
}

func TestRegisterBatchIsolatesFailures(t *testing.T) {
	backend := newFakeBackend()
	backend.failWith["Control+5"] = fmt.Errorf("%w: Control+5", ErrRegistrationFailed)
	statuses := NewStatusReporter()
	reg := NewRegistry(backend, statuses)

	items := make([]BatchItem, 0, 9)
	for i := 1; i <= 9; i++ {
		items = append(items, BatchItem{
			ID:         fmt.Sprintf("number_%d", i),
			Descriptor: fmt.Sprintf("Ctrl+%d", i),
			Handler:    func(Event) {},
		})
	}

	if err := reg.RegisterBatch("number_shortcuts", items); err != nil {
		t.Fatalf("batch: %v", err)
	}

	if n := len(reg.Entries()); n != 8 {
		t.Fatalf("want 8 entries after one failure, got %d", n)
	}

	st, ok := statuses.Get("number_shortcuts")
	if !ok {
		t.Fatal("no aggregate status recorded")
	}
	if st.Success || st.Error != CodeRegistrationFailed {
		t.Errorf("want failed aggregate with %s, got %+v", CodeRegistrationFailed, st)
	}
	if st.Shortcut != "Ctrl+5" {
		t.Errorf("want failing descriptors in aggregate shortcut field, got %q", st.Shortcut)
	}

	// Batch members never get per-id statuses.
	if _, ok := statuses.Get("number_1"); ok {
		t.Error("batch member received an individual status entry")
	}
}

func TestRegisterBatchAllSuccessClearsAggregate(t *testing.T) {
	backend := newFakeBackend()
	statuses := NewStatusReporter()
	reg := NewRegistry(backend, statuses)

	// Prime a stale aggregate failure from an earlier pass.
	statuses.Set("number_shortcuts", "Ctrl+5", false, CodeRegistrationFailed)

	items := []BatchItem{
		{ID: "number_1", Descriptor: "Ctrl+1", Handler: func(Event) {}},
		{ID: "number_2", Descriptor: "Ctrl+2", Handler: func(Event) {}},
	}
	if err := reg.RegisterBatch("number_shortcuts", items); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if _, ok := statuses.Get("number_shortcuts"); ok {
		t.Error("stale aggregate status not cleared on fully successful batch")
	}
}

func TestListenerDeliversEvents(t *testing.T) {
	backend := newFakeBackend()
	reg := NewRegistry(backend, NewStatusReporter())

	events := make(chan Event, 4)
	if err := reg.Register("toggle", "Alt+V", func(ev Event) { events <- ev }); err != nil {
		t.Fatalf("register: %v", err)
	}

	b := backend.binding("Alt+V")
	if b == nil {
		t.Fatal("no binding for Alt+V")
	}

	b.down <- struct{}{}
	b.up <- struct{}{}

	for _, want := range []Event{Pressed, Released} {
		select {
		case got := <-events:
			if got != want {
				t.Fatalf("want %v, got %v", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}

func TestUnregisterPrefix(t *testing.T) {
	backend := newFakeBackend()
	reg := NewRegistry(backend, NewStatusReporter())

	for _, d := range []struct{ id, desc string }{
		{"number_1", "Ctrl+1"},
		{"number_2", "Ctrl+2"},
		{"toggle", "Alt+V"},
	} {
		if err := reg.Register(d.id, d.desc, func(Event) {}); err != nil {
			t.Fatalf("register %s: %v", d.id, err)
		}
	}

	reg.UnregisterPrefix("number_")

	entries := reg.Entries()
	if len(entries) != 1 || entries[0].ID != "toggle" {
		t.Errorf("want only toggle to survive, got %v", entries)
	}
}
