package hotkey

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// LegacyBackend registers shortcuts through golang.design/x/hotkey. It
// supports Windows and X11 on Linux; it does NOT support Wayland.
type LegacyBackend struct {
	mu             sync.Mutex
	registeredKeys map[string]*legacyHotkey
	displayServer  DisplayServer
}

// NewLegacyBackend creates a backend over golang.design/x/hotkey.
func NewLegacyBackend() *LegacyBackend {
	ds := DetectDisplayServer()
	log.Printf("Legacy backend: detected display server: %s", ds)

	return &LegacyBackend{
		registeredKeys: make(map[string]*legacyHotkey),
		displayServer:  ds,
	}
}

func (b *LegacyBackend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// IsAvailable reports whether this backend works on the current system.
func (b *LegacyBackend) IsAvailable() bool {
	switch b.displayServer {
	case DisplayServerWindows, DisplayServerX11:
		return true
	case DisplayServerWayland:
		log.Println("Legacy backend: not available on Wayland")
		return false
	default:
		log.Println("Legacy backend: unknown display server, assuming unavailable")
		return false
	}
}

// Register binds the combination, including the lock-modifier variants on
// X11 so the grab still matches with NumLock/CapsLock held.
func (b *LegacyBackend) Register(combo Combo) (RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.registeredKeys[combo.Canonical]; ok {
		log.Printf("Legacy backend: '%s' already registered, returning existing", combo.Canonical)
		return existing, nil
	}

	variants := comboVariants(combo.Mods)
	registered := make([]*hotkey.Hotkey, 0, len(variants))
	for _, mods := range variants {
		hk := hotkey.New(mods, combo.Key)
		if err := hk.Register(); err != nil {
			// Lock-state variants may legitimately collide with other
			// grabs; only the base combination is load-bearing.
			if len(registered) > 0 {
				log.Printf("Legacy backend: variant of '%s' unavailable: %v", combo.Canonical, err)
				continue
			}
			return nil, classifyRegisterError(combo.Canonical, err)
		}
		registered = append(registered, hk)
	}

	wrapped := &legacyHotkey{
		hotkeys:   registered,
		canonical: combo.Canonical,
		keydownCh: make(chan struct{}),
		keyupCh:   make(chan struct{}),
		stopCh:    make(chan struct{}),
	}
	wrapped.startEventConverters()

	b.registeredKeys[combo.Canonical] = wrapped
	log.Printf("Legacy backend: registered '%s' (%d variant(s))", combo.Canonical, len(registered))

	return wrapped, nil
}

// Unregister removes a single combination. Unknown combinations are a no-op.
func (b *LegacyBackend) Unregister(combo Combo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	hk, ok := b.registeredKeys[combo.Canonical]
	if !ok {
		log.Printf("Legacy backend: '%s' not found for unregister", combo.Canonical)
		return nil
	}

	if err := hk.Close(); err != nil {
		log.Printf("Legacy backend: error unregistering '%s': %v", combo.Canonical, err)
		return err
	}

	delete(b.registeredKeys, combo.Canonical)
	log.Printf("Legacy backend: unregistered '%s'", combo.Canonical)
	return nil
}

// UnregisterAll removes every registered combination.
func (b *LegacyBackend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Printf("Legacy backend: unregistering all %d hotkeys", len(b.registeredKeys))

	for canonical, hk := range b.registeredKeys {
		if err := hk.Close(); err != nil {
			log.Printf("Legacy backend: error unregistering '%s': %v", canonical, err)
		}
	}

	b.registeredKeys = make(map[string]*legacyHotkey)
	return nil
}

// classifyRegisterError distinguishes an already-bound combination from any
// other OS refusal.
func classifyRegisterError(canonical string, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "already registered") {
		return fmt.Errorf("%w: '%s': %v", ErrConflict, canonical, err)
	}
	return fmt.Errorf("%w: '%s': %v", ErrRegistrationFailed, canonical, err)
}

// legacyHotkey fans the event channels of one or more registered variants
// into a single keydown/keyup channel pair.
type legacyHotkey struct {
	hotkeys   []*hotkey.Hotkey
	canonical string
	keydownCh chan struct{}
	keyupCh   chan struct{}
	stopCh    chan struct{}
	closeOnce sync.Once
}

func (lh *legacyHotkey) Keydown() <-chan struct{} { return lh.keydownCh }
func (lh *legacyHotkey) Keyup() <-chan struct{}   { return lh.keyupCh }

// startEventConverters bridges the golang.design/x/hotkey event channels
// with the Backend interface, one goroutine per registered variant.
func (lh *legacyHotkey) startEventConverters() {
	for _, hk := range lh.hotkeys {
		go func(hk *hotkey.Hotkey) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("RECOVERED FROM PANIC IN LEGACY HOTKEY CONVERTER (%s): %v", lh.canonical, r)
				}
			}()

			for {
				select {
				case <-lh.stopCh:
					return
				case <-hk.Keydown():
					select {
					case lh.keydownCh <- struct{}{}:
					case <-lh.stopCh:
						return
					}
				case <-hk.Keyup():
					select {
					case lh.keyupCh <- struct{}{}:
					case <-lh.stopCh:
						return
					}
				}
			}
		}(hk)
	}
}

// Close unregisters every variant and shuts down the converters.
func (lh *legacyHotkey) Close() error {
	var firstErr error
	lh.closeOnce.Do(func() {
		close(lh.stopCh)
		for _, hk := range lh.hotkeys {
			if err := hk.Unregister(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to unregister '%s': %w", lh.canonical, err)
			}
		}
		close(lh.keydownCh)
		close(lh.keyupCh)
	})
	return firstErr
}

// SelectBackend chooses the backend for the current environment, or nil when
// global shortcuts cannot be supported (Wayland without a usable portal).
func SelectBackend() Backend {
	ds := DetectDisplayServer()

	switch ds {
	case DisplayServerWindows, DisplayServerX11:
		backend := NewLegacyBackend()
		if backend.IsAvailable() {
			log.Printf("Selected backend: %s for %s", backend.Name(), ds)
			return backend
		}
		log.Printf("Warning: legacy backend not available for %s", ds)
		return nil

	case DisplayServerWayland:
		if HasPortalSupport() {
			log.Println("Wayland detected with potential portal support; portal shortcuts are not implemented, hotkeys disabled")
			return nil
		}
		log.Println("Wayland detected without portal support - hotkeys unavailable")
		log.Println("Clipboard history will still work, but hotkeys are disabled")
		return nil

	default:
		log.Printf("Warning: unknown display server, hotkeys unavailable")
		return nil
	}
}
