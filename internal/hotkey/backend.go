package hotkey

// Backend abstracts OS-level shortcut registration so the registry can be
// exercised against a fake in tests and so alternative display servers can
// be supported without touching the engine.
type Backend interface {
	// Register binds an already-parsed combination. The backend keys its
	// internal bookkeeping by the combo's canonical string.
	Register(combo Combo) (RegisteredHotkey, error)

	// Unregister removes a previously registered combination. Unknown
	// combinations are a no-op.
	Unregister(combo Combo) error

	// UnregisterAll removes every combination registered by this backend.
	UnregisterAll() error

	// Name returns a human-readable name for logging.
	Name() string

	// IsAvailable reports whether this backend can be used on the current
	// system.
	IsAvailable() bool
}

// RegisteredHotkey is a live OS shortcut binding. Both channels are closed
// when the binding is closed.
type RegisteredHotkey interface {
	// Keydown receives an event for every press, including OS auto-repeat.
	Keydown() <-chan struct{}

	// Keyup receives an event when the combination is released.
	Keyup() <-chan struct{}

	// Close unregisters the binding and releases its resources.
	Close() error
}
