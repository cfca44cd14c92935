package hotkey

import "errors"

// Sentinel errors for the registration pipeline. Callers classify with
// errors.Is; the status table stores the matching code string.
var (
	// ErrNotInitialized is returned when registration is attempted before a
	// usable backend has been installed (e.g. Wayland without support).
	ErrNotInitialized = errors.New("hotkey service not initialized")

	// ErrParseFailed is returned when a descriptor cannot be canonicalized
	// or its canonical form is rejected by the platform grammar.
	ErrParseFailed = errors.New("failed to parse shortcut descriptor")

	// ErrConflict is returned when the OS reports the combination is
	// already bound by another registrant.
	ErrConflict = errors.New("shortcut already registered elsewhere")

	// ErrRegistrationFailed covers any other OS-level registration failure.
	ErrRegistrationFailed = errors.New("failed to register shortcut")
)

// Status error codes surfaced to the diagnostics UI.
const (
	CodeParseFailed        = "PARSE_FAILED"
	CodeConflict           = "CONFLICT"
	CodeRegistrationFailed = "REGISTRATION_FAILED"
)

// codeFor maps a registration error to its status code.
func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrParseFailed):
		return CodeParseFailed
	case errors.Is(err, ErrConflict):
		return CodeConflict
	default:
		return CodeRegistrationFailed
	}
}
