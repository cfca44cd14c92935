package hotkey

import "testing"

func TestTrackerFirstPressVsRepeat(t *testing.T) {
	keys := newActivationSet()

	if !keys.TryActivate("paste_plain_text") {
		t.Fatal("first press should activate")
	}
	if keys.TryActivate("paste_plain_text") {
		t.Fatal("repeat press must not re-activate")
	}
	if !keys.IsActive("paste_plain_text") {
		t.Fatal("id should be held")
	}

	keys.Deactivate("paste_plain_text")
	if keys.IsActive("paste_plain_text") {
		t.Fatal("id still held after release")
	}
	if !keys.TryActivate("paste_plain_text") {
		t.Fatal("press after release should activate again")
	}
}

func TestTrackerIdsIndependent(t *testing.T) {
	keys := newActivationSet()
	keys.TryActivate("number_1")
	if keys.IsActive("number_2") {
		t.Fatal("unrelated id reported as held")
	}
	if !keys.TryActivate("number_2") {
		t.Fatal("second id should activate independently")
	}
}

func TestTrackerDeactivateIdempotent(t *testing.T) {
	keys := newActivationSet()
	keys.Deactivate("never_pressed")
	keys.TryActivate("toggle")
	keys.Deactivate("toggle")
	keys.Deactivate("toggle")
	if keys.IsActive("toggle") {
		t.Fatal("id held after double release")
	}
}
