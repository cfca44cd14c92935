package hotkey

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherRunsTasks(t *testing.T) {
	d := newDispatcher(2, 8)
	defer d.Close()

	done := make(chan struct{})
	if !d.Submit(func() { close(done) }) {
		t.Fatal("submit rejected with empty queue")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := newDispatcher(1, 1)

	gate := make(chan struct{})
	d.Submit(func() { <-gate }) // occupies the worker
	waitFor(t, 2*time.Second, func() bool {
		return d.Submit(func() {}) // fills the queue slot once the worker picked up the first task
	})

	if d.Submit(func() { t.Error("dropped task ran") }) {
		t.Error("submit succeeded with a full queue")
	}

	close(gate)
	d.Close()
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := newDispatcher(1, 4)
	defer d.Close()

	var ran atomic.Bool
	d.Submit(func() { panic("boom") })
	d.Submit(func() { ran.Store(true) })

	waitFor(t, 2*time.Second, ran.Load)
}

func TestDispatcherSubmitAfterClose(t *testing.T) {
	d := newDispatcher(1, 4)
	d.Close()
	if d.Submit(func() {}) {
		t.Error("submit succeeded after close")
	}
}
