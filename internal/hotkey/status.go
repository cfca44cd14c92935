package hotkey

import "sync"

// Status records the outcome of the last registration attempt for an action
// id, or for a synthetic aggregate id covering a batch.
type Status struct {
	ID       string `json:"id"`
	Shortcut string `json:"shortcut"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// StatusReporter is pure bookkeeping over the per-action statuses; it never
// fails. One entry per id, overwritten on every attempt.
type StatusReporter struct {
	mu       sync.Mutex
	statuses map[string]Status
}

func NewStatusReporter() *StatusReporter {
	return &StatusReporter{statuses: make(map[string]Status)}
}

// Set overwrites the status entry for id.
func (r *StatusReporter) Set(id, shortcut string, success bool, errCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = Status{ID: id, Shortcut: shortcut, Success: success, Error: errCode}
}

// Get returns the status for id, if any.
func (r *StatusReporter) Get(id string) (Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[id]
	return st, ok
}

// All returns every recorded status.
func (r *StatusReporter) All() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, 0, len(r.statuses))
	for _, st := range r.statuses {
		out = append(out, st)
	}
	return out
}

// Clear removes the entry for id; idempotent.
func (r *StatusReporter) Clear(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.statuses, id)
}

// ClearAll removes every entry.
func (r *StatusReporter) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = make(map[string]Status)
}
