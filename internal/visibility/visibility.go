// Package visibility reports whether anyone is currently looking at the live
// dashboard, and notifies subscribers when that changes.
package visibility

import (
	"sort"
	"sync"
)

// Signal is the host's visibility state.
type Signal interface {
	// Visible reports whether the dashboard is currently visible.
	Visible() bool

	// Subscribe registers fn for hidden<->visible transitions.
	// The returned cancel func deregisters it and is safe to call twice.
	Subscribe(fn func(visible bool)) (cancel func())
}

// Static is a Signal that never changes.
type Static bool

func (s Static) Visible() bool { return bool(s) }

func (Static) Subscribe(func(bool)) func() { return func() {} }

// Tracker aggregates the visibility of individual viewers. The dashboard is
// visible while at least one registered viewer reports visible.
type Tracker struct {
	// notifyMu serializes transitions with their notifications, so
	// subscribers see changes in the order they were applied.
	notifyMu sync.Mutex

	mu      sync.Mutex
	viewers map[string]bool
	subs    map[int]func(bool)
	nextID  int
	visible bool
}

// NewTracker returns a Tracker with no viewers, so it starts hidden.
func NewTracker() *Tracker {
	return &Tracker{
		viewers: make(map[string]bool),
		subs:    make(map[int]func(bool)),
	}
}

// SetViewer records whether viewer id is currently visible.
// Subscribers are notified before it returns.
func (t *Tracker) SetViewer(id string, visible bool) {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()
	t.mu.Lock()
	t.viewers[id] = visible
	t.recompute()
}

// RemoveViewer forgets viewer id.
func (t *Tracker) RemoveViewer(id string) {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()
	t.mu.Lock()
	delete(t.viewers, id)
	t.recompute()
}

// Viewers returns the ids of registered viewers.
func (t *Tracker) Viewers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.viewers))
	for id := range t.viewers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Visible implements Signal.
func (t *Tracker) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Subscribe implements Signal.
func (t *Tracker) Subscribe(fn func(visible bool)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// recompute must be called with t.notifyMu and t.mu held; it releases t.mu
// before notifying subscribers. Subscribers must not call SetViewer or
// RemoveViewer.
func (t *Tracker) recompute() {
	visible := false
	for _, v := range t.viewers {
		if v {
			visible = true
			break
		}
	}
	if visible == t.visible {
		t.mu.Unlock()
		return
	}
	t.visible = visible
	fns := make([]func(bool), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(visible)
	}
}

var _ Signal = (*Tracker)(nil)
var _ Signal = Static(true)
