package highlight

import "slices"

// Change describes the engine state after a mutating call.
type Change struct {
	ActiveIndex   int
	MatchCount    int
	Query         string
	Contexts      []Context
	ContextCounts []int
}

// Listener receives a Change after every mutating call, including searches
// for a blank query.
type Listener func(Change)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it.
func (e *Engine) Subscribe(fn Listener) func() {
	e.ensureOpen()
	if fn == nil {
		return func() {}
	}
	e.nextListenerID++
	id := e.nextListenerID
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(l listenerEntry) bool { return l.id == id })
	}
}

// Snapshot returns the current state as a Change.
func (e *Engine) Snapshot() Change {
	e.ensureOpen()
	return e.snapshot()
}

func (e *Engine) snapshot() Change {
	return Change{
		ActiveIndex:   e.active,
		MatchCount:    len(e.matches),
		Query:         e.query,
		Contexts:      slices.Clone(e.contexts),
		ContextCounts: slices.Clone(e.counts),
	}
}

func (e *Engine) notify() {
	if len(e.listeners) == 0 {
		return
	}
	change := e.snapshot()
	// Listeners may unsubscribe while being called.
	for _, l := range slices.Clone(e.listeners) {
		l.fn(change)
	}
}
