package engine

import (
	"sort"
	"sync"
)

// ListenerID identifies a listener registered with an Emitter.
// Go functions are not comparable, so Off takes the ID returned by On
// instead of the listener itself.
type ListenerID uint64

// Listener receives the payload of an emitted event.
type Listener func(data any)

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Emitter is a named-event dispatcher with on/off semantics.
// Listeners run synchronously on the emitting goroutine, in registration
// order, outside the emitter's lock.
type Emitter struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[string][]listenerEntry
}

// On registers fn for event and returns an ID for Off.
func (e *Emitter) On(event string, fn Listener) ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string][]listenerEntry)
	}
	e.nextID++
	e.listeners[event] = append(e.listeners[event], listenerEntry{id: e.nextID, fn: fn})
	return e.nextID
}

// Off removes a listener. It returns false if the listener was not registered
// for event, which makes repeated removal harmless.
func (e *Emitter) Off(event string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.listeners[event]
	for i, entry := range entries {
		if entry.id == id {
			rest := make([]listenerEntry, 0, len(entries)-1)
			rest = append(rest, entries[:i]...)
			rest = append(rest, entries[i+1:]...)
			if len(rest) == 0 {
				delete(e.listeners, event)
			} else {
				e.listeners[event] = rest
			}
			return true
		}
	}
	return false
}

// Emit calls every listener registered for event with data.
func (e *Emitter) Emit(event string, data any) {
	e.mu.Lock()
	entries := e.listeners[event]
	e.mu.Unlock()

	// entries is never mutated in place, so iterating the captured slice
	// is safe while listeners call On/Off.
	for _, entry := range entries {
		entry.fn(data)
	}
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Events returns the names of events that have at least one listener.
func (e *Emitter) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
