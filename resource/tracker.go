package resource

import (
	"errors"
	"sync"
)

var (
	ErrUnknownHandle = errors.New("resource: unknown handle")
	ErrAlreadyFreed  = errors.New("resource: handle already freed")
	ErrTrackerClosed = errors.New("resource: tracker closed")
)

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventAcquired EventType = iota
	EventReleased
)

// Event describes one handle lifecycle transition.
type Event struct {
	Kind string
	ID   uint64
	Type EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Tracker accounts for live native handles. Hosts register each handle
// they hand out with Acquire and record its release with Release; the
// counters and the live set make leaks and double frees observable.
type Tracker struct {
	mu        sync.Mutex
	live      map[uint64]string
	next      uint64
	acquired  uint64
	released  uint64
	observers []Observer
	closed    bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[uint64]string)}
}

// Acquire registers a new handle of the given kind and returns its ID.
// ID 0 is never issued.
func (t *Tracker) Acquire(kind string) uint64 {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	t.next++
	id := t.next
	t.live[id] = kind
	t.acquired++
	t.mu.Unlock()

	t.notify(Event{Kind: kind, ID: id, Type: EventAcquired})
	return id
}

// Release records the release of a handle. Releasing an unknown or
// already-released handle is an error so hosts can surface double frees.
func (t *Tracker) Release(id uint64) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTrackerClosed
	}
	kind, ok := t.live[id]
	if !ok {
		t.mu.Unlock()
		if id == 0 || id > t.next {
			return ErrUnknownHandle
		}
		return ErrAlreadyFreed
	}
	delete(t.live, id)
	t.released++
	t.mu.Unlock()

	t.notify(Event{Kind: kind, ID: id, Type: EventReleased})
	return nil
}

// Live returns the number of handles acquired but not yet released.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LiveKinds returns the kind of each live handle, for leak diagnostics.
func (t *Tracker) LiveKinds() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	kinds := make([]string, 0, len(t.live))
	for _, k := range t.live {
		kinds = append(kinds, k)
	}
	return kinds
}

// Acquired returns the total number of handles ever registered.
func (t *Tracker) Acquired() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.acquired
}

// Released returns the total number of handles released.
func (t *Tracker) Released() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// Subscribe adds an observer for lifecycle events.
func (t *Tracker) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Tracker) Unsubscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close discards the live set and stops accepting operations.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.live = nil
	t.observers = nil
	return nil
}

func (t *Tracker) notify(e Event) {
	t.mu.Lock()
	observers := make([]Observer, len(t.observers))
	copy(observers, t.observers)
	t.mu.Unlock()
	for _, o := range observers {
		o.OnHandleEvent(e)
	}
}
