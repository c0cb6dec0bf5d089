package core

import "sync"

// Observable holds a value and notifies listeners when it changes.
// Value and AddListener are safe for concurrent use; listeners run on the
// goroutine that calls Set.
type Observable[T comparable] struct {
	mu        sync.RWMutex
	value     T
	listeners map[int]func(T)
	nextID    int
}

// NewObservable creates an observable with an initial value.
func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set stores value and notifies listeners if it differs from the current one.
// It reports whether the value changed.
func (o *Observable[T]) Set(value T) bool {
	o.mu.Lock()
	if o.value == value {
		o.mu.Unlock()
		return false
	}
	o.value = value
	listeners := make([]func(T), 0, len(o.listeners))
	for id := 0; id < o.nextID; id++ {
		if l, ok := o.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
	return true
}

// AddListener registers fn and returns a function that removes it.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// ReadOnly returns a view of o that cannot change its value.
func (o *Observable[T]) ReadOnly() ReadOnlyObservable[T] {
	return readOnlyObservable[T]{o: o}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.listeners)
}

// ReadOnlyObservable is the read side of an Observable. Owners hand it out so
// that only they can change the value.
type ReadOnlyObservable[T comparable] interface {
	Value() T
	AddListener(fn func(T)) func()
}

type readOnlyObservable[T comparable] struct {
	o *Observable[T]
}

func (r readOnlyObservable[T]) Value() T {
	return r.o.Value()
}

func (r readOnlyObservable[T]) AddListener(fn func(T)) func() {
	return r.o.AddListener(fn)
}
