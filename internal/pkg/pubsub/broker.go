// Package pubsub is a synchronous in-process publish/subscribe store.
// Publishers own the state; subscribers are called on Publish and react
// immediately instead of polling.
package pubsub

import "sync"

// Broker fans each published event out to the current subscribers.
type Broker[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(T)
}

// NewBroker returns an empty broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Broker[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers event to every subscriber on the caller's goroutine.
// Subscribers must not call Subscribe or unsubscribe from inside fn.
func (b *Broker[T]) Publish(event T) {
	b.mu.RLock()
	subs := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}
