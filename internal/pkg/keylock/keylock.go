// Package keylock provides mutual exclusion per string key.
//
// A lock exists only while someone holds it or waits for it: it is created on
// first use and dropped when the last holder or waiter leaves, so the map does
// not grow with the number of keys ever seen.
package keylock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Locker is safe for concurrent use. The zero value is not usable; call New.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock blocks until the key is free or ctx is done. The returned func releases
// the lock and may be called more than once.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquireRef(key)

	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.releaseRef(key, e)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.releaseRef(key, e)
		})
	}, nil
}

// Do runs fn while holding the key. The lock is released on every exit path,
// panics included.
func (l *Locker) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(ctx)
}

// Len returns the number of keys currently held or waited on.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func (l *Locker) acquireRef(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) releaseRef(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
