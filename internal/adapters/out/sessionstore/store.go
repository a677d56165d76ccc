// Package sessionstore keeps carts of customers in process memory.
package sessionstore

import (
	"sync"
	"time"

	"courierbot/internal/core/domain/model/cart"
)

type entry struct {
	cart    *cart.Cart
	touched time.Time
}

// Store is safe for concurrent use. Callers serialize work on one customer
// with the user lock; Store only protects its own map.
type Store struct {
	mu      sync.Mutex
	entries map[int64]entry
	now     func() time.Time
}

func New() *Store {
	return &Store{entries: make(map[int64]entry), now: time.Now}
}

func (s *Store) Get(userID int64) (*cart.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil, false
	}
	return e.cart, true
}

func (s *Store) Put(c *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[c.Customer().ID] = entry{cart: c, touched: s.now()}
}

func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Expire drops carts not changed for longer than idle and returns how many
// were removed.
func (s *Store) Expire(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
