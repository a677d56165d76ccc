// Package memory is an in-process implementation of the storage ports. It is
// used with STORAGE_DRIVER=memory and by use case tests. Writes made inside a
// unit of work are buffered and applied on Commit against a copy of the
// committed state, which replaces it only if every write succeeded.
package memory

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
)

type orderKey struct {
	workday   string
	displayNo int
}

func keyOf(workday kernel.WorkdayKey, displayNo int) orderKey {
	return orderKey{workday: workday.String(), displayNo: displayNo}
}

type state struct {
	orders       map[orderKey]order.Snapshot
	counts       map[string]map[int64]int
	inactive     map[int64]struct{}
	balanceLimit *int
	intakeOpen   *bool
}

func newState() *state {
	return &state{
		orders:   make(map[orderKey]order.Snapshot),
		counts:   make(map[string]map[int64]int),
		inactive: make(map[int64]struct{}),
	}
}

func (s *state) clone() *state {
	c := &state{
		orders:       maps.Clone(s.orders),
		counts:       make(map[string]map[int64]int, len(s.counts)),
		inactive:     maps.Clone(s.inactive),
		balanceLimit: s.balanceLimit,
		intakeOpen:   s.intakeOpen,
	}
	for week, m := range s.counts {
		c.counts[week] = maps.Clone(m)
	}
	return c
}

// sortedKeys returns order keys within [from, to] in workday, display order.
func (s *state) sortedKeys(from, to string) []orderKey {
	keys := make([]orderKey, 0, len(s.orders))
	for k := range s.orders {
		if k.workday >= from && k.workday <= to {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b orderKey) int {
		if c := cmp.Compare(a.workday, b.workday); c != 0 {
			return c
		}
		return cmp.Compare(a.displayNo, b.displayNo)
	})
	return keys
}

// Store holds committed state shared by every unit of work created from it.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// read runs fn against committed state.
func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(s.state)
}

// apply runs ops in order against a copy and publishes the copy only when
// all of them succeed.
func (s *Store) apply(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, o := range ops {
		if err := o(next); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}
