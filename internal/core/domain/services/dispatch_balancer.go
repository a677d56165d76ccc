package services

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
)

// DefaultBalanceLimit is the spread allowed when nothing else is configured.
const DefaultBalanceLimit = 2

// ErrBalanceRejected is returned when taking a large order would push the
// courier too far ahead of the least loaded active courier. The order stays
// pending for somebody else.
var ErrBalanceRejected = errors.New("large order would exceed courier balance limit")

// BalanceSnapshot is the large-order load of one week as read from storage.
// Counts holds only couriers that accepted at least one large order that week.
type BalanceSnapshot struct {
	Week     kernel.WeekKey
	Counts   map[int64]int
	Inactive []int64
	ExemptID int64
}

// active returns the counts of couriers taking part in balancing.
func (s BalanceSnapshot) active() map[int64]int {
	skip := make(map[int64]struct{}, len(s.Inactive)+1)
	for _, id := range s.Inactive {
		skip[id] = struct{}{}
	}
	if s.ExemptID != 0 {
		skip[s.ExemptID] = struct{}{}
	}

	out := make(map[int64]int, len(s.Counts))
	for id, n := range s.Counts {
		if _, ok := skip[id]; !ok {
			out[id] = n
		}
	}
	return out
}

// BalanceInfo is a diagnostic view over one snapshot.
type BalanceInfo struct {
	Week       kernel.WeekKey
	HasOrders  bool
	Min        int
	Max        int
	Difference int
	Limit      int
	IsBalanced bool
	Active     map[int64]int
	Inactive   []int64
}

// DispatchBalancer keeps large orders evenly spread across active couriers by
// bounding max(count) - min(count) over the active set.
//
// Example:
//
//	b, _ := services.NewDispatchBalancer(2)
//	snap := services.BalanceSnapshot{Counts: map[int64]int{1: 3, 2: 1}}
//	b.MayAccept(snap, 2) // true: {3, 2}
//	b.MayAccept(snap, 1) // false: {4, 1}
type DispatchBalancer struct {
	limit int
}

func NewDispatchBalancer(limit int) (DispatchBalancer, error) {
	if limit < 0 {
		return DispatchBalancer{}, errs.NewValueIsInvalidErrorWithCause("balance limit", fmt.Errorf("%d is negative", limit))
	}
	return DispatchBalancer{limit: limit}, nil
}

func (b DispatchBalancer) Limit() int {
	return b.limit
}

// MayAccept reports whether courierID may take one more large order.
// With no active counts, or when the courier has no count yet this week,
// the answer is yes. Otherwise the courier's count is bumped by one and the
// resulting spread must not exceed the limit; a spread equal to it is fine.
func (b DispatchBalancer) MayAccept(s BalanceSnapshot, courierID int64) bool {
	active := s.active()
	current, ok := active[courierID]
	if len(active) == 0 || !ok {
		return true
	}

	active[courierID] = current + 1
	lo, hi := spread(active)
	return hi-lo <= b.limit
}

// Info summarizes the snapshot without side effects.
func (b DispatchBalancer) Info(s BalanceSnapshot) BalanceInfo {
	active := s.active()
	info := BalanceInfo{
		Week:       s.Week,
		Limit:      b.limit,
		IsBalanced: true,
		Active:     active,
		Inactive:   slices.Sorted(slices.Values(s.Inactive)),
	}
	if len(active) == 0 {
		return info
	}

	info.HasOrders = true
	info.Min, info.Max = spread(active)
	info.Difference = info.Max - info.Min
	info.IsBalanced = info.Difference <= b.limit
	return info
}

// Dispatch hands o to c if the status allows it and, for large orders, the
// balance does too. It reports whether the order counted as large so the
// caller can record the acceptance.
func (b DispatchBalancer) Dispatch(
	o *order.Order,
	c courier.Courier,
	s BalanceSnapshot,
	largeThreshold int,
	at time.Time,
) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if _, err := o.Status().Accept(); err != nil {
		return false, err
	}

	large := o.IsLarge(largeThreshold)
	if large && !b.MayAccept(s, c.ID()) {
		return large, ErrBalanceRejected
	}

	if err := o.Accept(c, at); err != nil {
		return large, err
	}
	return large, nil
}

func spread(counts map[int64]int) (lo, hi int) {
	values := slices.Collect(maps.Values(counts))
	return slices.Min(values), slices.Max(values)
}
