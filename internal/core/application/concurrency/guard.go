// Package concurrency serializes mutations that share state.
//
// Keys:
//
//	order:<workday>#<display_no>  transitions of one order
//	workday:<workday>             display number assignment
//	user:<id>                     a customer's session
//	dispatch                      large-order counts
//
// Nesting order is order → dispatch and user → workday; no other nesting is
// allowed.
package concurrency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/keylock"
)

// ErrLockTimeout is returned when a lock is not obtained within the guard's timeout.
var ErrLockTimeout = errors.New("timed out waiting for lock")

const dispatchKey = "dispatch"

// Guard runs functions under process-local keyed locks. Waiting for a lock is
// bounded by the timeout; the function itself runs with the caller's context.
type Guard struct {
	locks   *keylock.Locker
	timeout time.Duration
}

func NewGuard(timeout time.Duration) *Guard {
	return &Guard{locks: keylock.New(), timeout: timeout}
}

func (g *Guard) WithOrderLock(ctx context.Context, workday kernel.WorkdayKey, displayNo int, fn func(context.Context) error) error {
	return g.with(ctx, "order:"+workday.String()+"#"+strconv.Itoa(displayNo), fn)
}

func (g *Guard) WithWorkdayLock(ctx context.Context, workday kernel.WorkdayKey, fn func(context.Context) error) error {
	return g.with(ctx, "workday:"+workday.String(), fn)
}

func (g *Guard) WithUserLock(ctx context.Context, userID int64, fn func(context.Context) error) error {
	return g.with(ctx, "user:"+strconv.FormatInt(userID, 10), fn)
}

// WithDispatchLock covers reading and incrementing large-order counts. It is
// only taken while already holding an order lock.
func (g *Guard) WithDispatchLock(ctx context.Context, fn func(context.Context) error) error {
	return g.with(ctx, dispatchKey, fn)
}

// Held returns the number of keys currently locked or waited on.
func (g *Guard) Held() int {
	return g.locks.Len()
}

func (g *Guard) with(ctx context.Context, key string, fn func(context.Context) error) error {
	waitCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	unlock, err := g.locks.Lock(waitCtx, key)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		return err
	}
	defer unlock()

	return fn(ctx)
}
