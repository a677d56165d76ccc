// Package lookup finds orders whose workday the caller does not know.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
)

type OrderGetter interface {
	Get(ctx context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error)
}

// Locate returns order #displayNo. With a non-zero hint only that workday is
// searched. Without one, today's workday is tried first and then the previous
// one, because orders placed shortly before 04:00 belong to the day before.
func Locate(
	ctx context.Context,
	repo OrderGetter,
	today, hint kernel.WorkdayKey,
	displayNo int,
) (*order.Order, error) {
	if !hint.IsZero() {
		return repo.Get(ctx, hint, displayNo)
	}

	o, err := repo.Get(ctx, today, displayNo)
	if err == nil || !errors.Is(err, errs.ErrObjectNotFound) {
		return o, err
	}

	o, err = repo.Get(ctx, today.Previous(), displayNo)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundError(
			"order",
			fmt.Sprintf("#%d in %s or %s", displayNo, today, today.Previous()),
		)
	}
	return o, err
}
