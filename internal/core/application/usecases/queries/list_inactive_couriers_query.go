package queries

import (
	"context"
	"errors"

	"courierbot/internal/pkg/guard"
)

var ErrListInactiveCouriersQueryIsNotConstructed = errors.New(
	"ListInactiveCouriersQuery must be created via NewListInactiveCouriersQuery constructor",
)

type ListInactiveCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewListInactiveCouriersQuery() ListInactiveCouriersQuery {
	return ListInactiveCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListInactiveCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListInactiveCouriersQueryIsNotConstructed)
}

type ListInactiveCouriersQueryHandler struct {
	readers DispatchReaderFactory
}

func NewListInactiveCouriersQueryHandler(readers DispatchReaderFactory) ListInactiveCouriersQueryHandler {
	return ListInactiveCouriersQueryHandler{readers: readers}
}

// Handle returns courier ids in ascending order.
func (h ListInactiveCouriersQueryHandler) Handle(ctx context.Context, query ListInactiveCouriersQuery) ([]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.readers.Create().CourierActivityRepository().ListInactive(ctx)
}
