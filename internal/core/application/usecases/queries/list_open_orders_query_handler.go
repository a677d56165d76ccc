package queries

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// ListOpenOrdersQueryHandler returns open orders sorted by workday and
// display number, so the oldest order comes first.
type ListOpenOrdersQueryHandler struct {
	readers OrderReaderFactory
	clock   ports.Clock
}

func NewListOpenOrdersQueryHandler(readers OrderReaderFactory, clock ports.Clock) ListOpenOrdersQueryHandler {
	return ListOpenOrdersQueryHandler{readers: readers, clock: clock}
}

func (h ListOpenOrdersQueryHandler) Handle(ctx context.Context, query ListOpenOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	today := kernel.NewWorkdayKey(h.clock.Now())
	orders, err := h.readers.Create().OrderRepository().
		ListByStatus(ctx, today.Previous(), today, order.Pending, order.Accepted)
	if err != nil {
		return nil, err
	}

	return newOrderViews(orders), nil
}
