package queries

import (
	"context"

	"courierbot/internal/core/application/lookup"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
)

type GetOrderQueryHandler struct {
	readers OrderReaderFactory
	clock   ports.Clock
}

func NewGetOrderQueryHandler(readers OrderReaderFactory, clock ports.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers, clock: clock}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := lookup.Locate(ctx, h.readers.Create().OrderRepository(),
		kernel.NewWorkdayKey(h.clock.Now()), query.Workday(), query.DisplayNo())
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(o), nil
}
