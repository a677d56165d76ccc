package queries

import (
	"context"
	"errors"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrFindOrdersByDeliveryNoQueryIsNotConstructed = errors.New(
	"FindOrdersByDeliveryNoQuery must be created via NewFindOrdersByDeliveryNoQuery constructor",
)

// FindOrdersByDeliveryNoQuery looks orders up by the code the customer
// holds. Codes are random and may collide, so the answer is a list.
type FindOrdersByDeliveryNoQuery struct {
	deliveryNo string

	guard guard.ConstructorGuard
}

func NewFindOrdersByDeliveryNoQuery(deliveryNo string) (FindOrdersByDeliveryNoQuery, error) {
	if err := order.ValidateDeliveryNo(deliveryNo); err != nil {
		return FindOrdersByDeliveryNoQuery{}, err
	}
	return FindOrdersByDeliveryNoQuery{deliveryNo: deliveryNo, guard: guard.NewConstructorGuard()}, nil
}

func (q FindOrdersByDeliveryNoQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersByDeliveryNoQueryIsNotConstructed)
}

type FindOrdersByDeliveryNoQueryHandler struct {
	readers OrderReaderFactory
}

func NewFindOrdersByDeliveryNoQueryHandler(readers OrderReaderFactory) FindOrdersByDeliveryNoQueryHandler {
	return FindOrdersByDeliveryNoQueryHandler{readers: readers}
}

func (h FindOrdersByDeliveryNoQueryHandler) Handle(
	ctx context.Context,
	query FindOrdersByDeliveryNoQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.readers.Create().OrderRepository().FindByDeliveryNo(ctx, query.deliveryNo)
	if err != nil {
		return nil, err
	}
	return newOrderViews(orders), nil
}
