package queries

import (
	"errors"

	"courierbot/internal/pkg/guard"
)

var ErrListOpenOrdersQueryIsNotConstructed = errors.New(
	"ListOpenOrdersQuery must be created via NewListOpenOrdersQuery constructor",
)

// ListOpenOrdersQuery retrieves pending and accepted orders of the current
// and the previous workday.
//
// Example:
//
//	query := NewListOpenOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list open orders: %w", err)
//	}
type ListOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListOpenOrdersQuery() ListOpenOrdersQuery {
	return ListOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOpenOrdersQueryIsNotConstructed)
}
