package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand turns a finalized cart into a pending order.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(order.Customer{ID: 555}, items, details)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	// res.DisplayNo is shown to staff, res.DeliveryNo to the customer
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	items    []order.Item
	details  order.Details

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(customer order.Customer, items []order.Item, details order.Details) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c SubmitOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c SubmitOrderCommand) Details() order.Details {
	return c.details
}

func (c *SubmitOrderCommand) setCustomer(customer order.Customer) error {
	if customer.ID <= 0 {
		return errs.NewValueIsRequiredError("customer id")
	}
	c.customer = customer
	return nil
}

func (c *SubmitOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}
