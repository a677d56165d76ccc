package commands

import (
	"errors"
	"strings"

	"courierbot/internal/core/domain/model/cart"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
)

// CartSummary is the cart state returned after a change.
type CartSummary struct {
	Lines []cart.Line
	Total decimal.Decimal
}

func summarize(c *cart.Cart) CartSummary {
	return CartSummary{Lines: c.Lines(), Total: c.Total()}
}

// AddCartItemCommand adds a catalog drink to the customer's cart.
type AddCartItemCommand struct {
	customer order.Customer
	drinkID  string
	quantity int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(customer order.Customer, drinkID string, quantity int) (AddCartItemCommand, error) {
	var errList []error
	if customer.ID <= 0 {
		errList = append(errList, errs.NewValueIsRequiredError("customer id"))
	}
	if strings.TrimSpace(drinkID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("drink id"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, cart.MaxLineQuantity))
	}
	if err := errors.Join(errList...); err != nil {
		return AddCartItemCommand{}, err
	}

	return AddCartItemCommand{
		customer: customer,
		drinkID:  strings.TrimSpace(drinkID),
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) Customer() order.Customer {
	return c.customer
}

func (c AddCartItemCommand) DrinkID() string {
	return c.drinkID
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// ClearCartCommand drops the customer's session.
type ClearCartCommand struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewClearCartCommand(userID int64) (ClearCartCommand, error) {
	if userID <= 0 {
		return ClearCartCommand{}, errs.NewValueIsRequiredError("user id")
	}
	return ClearCartCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) UserID() int64 {
	return c.userID
}

// CheckoutCommand submits the customer's cart as an order.
type CheckoutCommand struct {
	userID  int64
	details order.Details

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(userID int64, details order.Details) (CheckoutCommand, error) {
	if userID <= 0 {
		return CheckoutCommand{}, errs.NewValueIsRequiredError("user id")
	}
	return CheckoutCommand{userID: userID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) UserID() int64 {
	return c.userID
}

func (c CheckoutCommand) Details() order.Details {
	return c.details
}
