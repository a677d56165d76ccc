// Package cart models the order a customer is building in a chat session.
package cart

import (
	"fmt"

	"courierbot/internal/core/domain/model/catalog"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps a single line; the chat keyboard offers 1..10.
const MaxLineQuantity = 50

// Line is a drink in the cart with the price captured when it was added.
type Line struct {
	DrinkID   string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart belongs to exactly one customer. It is not safe for concurrent use;
// callers serialize access per customer.
type Cart struct {
	customer order.Customer
	lines    []Line
	details  order.Details
}

func New(customer order.Customer) *Cart {
	return &Cart{customer: customer}
}

func (c *Cart) Customer() order.Customer {
	return c.customer
}

// Add puts qty units of the drink into the cart, merging with an existing
// line of the same drink. The line keeps the price it was first added at.
func (c *Cart) Add(d catalog.Drink, qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	for i := range c.lines {
		if c.lines[i].DrinkID != d.ID {
			continue
		}
		if c.lines[i].Quantity+qty > MaxLineQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", c.lines[i].Quantity+qty, 1, MaxLineQuantity)
		}
		c.lines[i].Quantity += qty
		return nil
	}
	if qty > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, MaxLineQuantity)
	}
	c.lines = append(c.lines, Line{
		DrinkID:   d.ID,
		Name:      d.Name(catalog.DefaultLanguage),
		Quantity:  qty,
		UnitPrice: d.Price,
	})
	return nil
}

// SetDetails replaces the delivery details collected so far.
func (c *Cart) SetDetails(d order.Details) {
	c.details = d
}

func (c *Cart) Details() order.Details {
	return c.details
}

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// OrderItems converts the lines into order items.
func (c *Cart) OrderItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.lines))
	for _, l := range c.lines {
		it, err := order.NewItem(l.Name, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
