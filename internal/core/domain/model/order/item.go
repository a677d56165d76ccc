package order

import (
	"fmt"
	"strings"

	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one order line. Line total is fixed at construction.
type Item struct {
	name      string
	quantity  int
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal
}

func NewItem(name string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item price", fmt.Errorf("%s is negative", unitPrice))
	}
	return Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		lineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) LineTotal() decimal.Decimal {
	return i.lineTotal
}

// SumItems returns the total price and total quantity of the lines.
func SumItems(items []Item) (decimal.Decimal, int) {
	total := decimal.Zero
	quantity := 0
	for _, it := range items {
		total = total.Add(it.lineTotal)
		quantity += it.quantity
	}
	return total, quantity
}
