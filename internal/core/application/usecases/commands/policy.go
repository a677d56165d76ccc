package commands

import (
	"errors"
	"slices"

	"courierbot/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Use case outcomes reported to the acting user.
var (
	ErrBelowMinimumOrder = errors.New("order total is below the minimum")
	ErrOrderIntakeClosed = errors.New("order intake is closed")
	ErrNotAdmin          = errors.New("actor is not an administrator")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDrinkNotFound     = errors.New("drink not found in catalog")

	// ErrBalanceRejected is a decision, not a fault: the order stays pending.
	ErrBalanceRejected = services.ErrBalanceRejected
)

const maxSubmitAttempts = 3

// Policy holds the business settings fixed at start-up.
type Policy struct {
	MinOrderTotal       decimal.Decimal
	LargeOrderQuantity  int
	DefaultBalanceLimit int
	AdminIDs            []int64
	PrimaryAdminID      int64
}

// IsAdmin reports whether id may deny orders and flip switches. The primary
// admin is always an admin.
func (p Policy) IsAdmin(id int64) bool {
	return id != 0 && (id == p.PrimaryAdminID || slices.Contains(p.AdminIDs, id))
}

func (p Policy) requireAdmin(id int64) error {
	if !p.IsAdmin(id) {
		return ErrNotAdmin
	}
	return nil
}
