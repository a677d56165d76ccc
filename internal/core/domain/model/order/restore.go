package order

import (
	"errors"
	"fmt"
	"time"

	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Snapshot is the flat state of an order as stores keep it.
type Snapshot struct {
	ID          kernel.UUID
	DisplayNo   int
	DeliveryNo  string
	Workday     kernel.WorkdayKey
	Customer    Customer
	Status      Status
	Items       []Item
	TotalPrice  decimal.Decimal
	Details     Details
	Courier     *courier.Courier
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	DeniedAt    *time.Time
	DeniedBy    *int64
}

// Snapshot copies the order state for persistence.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:          o.id,
		DisplayNo:   o.displayNo,
		DeliveryNo:  o.deliveryNo,
		Workday:     o.workday,
		Customer:    o.customer,
		Status:      o.status,
		Items:       o.Items(),
		TotalPrice:  o.totalPrice,
		Details:     o.details,
		CreatedAt:   o.createdAt,
		AcceptedAt:  o.acceptedAt,
		DeliveredAt: o.deliveredAt,
		CancelledAt: o.cancelledAt,
		DeniedAt:    o.deniedAt,
		DeniedBy:    o.deniedBy,
	}
	if o.courier != nil {
		c := *o.courier
		s.Courier = &c
	}
	return s
}

// RestoreOrder rebuilds an order read from storage. The stored total is kept
// as is; it is immutable after creation even if prices change later.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Workday.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveCourier(s.Courier != nil); err != nil {
		return nil, err
	}
	if s.DisplayNo <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("display number", fmt.Errorf("%d is not greater than 0", s.DisplayNo))
	}
	if len(s.Items) == 0 {
		return nil, ErrItemsAreRequired
	}

	o := &Order{
		id:            s.ID,
		displayNo:     s.DisplayNo,
		deliveryNo:    s.DeliveryNo,
		workday:       s.Workday,
		customer:      s.Customer,
		status:        s.Status,
		items:         append([]Item(nil), s.Items...),
		totalPrice:    s.TotalPrice,
		details:       s.Details,
		createdAt:     s.CreatedAt,
		acceptedAt:    s.AcceptedAt,
		deliveredAt:   s.DeliveredAt,
		cancelledAt:   s.CancelledAt,
		deniedAt:      s.DeniedAt,
		deniedBy:      s.DeniedBy,
		isConstructed: true,
	}
	if s.Courier != nil {
		c := *s.Courier
		o.courier = &c
	}
	return o, nil
}
