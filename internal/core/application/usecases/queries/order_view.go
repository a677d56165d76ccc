package queries

import (
	"time"

	"courierbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order shown to staff and customers.
type OrderView struct {
	ID               string
	Workday          string
	DisplayNo        int
	DeliveryNo       string
	Status           string
	CustomerID       int64
	CustomerUsername string
	Items            []ItemView
	Quantity         int
	TotalPrice       decimal.Decimal
	Details          order.Details
	Courier          *CourierView
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	DeniedAt         *time.Time
}

type ItemView struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

type CourierView struct {
	ID          int64
	Username    string
	FullName    string
	DisplayName string
}

func newOrderView(o *order.Order) OrderView {
	v := OrderView{
		ID:               o.ID().String(),
		Workday:          o.Workday().String(),
		DisplayNo:        o.DisplayNo(),
		DeliveryNo:       o.DeliveryNo(),
		Status:           o.Status().String(),
		CustomerID:       o.Customer().ID,
		CustomerUsername: o.Customer().Username,
		Quantity:         o.Quantity(),
		TotalPrice:       o.TotalPrice(),
		Details:          o.Details(),
		CreatedAt:        o.CreatedAt(),
		AcceptedAt:       o.AcceptedAt(),
		DeliveredAt:      o.DeliveredAt(),
		CancelledAt:      o.CancelledAt(),
		DeniedAt:         o.DeniedAt(),
	}
	for _, it := range o.Items() {
		v.Items = append(v.Items, ItemView{
			Name:      it.Name(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
			Total:     it.LineTotal(),
		})
	}
	if c := o.Courier(); c != nil {
		v.Courier = &CourierView{
			ID:          c.ID(),
			Username:    c.Username(),
			FullName:    c.FullName(),
			DisplayName: c.DisplayName(),
		}
	}
	return v
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}
