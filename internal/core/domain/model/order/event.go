package order

import (
	"time"

	"courierbot/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EventType doubles as the routing key of published notifications.
type EventType string

const (
	EventSubmitted EventType = "order.submitted"
	EventAccepted  EventType = "order.accepted"
	EventDenied    EventType = "order.denied"
	EventDelivered EventType = "order.delivered"
	EventCancelled EventType = "order.cancelled"
	EventLate      EventType = "order.late"
)

// Event describes a committed lifecycle change. Events are collected on the
// aggregate and handed to the notifier only after the transaction commits.
type Event struct {
	Type       EventType
	OrderID    kernel.UUID
	DisplayNo  int
	DeliveryNo string
	Workday    kernel.WorkdayKey
	CustomerID int64
	CourierID  int64
	ActorID    int64
	TotalPrice decimal.Decimal
	Quantity   int
	LateBy     time.Duration
	OccurredAt time.Time
}
