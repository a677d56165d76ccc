package notify

import (
	"encoding/json"
	"time"

	"courierbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Message is the JSON body published for every order event.
type Message struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"order_id"`
	DisplayNo   int             `json:"display_no"`
	DeliveryNo  string          `json:"delivery_no"`
	WorkdayKey  string          `json:"workday_key"`
	CustomerID  int64           `json:"customer_id"`
	CourierID   int64           `json:"courier_id,omitempty"`
	ActorID     int64           `json:"actor_id,omitempty"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Quantity    int             `json:"quantity"`
	LateMinutes int             `json:"late_minutes,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func NewMessage(e order.Event) Message {
	return Message{
		Type:        string(e.Type),
		OrderID:     e.OrderID.String(),
		DisplayNo:   e.DisplayNo,
		DeliveryNo:  e.DeliveryNo,
		WorkdayKey:  e.Workday.String(),
		CustomerID:  e.CustomerID,
		CourierID:   e.CourierID,
		ActorID:     e.ActorID,
		TotalPrice:  e.TotalPrice,
		Quantity:    e.Quantity,
		LateMinutes: int(e.LateBy / time.Minute),
		OccurredAt:  e.OccurredAt.UTC(),
	}
}

func (m Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
