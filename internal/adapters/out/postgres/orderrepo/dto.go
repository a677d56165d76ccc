// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is one row of the orders table. (workday_key, display_no) is the
// business key; id is the surrogate primary key.
type OrderDTO struct {
	ID               uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	WorkdayKey       string                         `gorm:"type:char(10);not null;uniqueIndex:idx_orders_workday_display,priority:1"`
	DisplayNo        int                            `gorm:"not null;uniqueIndex:idx_orders_workday_display,priority:2"`
	DeliveryNo       string                         `gorm:"type:char(5);not null;index"`
	CustomerID       int64                          `gorm:"not null;index"`
	CustomerUsername string                         `gorm:"type:varchar(64)"`
	Status           string                         `gorm:"type:varchar(16);not null;index"`
	Items            datatypes.JSONSlice[ItemDTO]   `gorm:"type:jsonb;not null"`
	TotalPrice       decimal.Decimal                `gorm:"type:numeric(12,2);not null"`
	Details          datatypes.JSONType[DetailsDTO] `gorm:"type:jsonb;not null"`
	CourierID        *int64                         `gorm:"index"`
	CourierUsername  string                         `gorm:"type:varchar(64)"`
	CourierName      string                         `gorm:"type:varchar(128)"`
	CreatedAt        time.Time                      `gorm:"not null"`
	AcceptedAt       *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	DeniedAt         *time.Time
	DeniedBy         *int64
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items JSON column.
type ItemDTO struct {
	Name     string          `json:"name"`
	Quantity int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
	Sum      decimal.Decimal `json:"sum"`
}

type DetailsDTO struct {
	TimeSlot string `json:"time_slot,omitempty"`
	Region   string `json:"region,omitempty"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
	Payment  string `json:"payment,omitempty"`
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make(datatypes.JSONSlice[ItemDTO], 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemDTO{
			Name:     it.Name(),
			Quantity: it.Quantity(),
			Price:    it.UnitPrice(),
			Sum:      it.LineTotal(),
		})
	}

	dto := OrderDTO{
		ID:               s.ID.Google(),
		WorkdayKey:       s.Workday.String(),
		DisplayNo:        s.DisplayNo,
		DeliveryNo:       s.DeliveryNo,
		CustomerID:       s.Customer.ID,
		CustomerUsername: s.Customer.Username,
		Status:           s.Status.String(),
		Items:            items,
		TotalPrice:       s.TotalPrice,
		Details: datatypes.NewJSONType(DetailsDTO{
			TimeSlot: s.Details.TimeSlot,
			Region:   s.Details.Region,
			Location: s.Details.Location,
			Note:     s.Details.Note,
			Payment:  s.Details.Payment,
		}),
		CreatedAt:   s.CreatedAt,
		AcceptedAt:  s.AcceptedAt,
		DeliveredAt: s.DeliveredAt,
		CancelledAt: s.CancelledAt,
		DeniedAt:    s.DeniedAt,
		DeniedBy:    s.DeniedBy,
	}
	if s.Courier != nil {
		id := s.Courier.ID()
		dto.CourierID = &id
		dto.CourierUsername = s.Courier.Username()
		dto.CourierName = s.Courier.FullName()
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	workday, err := kernel.ParseWorkdayKey(dto.WorkdayKey)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := order.NewItem(it.Name, it.Quantity, it.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var holder *courier.Courier
	if dto.CourierID != nil {
		c, courierErr := courier.NewCourier(*dto.CourierID, dto.CourierUsername, dto.CourierName)
		if courierErr != nil {
			return nil, courierErr
		}
		holder = &c
	}

	details := dto.Details.Data()
	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		DisplayNo:  dto.DisplayNo,
		DeliveryNo: dto.DeliveryNo,
		Workday:    workday,
		Customer:   order.Customer{ID: dto.CustomerID, Username: dto.CustomerUsername},
		Status:     status,
		Items:      items,
		TotalPrice: dto.TotalPrice,
		Details: order.Details{
			TimeSlot: details.TimeSlot,
			Region:   details.Region,
			Location: details.Location,
			Note:     details.Note,
			Payment:  details.Payment,
		},
		Courier:     holder,
		CreatedAt:   dto.CreatedAt,
		AcceptedAt:  dto.AcceptedAt,
		DeliveredAt: dto.DeliveredAt,
		CancelledAt: dto.CancelledAt,
		DeniedAt:    dto.DeniedAt,
		DeniedBy:    dto.DeniedBy,
	})
}
