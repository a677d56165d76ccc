package http

import (
	"time"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DetailsDTO struct {
	TimeSlot string `json:"time_slot,omitempty"`
	Region   string `json:"region,omitempty"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
	Payment  string `json:"payment,omitempty"`
}

func (d DetailsDTO) toDomain() order.Details {
	return order.Details{
		TimeSlot: d.TimeSlot,
		Region:   d.Region,
		Location: d.Location,
		Note:     d.Note,
		Payment:  d.Payment,
	}
}

func newDetailsDTO(d order.Details) DetailsDTO {
	return DetailsDTO{
		TimeSlot: d.TimeSlot,
		Region:   d.Region,
		Location: d.Location,
		Note:     d.Note,
		Payment:  d.Payment,
	}
}

type ItemDTO struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type SubmitOrderRequest struct {
	CustomerID       int64      `json:"customer_id"`
	CustomerUsername string     `json:"customer_username"`
	Items            []ItemDTO  `json:"items"`
	Details          DetailsDTO `json:"details"`
}

type SubmitOrderResponse struct {
	OrderID    string `json:"order_id"`
	Workday    string `json:"workday"`
	DisplayNo  int    `json:"display_no"`
	DeliveryNo string `json:"delivery_no"`
}

func newSubmitOrderResponse(r commands.SubmitOrderResult) SubmitOrderResponse {
	return SubmitOrderResponse{
		OrderID:    r.OrderID.String(),
		Workday:    r.Workday.String(),
		DisplayNo:  r.DisplayNo,
		DeliveryNo: r.DeliveryNo,
	}
}

// TransitionRequest carries the acting user. Username and full name are only
// used when accepting.
type TransitionRequest struct {
	ActorID  int64  `json:"actor_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Workday  string `json:"workday"`
}

type CourierDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	DisplayName string `json:"display_name"`
}

type OrderDTO struct {
	ID               string          `json:"id"`
	Workday          string          `json:"workday"`
	DisplayNo        int             `json:"display_no"`
	DeliveryNo       string          `json:"delivery_no"`
	Status           string          `json:"status"`
	CustomerID       int64           `json:"customer_id"`
	CustomerUsername string          `json:"customer_username,omitempty"`
	Items            []ItemDTO       `json:"items"`
	Quantity         int             `json:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Details          DetailsDTO      `json:"details"`
	Courier          *CourierDTO     `json:"courier,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	AcceptedAt       *time.Time      `json:"accepted_at,omitempty"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	DeniedAt         *time.Time      `json:"denied_at,omitempty"`
}

func newOrderDTO(v queries.OrderView) OrderDTO {
	dto := OrderDTO{
		ID:               v.ID,
		Workday:          v.Workday,
		DisplayNo:        v.DisplayNo,
		DeliveryNo:       v.DeliveryNo,
		Status:           v.Status,
		CustomerID:       v.CustomerID,
		CustomerUsername: v.CustomerUsername,
		Items:            make([]ItemDTO, 0, len(v.Items)),
		Quantity:         v.Quantity,
		TotalPrice:       v.TotalPrice,
		Details:          newDetailsDTO(v.Details),
		CreatedAt:        v.CreatedAt,
		AcceptedAt:       v.AcceptedAt,
		DeliveredAt:      v.DeliveredAt,
		CancelledAt:      v.CancelledAt,
		DeniedAt:         v.DeniedAt,
	}
	for _, it := range v.Items {
		dto.Items = append(dto.Items, ItemDTO{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	if v.Courier != nil {
		dto.Courier = &CourierDTO{
			ID:          v.Courier.ID,
			Username:    v.Courier.Username,
			FullName:    v.Courier.FullName,
			DisplayName: v.Courier.DisplayName,
		}
	}
	return dto
}

func newOrderDTOs(views []queries.OrderView) []OrderDTO {
	out := make([]OrderDTO, 0, len(views))
	for _, v := range views {
		out = append(out, newOrderDTO(v))
	}
	return out
}

type BalanceInfoDTO struct {
	Week       string        `json:"week"`
	HasOrders  bool          `json:"has_orders"`
	Min        int           `json:"min"`
	Max        int           `json:"max"`
	Difference int           `json:"difference"`
	Limit      int           `json:"limit"`
	IsBalanced bool          `json:"is_balanced"`
	Active     map[int64]int `json:"active"`
	Inactive   []int64       `json:"inactive"`
}

func newBalanceInfoDTO(info services.BalanceInfo) BalanceInfoDTO {
	return BalanceInfoDTO{
		Week:       info.Week.String(),
		HasOrders:  info.HasOrders,
		Min:        info.Min,
		Max:        info.Max,
		Difference: info.Difference,
		Limit:      info.Limit,
		IsBalanced: info.IsBalanced,
		Active:     info.Active,
		Inactive:   info.Inactive,
	}
}

type SetBalanceLimitRequest struct {
	AdminID int64 `json:"admin_id"`
	Limit   int   `json:"limit"`
}

type SetCourierActivityRequest struct {
	AdminID int64 `json:"admin_id"`
	Active  bool  `json:"active"`
}

type SetOrderIntakeRequest struct {
	AdminID int64 `json:"admin_id"`
	Open    bool  `json:"open"`
}

type AddCartItemRequest struct {
	Username string `json:"username"`
	DrinkID  string `json:"drink_id"`
	Quantity int    `json:"quantity"`
}

type CartDTO struct {
	Lines []CartLineDTO   `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type CartLineDTO struct {
	DrinkID   string          `json:"drink_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

func newCartDTO(s commands.CartSummary) CartDTO {
	dto := CartDTO{Lines: make([]CartLineDTO, 0, len(s.Lines)), Total: s.Total}
	for _, l := range s.Lines {
		dto.Lines = append(dto.Lines, CartLineDTO{
			DrinkID:   l.DrinkID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
		})
	}
	return dto
}

type CheckoutRequest struct {
	Details DetailsDTO `json:"details"`
}
