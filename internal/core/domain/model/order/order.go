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

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrItemsAreRequired      = errs.NewValueIsRequiredError("items")

	// ErrNotOrderCourier is returned when a courier acts on an order held by someone else.
	ErrNotOrderCourier = errors.New("order is held by another courier")

	// ErrDuplicateDisplayNo is returned by stores when the display number is
	// already taken in the workday.
	ErrDuplicateDisplayNo = errors.New("display number already used in workday")
)

// Customer identifies who placed the order.
type Customer struct {
	ID       int64
	Username string
}

// Order is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - workday is derived from createdAt once and never changes
//   - totalPrice equals the sum of line totals
//   - a courier is present iff status is accepted, delivered or cancelled
//   - every transition timestamp is written exactly once
type Order struct {
	id         kernel.UUID
	displayNo  int
	deliveryNo string
	workday    kernel.WorkdayKey
	customer   Customer
	status     Status
	items      []Item
	totalPrice decimal.Decimal
	details    Details
	courier    *courier.Courier

	createdAt   time.Time
	acceptedAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	deniedAt    *time.Time
	deniedBy    *int64

	events        []Event
	isConstructed bool
}

// NewOrder creates a pending order and queues the submitted event.
// The workday is computed from createdAt, which must already be in the
// business time zone.
func NewOrder(
	id kernel.UUID,
	displayNo int,
	deliveryNo string,
	customer Customer,
	items []Item,
	details Details,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		details:       details.normalized(),
		createdAt:     createdAt,
		workday:       kernel.NewWorkdayKey(createdAt),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDisplayNo(displayNo),
		o.setDeliveryNo(deliveryNo),
		o.setCustomer(customer),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.raise(EventSubmitted, customer.ID, createdAt)
	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) DisplayNo() int {
	return o.displayNo
}

func (o *Order) DeliveryNo() string {
	return o.deliveryNo
}

func (o *Order) Workday() kernel.WorkdayKey {
	return o.workday
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

func (o *Order) Details() Details {
	return o.details
}

// Courier returns the courier holding the order, or nil.
func (o *Order) Courier() *courier.Courier {
	return o.courier
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

func (o *Order) DeniedAt() *time.Time {
	return o.deniedAt
}

func (o *Order) DeniedBy() *int64 {
	return o.deniedBy
}

// Quantity is the total number of units across all lines.
func (o *Order) Quantity() int {
	_, qty := SumItems(o.items)
	return qty
}

// IsLarge reports whether the order is subject to dispatch balancing.
func (o *Order) IsLarge(threshold int) bool {
	return o.Quantity() >= threshold
}

// Accept hands a pending order to the courier.
func (o *Order) Accept(c courier.Courier, at time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	next, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = next
	o.courier = &c
	o.acceptedAt = &at
	o.raise(EventAccepted, c.ID(), at)
	return nil
}

// Deny rejects a pending order on behalf of an administrator.
func (o *Order) Deny(adminID int64, at time.Time) error {
	next, err := o.status.Deny()
	if err != nil {
		return err
	}

	o.status = next
	o.deniedAt = &at
	o.deniedBy = &adminID
	o.raise(EventDenied, adminID, at)
	return nil
}

// Deliver completes an accepted order. Only the holding courier may deliver.
func (o *Order) Deliver(courierID int64, at time.Time) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if !o.isHeldBy(courierID) {
		return ErrNotOrderCourier
	}

	o.status = next
	o.deliveredAt = &at
	o.raise(EventDelivered, courierID, at)
	return nil
}

// Cancel drops an accepted order. Only the holding courier may cancel;
// the courier stays recorded on the order.
func (o *Order) Cancel(courierID int64, at time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if !o.isHeldBy(courierID) {
		return ErrNotOrderCourier
	}

	o.status = next
	o.cancelledAt = &at
	o.raise(EventCancelled, courierID, at)
	return nil
}

// LateEvent builds the late-delivery notification for an accepted order.
// It is not queued on the aggregate because nothing is persisted for it.
func (o *Order) LateEvent(now time.Time) (Event, bool) {
	if o.status != Accepted || o.acceptedAt == nil {
		return Event{}, false
	}
	e := o.newEvent(EventLate, 0, now)
	e.LateBy = now.Sub(*o.acceptedAt)
	return e, true
}

// PullEvents returns queued events and clears the queue.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) isHeldBy(courierID int64) bool {
	return o.courier != nil && o.courier.ID() == courierID
}

func (o *Order) raise(t EventType, actorID int64, at time.Time) {
	o.events = append(o.events, o.newEvent(t, actorID, at))
}

func (o *Order) newEvent(t EventType, actorID int64, at time.Time) Event {
	e := Event{
		Type:       t,
		OrderID:    o.id,
		DisplayNo:  o.displayNo,
		DeliveryNo: o.deliveryNo,
		Workday:    o.workday,
		CustomerID: o.customer.ID,
		ActorID:    actorID,
		TotalPrice: o.totalPrice,
		Quantity:   o.Quantity(),
		OccurredAt: at,
	}
	if o.courier != nil {
		e.CourierID = o.courier.ID()
	}
	return e
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDisplayNo(n int) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("display number", fmt.Errorf("%d is not greater than 0", n))
	}
	o.displayNo = n
	return nil
}

func (o *Order) setDeliveryNo(s string) error {
	if err := ValidateDeliveryNo(s); err != nil {
		return err
	}
	o.deliveryNo = s
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if c.ID <= 0 {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customer = c
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, it := range items {
		if it.quantity <= 0 || it.name == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d was not built by NewItem", i))
		}
	}
	o.items = append([]Item(nil), items...)
	o.totalPrice, _ = SumItems(o.items)
	return nil
}
