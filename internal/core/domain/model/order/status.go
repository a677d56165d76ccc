package order

import (
	"fmt"

	"courierbot/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──┬──> Accepted ──┬──> Delivered
//	          │               └──> Cancelled
//	          └──> Denied
//
// Delivered, Cancelled and Denied are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Accepted
	Delivered
	Cancelled
	Denied
)

// Event names used in InvalidTransitionError.
const (
	eventAccept  = "accept"
	eventDeny    = "deny"
	eventDeliver = "deliver"
	eventCancel  = "cancel"
)

// The string forms are persisted and read by reporting, so they must stay stable.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Denied:    "denied",
	}
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Denied {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further event is accepted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Denied
}

// IsOpen reports whether the order still needs staff attention.
func (s Status) IsOpen() bool {
	return s == Pending || s == Accepted
}

// HoldsCourier reports whether an order in this status must carry a courier.
func (s Status) HoldsCourier() bool {
	return s == Accepted || s == Delivered || s == Cancelled
}

// ValidateCanHaveCourier checks that courier presence matches the status:
// accepted, delivered and cancelled orders have one, the others do not.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.HoldsCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !courier && s.HoldsCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

func (s Status) Accept() (Status, error) {
	return s.transition(eventAccept, Pending, Accepted)
}

func (s Status) Deny() (Status, error) {
	return s.transition(eventDeny, Pending, Denied)
}

func (s Status) Deliver() (Status, error) {
	return s.transition(eventDeliver, Accepted, Delivered)
}

func (s Status) Cancel() (Status, error) {
	return s.transition(eventCancel, Accepted, Cancelled)
}

func (s Status) transition(event string, from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError(s.String(), event)
	}
	return to, nil
}
