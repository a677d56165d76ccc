package courier

import (
	"errors"
	"fmt"
	"strings"

	"courierbot/internal/pkg/errs"
)

var (
	ErrIDIsRequired            = errs.NewValueIsRequiredError("courier id")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the chat identity of a member of staff who takes orders.
// Only the identity is modelled; activity and load live in the dispatch registry.
type Courier struct {
	id       int64
	username string
	fullName string

	isConstructed bool
}

// NewCourier builds a courier identity. Username may be empty for chat users
// without a public handle; a leading "@" is stripped.
func NewCourier(id int64, username, fullName string) (Courier, error) {
	if id <= 0 {
		return Courier{}, ErrIDIsRequired
	}
	return Courier{
		id:            id,
		username:      strings.TrimPrefix(strings.TrimSpace(username), "@"),
		fullName:      strings.TrimSpace(fullName),
		isConstructed: true,
	}, nil
}

func (c Courier) Validate() error {
	if !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

func (c Courier) ID() int64 {
	return c.id
}

func (c Courier) Username() string {
	return c.username
}

func (c Courier) FullName() string {
	return c.fullName
}

// DisplayName is what staff and customers see: "@handle" when available,
// otherwise the full name, otherwise the numeric id.
func (c Courier) DisplayName() string {
	switch {
	case c.username != "":
		return "@" + c.username
	case c.fullName != "":
		return c.fullName
	default:
		return fmt.Sprintf("courier %d", c.id)
	}
}

func (c Courier) IsEqual(other Courier) bool {
	return c.id == other.id
}
