package kernel

import (
	"fmt"

	"courierbot/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies an order record. The zero value is invalid.
//
// Example:
//
//	id := kernel.NewUUID()
//	restored, err := kernel.UUIDFromString(dto.ID.String())
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or unhyphenated forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromGoogle wraps a uuid.UUID read from storage. The nil UUID is rejected.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Google returns the wrapped uuid.UUID for adapters that persist it natively.
func (u UUID) Google() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
