package order

import (
	"fmt"
	"math/rand/v2"

	"courierbot/internal/pkg/errs"
)

const deliveryNoDigits = 5

// NewDeliveryNo returns a random zero-padded 5-digit customer code.
// Codes are not unique; lookups by delivery number return every match.
func NewDeliveryNo() string {
	return fmt.Sprintf("%05d", rand.IntN(100000))
}

// ValidateDeliveryNo checks the 5-digit form.
func ValidateDeliveryNo(s string) error {
	if len(s) != deliveryNoDigits {
		return errs.NewValueIsInvalidErrorWithCause("delivery number", fmt.Errorf("%q is not %d digits", s, deliveryNoDigits))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("delivery number", fmt.Errorf("%q is not numeric", s))
		}
	}
	return nil
}
