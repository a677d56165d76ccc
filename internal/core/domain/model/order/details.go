package order

import "strings"

// Details are the delivery instructions collected while the customer
// builds a cart. None of them take part in the lifecycle rules.
type Details struct {
	TimeSlot string
	Region   string
	Location string
	Note     string
	Payment  string
}

func (d Details) normalized() Details {
	return Details{
		TimeSlot: strings.TrimSpace(d.TimeSlot),
		Region:   strings.TrimSpace(d.Region),
		Location: strings.TrimSpace(d.Location),
		Note:     strings.TrimSpace(d.Note),
		Payment:  strings.TrimSpace(d.Payment),
	}
}
