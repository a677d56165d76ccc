package ports

import "time"

// Clock abstracts wall time so that workday boundaries are testable.
// Implementations return time in the business time zone.
type Clock interface {
	Now() time.Time
}
