package kernel

import (
	"fmt"
	"time"

	"courierbot/internal/pkg/errs"
)

// WorkdayBoundaryHour is the local hour at which a new workday starts.
// Anything before it still belongs to the previous calendar date.
const WorkdayBoundaryHour = 4

const workdayLayout = "2006-01-02"

// ErrWorkdayKeyIsNotConstructed is returned when validating a zero-value WorkdayKey.
var ErrWorkdayKeyIsNotConstructed = errs.NewValueIsRequiredError("workday key")

// WorkdayKey names the 04:00–04:00 accounting bucket an order belongs to.
// It is derived once from the creation instant and never recomputed.
type WorkdayKey struct {
	date time.Time
}

// NewWorkdayKey returns the workday that contains t, evaluated in t's location.
//
//	2026-10-18 03:50 -> "2026-10-17"
//	2026-10-18 04:00 -> "2026-10-18"
func NewWorkdayKey(t time.Time) WorkdayKey {
	if t.Hour() < WorkdayBoundaryHour {
		t = t.AddDate(0, 0, -1)
	}
	return WorkdayKey{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseWorkdayKey parses the "YYYY-MM-DD" form produced by String.
func ParseWorkdayKey(s string) (WorkdayKey, error) {
	d, err := time.Parse(workdayLayout, s)
	if err != nil {
		return WorkdayKey{}, errs.NewValueIsInvalidErrorWithCause("workday key", fmt.Errorf("%q: %w", s, err))
	}
	return WorkdayKey{date: d}, nil
}

func (w WorkdayKey) String() string {
	if w.IsZero() {
		return ""
	}
	return w.date.Format(workdayLayout)
}

func (w WorkdayKey) IsZero() bool {
	return w.date.IsZero()
}

func (w WorkdayKey) Validate() error {
	if w.IsZero() {
		return ErrWorkdayKeyIsNotConstructed
	}
	return nil
}

// Previous returns the workday immediately before w.
func (w WorkdayKey) Previous() WorkdayKey {
	return WorkdayKey{date: w.date.AddDate(0, 0, -1)}
}

// Next returns the workday immediately after w.
func (w WorkdayKey) Next() WorkdayKey {
	return WorkdayKey{date: w.date.AddDate(0, 0, 1)}
}

func (w WorkdayKey) IsEqual(other WorkdayKey) bool {
	return w.date.Equal(other.date)
}

func (w WorkdayKey) Before(other WorkdayKey) bool {
	return w.date.Before(other.date)
}

// Week returns the ISO week the workday falls into.
func (w WorkdayKey) Week() WeekKey {
	return NewWeekKey(w)
}
