package kernel

import (
	"fmt"
	"regexp"
	"strconv"

	"courierbot/internal/pkg/errs"
)

var weekKeyPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekKey identifies the rolling week bucket used for large-order counts,
// formatted as an ISO week ("2026-W42"). Counts of different weeks are never
// compared, so a new week starts from zero without an explicit reset.
type WeekKey struct {
	year int
	week int
}

// NewWeekKey returns the ISO week of the workday's calendar date.
func NewWeekKey(w WorkdayKey) WeekKey {
	year, week := w.date.ISOWeek()
	return WeekKey{year: year, week: week}
}

func ParseWeekKey(s string) (WeekKey, error) {
	m := weekKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return WeekKey{}, errs.NewValueIsInvalidErrorWithCause("week key", fmt.Errorf("%q is not YYYY-Www", s))
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return WeekKey{}, errs.NewValueIsOutOfRangeError("week", week, 1, 53)
	}
	return WeekKey{year: year, week: week}, nil
}

func (k WeekKey) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-W%02d", k.year, k.week)
}

func (k WeekKey) IsZero() bool {
	return k.year == 0 && k.week == 0
}
