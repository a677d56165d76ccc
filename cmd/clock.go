package cmd

import "time"

// ZoneClock reports wall time in the business time zone.
type ZoneClock struct {
	loc *time.Location
}

func NewZoneClock(loc *time.Location) ZoneClock {
	return ZoneClock{loc: loc}
}

func (c ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}
