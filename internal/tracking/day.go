package tracking

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/Santiago"

// Day is the reconciliation key derived from wall-clock time in the tracking
// timezone. Both fields carry the civil wall-clock reading in a UTC location
// so storage never shifts them.
type Day struct {
	Date      time.Time
	Timestamp time.Time
}

// LogicalDay converts an instant into the civil day and naive timestamp seen
// in loc.
func LogicalDay(now time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	y, m, d := local.Date()
	return Day{
		Date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Timestamp: time.Date(y, m, d, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC),
	}
}

func (d Day) String() string { return d.Date.Format(time.DateOnly) }

// Clock yields the current logical day.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(timezone string) (*Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock always reports the logical day of at.
func NewFixedClock(at time.Time, loc *time.Location) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return at }}
}

func (c *Clock) Today() Day {
	return LogicalDay(c.now(), c.loc)
}
