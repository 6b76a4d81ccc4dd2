// Package calendar does day-level date arithmetic on civil dates.
//
// All calculations go through UTC midnights so that day boundaries never
// depend on the local timezone or daylight saving transitions. The only place
// that looks at a wall clock is Today, and callers are expected to pass its
// result into everything else.
package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// InvalidRangeError reports a range whose end falls before its start.
type InvalidRangeError struct {
	Start civil.Date
	End   civil.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s is before start %s", e.End, e.Start)
}

// DateRange is a closed interval of calendar days.
type DateRange struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

// NewRange validates start <= end.
func NewRange(start, end civil.Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, &InvalidRangeError{Start: start, End: end}
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns the inclusive number of days in the range.
func (r DateRange) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

// Contains reports whether d lies inside the range.
func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start, r.End)
}

// DaysInRange enumerates every date from start to end inclusive.
func DaysInRange(start, end civil.Date) ([]civil.Date, error) {
	if end.Before(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}
	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days, nil
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(time.Now().In(loc))
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// DefaultRange is the last n days ending today.
func DefaultRange(today civil.Date, n int) DateRange {
	if n < 1 {
		n = 1
	}
	return DateRange{Start: today.AddDays(-(n - 1)), End: today}
}

// CurrentWeekRange runs from Monday of today's ISO week through today.
func CurrentWeekRange(today civil.Date) DateRange {
	return DateRange{Start: beginningOfWeek(today), End: today}
}

// CurrentMonthRange runs from the first of today's month through today.
func CurrentMonthRange(today civil.Date) DateRange {
	return DateRange{
		Start: civil.Date{Year: today.Year, Month: today.Month, Day: 1},
		End:   today,
	}
}

// MonthRange covers the whole calendar month.
func MonthRange(year int, month time.Month) DateRange {
	start := civil.Date{Year: year, Month: month, Day: 1}
	return DateRange{Start: start, End: LastDayOfMonth(year, month)}
}

func LastDayOfMonth(year int, month time.Month) civil.Date {
	// day 0 of the following month normalizes to the last day of this one
	return civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of the week for d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

func beginningOfWeek(d civil.Date) civil.Date {
	weekday := int(Weekday(d))
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDays(-(weekday - 1))
}
