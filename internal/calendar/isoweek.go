package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

var weekKeyPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekKey identifies an ISO-8601 week. ISOYear is the week-numbering year,
// which differs from the calendar year for some days around New Year.
type WeekKey struct {
	ISOYear int `json:"iso_year"`
	Week    int `json:"week"`
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", k.ISOYear, k.Week)
}

// ISOWeek resolves the ISO year and week number for d.
func ISOWeek(d civil.Date) WeekKey {
	year, week := d.In(time.UTC).ISOWeek()
	return WeekKey{ISOYear: year, Week: week}
}

// WeeksInISOYear returns 52 or 53.
func WeeksInISOYear(year int) int {
	// Dec 28 is always in the last ISO week of its year.
	_, wk := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

// WeekCalendarRange returns Monday through Sunday of the given ISO week.
func WeekCalendarRange(isoYear, week int) (DateRange, error) {
	if week < 1 || week > WeeksInISOYear(isoYear) {
		return DateRange{}, fmt.Errorf("week %d out of range for ISO year %d (1-%d)", week, isoYear, WeeksInISOYear(isoYear))
	}
	start := isoWeekStart(isoYear, week)
	return DateRange{Start: start, End: start.AddDays(6)}, nil
}

// Range is WeekCalendarRange for an already valid key.
func (k WeekKey) Range() DateRange {
	start := isoWeekStart(k.ISOYear, k.Week)
	return DateRange{Start: start, End: start.AddDays(6)}
}

// ParseWeekKey parses the YYYY-Www form.
func ParseWeekKey(s string) (WeekKey, error) {
	m := weekKeyPattern.FindStringSubmatch(s)
	if m == nil {
		return WeekKey{}, fmt.Errorf("invalid week %q (expected YYYY-Www)", s)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	maxWeek := WeeksInISOYear(year)
	if week < 1 || week > maxWeek {
		return WeekKey{}, fmt.Errorf("invalid week %q (week must be between 01 and %02d for %d)", s, maxWeek, year)
	}
	return WeekKey{ISOYear: year, Week: week}, nil
}

func isoWeekStart(year, week int) civil.Date {
	jan4 := civil.Date{Year: year, Month: time.January, Day: 4}
	week1Monday := beginningOfWeek(jan4)
	return week1Monday.AddDays((week - 1) * 7)
}
