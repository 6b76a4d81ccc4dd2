package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// MonthKey returns the YYYY-MM key for d.
func MonthKey(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// ParseMonthKey parses YYYY-MM.
func ParseMonthKey(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

// MonthLabel renders a YYYY-MM key as "July 2025".
func MonthLabel(key string) string {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", month, year)
}

// ShortWeekday renders "Mon".
func ShortWeekday(d civil.Date) string {
	return d.In(time.UTC).Format("Mon")
}

// ShortDayMonth renders "Jan 2".
func ShortDayMonth(d civil.Date) string {
	return d.In(time.UTC).Format("Jan 2")
}
