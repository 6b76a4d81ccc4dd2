package trends

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/model"
)

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func span(start, end civil.Date) calendar.DateRange {
	return calendar.DateRange{Start: start, End: end}
}

func entry(d civil.Date, protein, fat, carbs, calories float64) model.LogEntry {
	return model.LogEntry{Date: d, Protein: protein, Fat: fat, Carbs: carbs, Calories: calories}
}

func kcal(d civil.Date, calories float64) model.LogEntry {
	return model.LogEntry{Date: d, Calories: calories}
}
