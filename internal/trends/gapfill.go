package trends

import (
	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/model"
)

// FillDaily emits one bucket per day of rng, taking macros from the entry
// with the same date or zeros when there is none. Entries outside rng are
// ignored. If two entries share a date the later one wins.
func FillDaily(entries []model.LogEntry, rng calendar.DateRange) []DailyBucket {
	byDay := make(map[civil.Date]Macros, len(entries))
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		byDay[e.Date] = macrosOf(e)
	}

	days, err := calendar.DaysInRange(rng.Start, rng.End)
	if err != nil {
		return nil
	}
	out := make([]DailyBucket, 0, len(days))
	for _, d := range days {
		out = append(out, DailyBucket{Date: d, Macros: byDay[d]})
	}
	return out
}

// FillWeekDays fills all seven days of the ISO week, labelled "Mon".."Sun".
func FillWeekDays(entries []model.LogEntry, week calendar.WeekKey) []DailyBucket {
	days := FillDaily(entries, week.Range())
	for i := range days {
		days[i].DayLabel = calendar.ShortWeekday(days[i].Date)
	}
	return days
}

// FillMonthDays is FillDaily with "Jan 2" style labels.
func FillMonthDays(entries []model.LogEntry, rng calendar.DateRange) []DailyBucket {
	days := FillDaily(entries, rng)
	for i := range days {
		days[i].DayLabel = calendar.ShortDayMonth(days[i].Date)
	}
	return days
}

// BucketEntries converts filled buckets back into log entries, which lets a
// filled series be fed through FillDaily again.
func BucketEntries(days []DailyBucket) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(days))
	for _, d := range days {
		out = append(out, model.LogEntry{
			Date:     d.Date,
			Protein:  d.Protein,
			Fat:      d.Fat,
			Carbs:    d.Carbs,
			Calories: d.Calories,
		})
	}
	return out
}
