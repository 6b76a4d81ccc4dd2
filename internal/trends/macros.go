// Package trends turns per-day nutrition log entries into gap-filled day,
// ISO-week and month buckets, summarizes them, and compares periods.
//
// Everything here is a pure function of its arguments: the current date,
// goals and entries are all passed in by the caller.
package trends

import (
	"cloud.google.com/go/civil"
	"github.com/saadjs/kcal-trends/internal/calendar"
	"github.com/saadjs/kcal-trends/internal/model"
)

// Macros holds grams of protein/fat/carbs and kcal.
type Macros struct {
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Calories float64 `json:"calories"`
}

// MacroValues lets every bucket type that embeds Macros be summed.
func (m Macros) MacroValues() Macros { return m }

func (m Macros) add(o Macros) Macros {
	return Macros{
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Carbs:    m.Carbs + o.Carbs,
		Calories: m.Calories + o.Calories,
	}
}

func (m Macros) div(n float64) Macros {
	return Macros{
		Protein:  m.Protein / n,
		Fat:      m.Fat / n,
		Carbs:    m.Carbs / n,
		Calories: m.Calories / n,
	}
}

func macrosOf(e model.LogEntry) Macros {
	e = e.Sanitized()
	return Macros{Protein: e.Protein, Fat: e.Fat, Carbs: e.Carbs, Calories: e.Calories}
}

// MacroCarrier is anything that exposes a macro quadruple.
type MacroCarrier interface {
	MacroValues() Macros
}

// DailyBucket is one calendar day. DayLabel is only set by the week and
// month day views.
type DailyBucket struct {
	Date     civil.Date `json:"date"`
	DayLabel string     `json:"day_label,omitempty"`
	Macros
}

// WeekBucket aggregates the days of one ISO week. WeekRange always spans the
// full Monday to Sunday of the week, whatever days the input covered.
type WeekBucket struct {
	WeekKey   calendar.WeekKey   `json:"week_key"`
	WeekRange calendar.DateRange `json:"week_range"`
	Days      int                `json:"days"`
	Macros
}

// MonthBucket aggregates the days of one calendar month. Unlike weeks,
// MonthRange is the first and last date that actually appeared in the input.
type MonthBucket struct {
	MonthKey   string             `json:"month_key"`
	MonthRange calendar.DateRange `json:"month_range"`
	Label      string             `json:"label"`
	Macros
}
