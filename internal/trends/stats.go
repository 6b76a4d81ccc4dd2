package trends

import (
	"math"

	"github.com/shopspring/decimal"
)

const kjPerKcal = 4.184

// EmptyInputError is returned when an average is requested over no buckets.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return e.Op + ": no buckets"
}

// Totals sums macros component-wise.
func Totals[B MacroCarrier](buckets []B) Macros {
	var out Macros
	for i := range buckets {
		out = out.add(buckets[i].MacroValues())
	}
	return out
}

// Average divides Totals by the number of buckets.
func Average[B MacroCarrier](buckets []B) (Macros, error) {
	if len(buckets) == 0 {
		return Macros{}, &EmptyInputError{Op: "average"}
	}
	return Totals(buckets).div(float64(len(buckets))), nil
}

// MacroSplit is the share of protein, carbs and fat in percent.
type MacroSplit struct {
	Protein float64 `json:"protein_pct"`
	Carbs   float64 `json:"carbs_pct"`
	Fat     float64 `json:"fat_pct"`
}

// MacroPercentages splits protein+carbs+fat by grams, each rounded to one
// decimal. Calories do not take part. All zeros when there is nothing to
// split.
func MacroPercentages(m Macros) MacroSplit {
	total := m.Protein + m.Carbs + m.Fat
	if total == 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		Protein: pct1(m.Protein, total),
		Carbs:   pct1(m.Carbs, total),
		Fat:     pct1(m.Fat, total),
	}
}

func pct1(part, total float64) float64 {
	return round1(100 * part / total)
}

func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func KcalToKj(kcal float64) int {
	return int(math.Round(kcal * kjPerKcal))
}

func KjToKcal(kj float64) int {
	return int(math.Round(kj / kjPerKcal))
}

// Summary is the period summary shown above a chart.
type Summary struct {
	Buckets int        `json:"buckets"`
	Totals  Macros     `json:"totals"`
	Average Macros     `json:"average"`
	Split   MacroSplit `json:"split"`
	TotalKj int        `json:"total_kj"`
	AvgKj   int        `json:"avg_kj"`
}

// Summarize never fails: an empty input gives a zero summary.
func Summarize[B MacroCarrier](buckets []B) Summary {
	totals := Totals(buckets)
	avg, err := Average(buckets)
	if err != nil {
		avg = Macros{}
	}
	return Summary{
		Buckets: len(buckets),
		Totals:  totals,
		Average: avg,
		Split:   MacroPercentages(totals),
		TotalKj: KcalToKj(totals.Calories),
		AvgKj:   KcalToKj(avg.Calories),
	}
}

// Goals are daily targets owned by the user's configuration.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (g Goals) IsZero() bool {
	return g == Goals{}
}

// GoalProgress is actual/goal in percent. A nil field means the goal for
// that macro is unset.
type GoalProgress struct {
	Calories *float64 `json:"calories_pct,omitempty"`
	Protein  *float64 `json:"protein_pct,omitempty"`
	Carbs    *float64 `json:"carbs_pct,omitempty"`
	Fat      *float64 `json:"fat_pct,omitempty"`
}

func ProgressTowardGoals(actual Macros, goals Goals) GoalProgress {
	return GoalProgress{
		Calories: percentOf(actual.Calories, goals.Calories),
		Protein:  percentOf(actual.Protein, goals.Protein),
		Carbs:    percentOf(actual.Carbs, goals.Carbs),
		Fat:      percentOf(actual.Fat, goals.Fat),
	}
}

func percentOf(actual, goal float64) *float64 {
	if goal <= 0 {
		return nil
	}
	v := round1(actual / goal * 100)
	return &v
}
