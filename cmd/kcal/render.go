package kcal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/saadjs/kcal-trends/internal/config"
	"github.com/saadjs/kcal-trends/internal/trends"
)

var (
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2c8a1f"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c21c1c"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// palette colours output only when writing to a terminal.
type palette struct {
	color bool
}

func paletteFor(out io.Writer) palette {
	f, ok := out.(*os.File)
	return palette{color: ok && isatty.IsTerminal(f.Fd())}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p palette) title(text string) string { return p.render(titleStyle, text) }
func (p palette) muted(text string) string { return p.render(mutedStyle, text) }

// signed colours text by the sign of v. Zero stays plain.
func (p palette) signed(v float64, text string) string {
	switch {
	case v > 0:
		return p.render(positiveStyle, text)
	case v < 0:
		return p.render(negativeStyle, text)
	}
	return text
}

func writeJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

func energyValue(kcal float64, unit string) float64 {
	if unit == config.EnergyKj {
		return float64(trends.KcalToKj(kcal))
	}
	return kcal
}

func formatEnergy(kcal float64, unit string) string {
	if unit == config.EnergyKj {
		return fmt.Sprintf("%d kJ", trends.KcalToKj(kcal))
	}
	return fmt.Sprintf("%.0f kcal", kcal)
}

func formatPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

func formatDelta(d trends.DeltaStat, unit string) string {
	return fmt.Sprintf("%+.1f %s, %s", d.Delta, unit, formatPct(d.PercentDelta))
}

func formatSplit(s trends.MacroSplit) string {
	return fmt.Sprintf("P %.1f%% / C %.1f%% / F %.1f%%", s.Protein, s.Carbs, s.Fat)
}

func macroRow(label string, m trends.Macros, unit string) []string {
	return []string{
		label,
		formatEnergy(m.Calories, unit),
		fmt.Sprintf("%.1f", m.Protein),
		fmt.Sprintf("%.1f", m.Carbs),
		fmt.Sprintf("%.1f", m.Fat),
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func seriesRows(s trends.Series, unit string) [][]string {
	rows := make([][]string, 0)
	switch s.Grouping {
	case trends.GroupingWeek:
		for _, w := range s.Weeks {
			label := fmt.Sprintf("%s (%s)", w.WeekKey, w.WeekRange)
			rows = append(rows, macroRow(label, w.Macros, unit))
		}
	case trends.GroupingMonth:
		for _, m := range s.Months {
			rows = append(rows, macroRow(m.Label, m.Macros, unit))
		}
	default:
		for _, d := range s.Days {
			label := d.Date.String()
			if d.DayLabel != "" {
				label = d.DayLabel + " " + label
			}
			rows = append(rows, macroRow(label, d.Macros, unit))
		}
	}
	return rows
}

func printSeries(out io.Writer, r trendsReport, p palette) {
	s := r.Series
	fmt.Fprintln(out, p.title(fmt.Sprintf("Trends %s (%s, by %s)", s.Range, s.RangeMode, s.Grouping)))

	rows := seriesRows(s, r.EnergyUnit)
	if len(rows) == 0 {
		fmt.Fprintln(out, p.muted("No entries logged for this period."))
	} else {
		fmt.Fprintln(out, newTable(bucketHeader(s.Grouping), "ENERGY", "P", "C", "F").Rows(rows...).String())
	}

	sum := s.Summary
	fmt.Fprintf(out, "%s: %s  P %.1f  C %.1f  F %.1f\n", totalLabel(s.Grouping, r.Combine), formatEnergy(sum.Totals.Calories, r.EnergyUnit), sum.Totals.Protein, sum.Totals.Carbs, sum.Totals.Fat)
	fmt.Fprintf(out, "Average per %s: %s  P %.1f  C %.1f  F %.1f\n", bucketNoun(s.Grouping), formatEnergy(sum.Average.Calories, r.EnergyUnit), sum.Average.Protein, sum.Average.Carbs, sum.Average.Fat)
	fmt.Fprintf(out, "Split: %s\n", formatSplit(sum.Split))
	if r.Goals != nil {
		fmt.Fprintf(out, "Goals: energy %s  protein %s  carbs %s  fat %s\n",
			goalPct(r.Goals.Calories), goalPct(r.Goals.Protein), goalPct(r.Goals.Carbs), goalPct(r.Goals.Fat))
	}
}

func goalPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func bucketHeader(g trends.GroupingMode) string {
	switch g {
	case trends.GroupingWeek:
		return "WEEK"
	case trends.GroupingMonth:
		return "MONTH"
	}
	return "DAY"
}

// totalLabel names the summed row. Averaged weeks add up to something other
// than the period total.
func totalLabel(g trends.GroupingMode, combine trends.Combine) string {
	if g == trends.GroupingWeek && combine == trends.CombineAvg {
		return "Sum of weekly averages"
	}
	return "Total"
}

func bucketNoun(g trends.GroupingMode) string {
	switch g {
	case trends.GroupingWeek:
		return "week"
	case trends.GroupingMonth:
		return "month"
	}
	return "day"
}

func printComparison(out io.Writer, res trends.ComparisonResult, unit string, p palette) {
	a, b := res.A, res.B
	fmt.Fprintln(out, p.title(fmt.Sprintf("Compare %s vs %s", a.Selector, b.Selector)))
	fmt.Fprintf(out, "A: %s, %d/%d days logged\n", a.Range, a.DaysWithData, a.DaysInRange)
	fmt.Fprintf(out, "B: %s, %d/%d days logged\n", b.Range, b.DaysWithData, b.DaysInRange)

	energy := res.Delta.Calories
	energy.A = energyValue(energy.A, unit)
	energy.B = energyValue(energy.B, unit)
	energy.Delta = energy.A - energy.B

	rows := [][]string{
		deltaRow(p, "Energy", energy, unit),
		deltaRow(p, "Protein", res.Delta.Protein, "g"),
		deltaRow(p, "Carbs", res.Delta.Carbs, "g"),
		deltaRow(p, "Fat", res.Delta.Fat, "g"),
	}
	fmt.Fprintln(out, newTable("TOTAL", a.Selector.String(), b.Selector.String(), "CHANGE").Rows(rows...).String())

	fmt.Fprintf(out, "Average per logged day: %s vs %s\n", formatEnergy(a.Average.Calories, unit), formatEnergy(b.Average.Calories, unit))
	fmt.Fprintf(out, "Split A: %s\n", formatSplit(a.Split))
	fmt.Fprintf(out, "Split B: %s\n", formatSplit(b.Split))
}

func deltaRow(p palette, label string, d trends.DeltaStat, unit string) []string {
	return []string{
		label,
		fmt.Sprintf("%.1f", d.A),
		fmt.Sprintf("%.1f", d.B),
		p.signed(d.Delta, formatDelta(d, unit)),
	}
}
