package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
)

// Console prints a bundle as text, optionally followed by terminal bar charts
type Console struct {
	w      io.Writer
	charts bool
}

func NewConsole(w io.Writer, charts bool) *Console {
	return &Console{w: w, charts: charts}
}

// Render prints one "Title: {key: value, ...}" line per series
func (c *Console) Render(b stats.Bundle) error {
	for _, s := range stats.AllSeries {
		if _, err := fmt.Fprintf(c.w, "%s: %s\n", s.Title(), FormatSeries(b, s)); err != nil {
			return err
		}
	}

	if !c.charts {
		return nil
	}
	return c.renderCharts(b)
}

func (c *Console) renderCharts(b stats.Bundle) error {
	yearBars := make(pterm.Bars, 0, len(b.SalaryByYear))
	for _, p := range b.SalaryByYear {
		yearBars = append(yearBars, bar(strconv.Itoa(p.Year), p.Value))
	}
	cityBars := make(pterm.Bars, 0, len(b.SalaryByCity))
	for _, s := range b.SalaryByCity {
		cityBars = append(cityBars, bar(s.Area, s.Salary))
	}

	charts := []struct {
		title string
		bars  pterm.Bars
	}{
		{stats.SeriesSalaryByYear.Title(), yearBars},
		{stats.SeriesSalaryByCity.Title(), cityBars},
	}

	for _, chart := range charts {
		if len(chart.bars) == 0 {
			continue
		}
		out, err := pterm.DefaultBarChart.WithBars(chart.bars).WithHorizontal().WithShowValue().Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(c.w, pterm.DefaultSection.Sprint(chart.title), out); err != nil {
			return err
		}
	}
	return nil
}

func bar(label string, value int64) pterm.Bar {
	return pterm.Bar{
		Label:      label,
		Value:      int(value),
		Style:      pterm.NewStyle(pterm.FgCyan),
		LabelStyle: pterm.NewStyle(pterm.FgDefault),
	}
}

// FormatSeries renders one series as {key: value, ...} in bundle order
func FormatSeries(b stats.Bundle, s stats.Series) string {
	var parts []string

	switch s {
	case stats.SeriesSalaryByCity:
		for _, e := range b.SalaryByCity {
			parts = append(parts, fmt.Sprintf("%s: %d", e.Area, e.Salary))
		}
	case stats.SeriesShareByCity:
		for _, e := range b.ShareByCity {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Area, strconv.FormatFloat(e.Share, 'f', -1, 64)))
		}
	default:
		for _, p := range b.YearSeries(s) {
			parts = append(parts, fmt.Sprintf("%d: %d", p.Year, p.Value))
		}
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
