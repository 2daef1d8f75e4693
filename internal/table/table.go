package table

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

var (
	ErrRowRange = errors.New("invalid row range")
	ErrColumn   = errors.New("unknown column")
)

// NothingFound is printed when no row passes the filter
const NothingFound = "Nothing found"

// NumberTitle heads the column holding the running number of matched rows
const NumberTitle = "№"

// Titles are the display columns, in print order
var Titles = []string{
	NumberTitle, "Name", "Description", "Skills", "Experience",
	"Premium", "Company", "Salary", "Area", "Published",
}

// Columns are the export fields every row must carry in table mode
var Columns = []string{
	models.ColumnName,
	models.ColumnDescription,
	models.ColumnKeySkills,
	models.ColumnExperienceID,
	models.ColumnPremium,
	models.ColumnEmployerName,
	models.ColumnSalaryFrom,
	models.ColumnSalaryTo,
	models.ColumnSalaryGross,
	models.ColumnSalaryCurrency,
	models.ColumnAreaName,
	models.ColumnPublishedAt,
}

// Options controls what Printer shows
type Options struct {
	Filter  string // "<Title>: <value>"
	Rows    string // "a" or "a b", 1-based, end exclusive
	Columns string // "Name, Company"

	MaxColumnWidth int
	MaxTextLength  int
}

// Printer renders filtered vacancy rows as a boxed table
type Printer struct {
	filter  Filter
	start   int
	end     int // -1 for no end
	columns []int
	width   int
	maxText int
}

// New validates opts and returns a Printer
func New(opts Options) (*Printer, error) {
	filter, err := ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	start, end, err := parseRowRange(opts.Rows)
	if err != nil {
		return nil, err
	}
	columns, err := parseColumns(opts.Columns)
	if err != nil {
		return nil, err
	}

	return &Printer{
		filter:  filter,
		start:   start,
		end:     end,
		columns: columns,
		width:   opts.MaxColumnWidth,
		maxText: opts.MaxTextLength,
	}, nil
}

func parseRowRange(s string) (int, int, error) {
	fields := strings.Fields(s)
	if len(fields) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrRowRange, s)
	}

	bounds := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("%w: %q", ErrRowRange, s)
		}
		bounds[i] = n - 1
	}

	switch len(bounds) {
	case 0:
		return 0, -1, nil
	case 1:
		return bounds[0], -1, nil
	}
	if bounds[1] < bounds[0] {
		return 0, 0, fmt.Errorf("%w: end before start in %q", ErrRowRange, s)
	}
	return bounds[0], bounds[1], nil
}

func parseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		columns := make([]int, len(Titles))
		for i := range columns {
			columns[i] = i
		}
		return columns, nil
	}

	index := make(map[string]int, len(Titles))
	for i, t := range Titles {
		index[t] = i
	}

	columns := []int{0}
	for _, name := range strings.Split(s, ", ") {
		i, ok := index[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumn, name)
		}
		columns = append(columns, i)
	}
	return columns, nil
}

// Match returns the formatted cells of every row passing the filter, numbered from 1
func (p *Printer) Match(rows []models.Row) ([][]string, error) {
	var matched [][]string
	for i, row := range rows {
		for _, c := range Columns {
			if _, ok := row[c]; !ok {
				return nil, fmt.Errorf("row %d: %w", i+1, &models.MissingFieldError{Field: c})
			}
		}
		if !p.filter.Match(row) {
			continue
		}
		cells := append([]string{strconv.Itoa(len(matched) + 1)}, formatRow(row, p.maxText)...)
		matched = append(matched, cells)
	}
	return matched, nil
}

// Render returns the table for rows, or NothingFound when no row matches
func (p *Printer) Render(rows []models.Row) (string, error) {
	matched, err := p.Match(rows)
	if err != nil {
		return "", err
	}
	if len(matched) == 0 {
		return NothingFound, nil
	}

	start, end := p.start, p.end
	if start > len(matched) {
		start = len(matched)
	}
	if end < 0 || end > len(matched) {
		end = len(matched)
	}

	data := pterm.TableData{p.project(Titles)}
	for _, cells := range matched[start:end] {
		data = append(data, p.project(cells))
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRowSeparator("-").
		WithHeaderRowSeparator("-").
		WithData(data).
		Srender()
}

// Print writes the rendered table to w
func (p *Printer) Print(w io.Writer, rows []models.Row) error {
	out, err := p.Render(rows)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// project picks the selected columns and wraps them to the column width
func (p *Printer) project(cells []string) []string {
	out := make([]string, len(p.columns))
	for i, c := range p.columns {
		if p.width > 0 {
			out[i] = runewidth.Wrap(cells[c], p.width)
		} else {
			out[i] = cells[c]
		}
	}
	return out
}
