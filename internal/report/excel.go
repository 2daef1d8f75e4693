package report

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
)

// ExcelOptions names the two worksheets of the workbook
type ExcelOptions struct {
	YearsSheet  string
	CitiesSheet string
}

type cellStyles struct {
	header  int
	plain   int
	percent int
}

// BuildWorkbook lays a bundle out as a two-sheet workbook. The caller owns
// the returned file and must Close it.
func BuildWorkbook(b stats.Bundle, opts ExcelOptions) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := newCellStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName(f.GetSheetName(0), opts.YearsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(opts.CitiesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := writeYearSheet(f, opts.YearsSheet, b, styles); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeCitySheet(f, opts.CitiesSheet, b, styles); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteExcel saves the workbook for b at path
func WriteExcel(path string, b stats.Bundle, opts ExcelOptions) error {
	f, err := BuildWorkbook(b, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteExcelTo streams the workbook for b to w
func WriteExcelTo(w io.Writer, b stats.Bundle, opts ExcelOptions) error {
	f, err := BuildWorkbook(b, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func newCellStyles(f *excelize.File) (cellStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	font := &excelize.Font{Family: "Calibri", Size: 11, Color: "000000"}

	var s cellStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Family: "Calibri", Size: 11, Color: "000000"},
		Border: border,
	}); err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	if s.plain, err = f.NewStyle(&excelize.Style{Font: font, Border: border}); err != nil {
		return s, fmt.Errorf("cell style: %w", err)
	}
	// built-in format 10 is "0.00%"
	if s.percent, err = f.NewStyle(&excelize.Style{Font: font, Border: border, NumFmt: 10}); err != nil {
		return s, fmt.Errorf("percent style: %w", err)
	}
	return s, nil
}

// sheetWriter places values and tracks the widest value per column
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	widths map[int]int
	err    error
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, widths: make(map[int]int)}
}

func (w *sheetWriter) set(col, row int, value interface{}, text string, style int) {
	if w.err != nil {
		return
	}
	if n := utf8.RuneCountInString(text); n > w.widths[col] {
		w.widths[col] = n
	} else if _, ok := w.widths[col]; !ok {
		w.widths[col] = 0
	}
	if value == nil {
		return
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
}

// finish sizes every column to its longest value plus a margin of two
func (w *sheetWriter) finish() error {
	if w.err != nil {
		return fmt.Errorf("sheet %s: %w", w.sheet, w.err)
	}
	for col, width := range w.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, float64(width+2)); err != nil {
			return fmt.Errorf("sheet %s: %w", w.sheet, err)
		}
	}
	return nil
}

func writeYearSheet(f *excelize.File, sheet string, b stats.Bundle, s cellStyles) error {
	w := newSheetWriter(f, sheet)
	for i, h := range yearHeaders(b.Profession) {
		w.set(i+1, 1, h, h, s.header)
	}

	for i, r := range yearRows(b) {
		row := i + 2
		values := []int64{int64(r.Year), r.Salary, r.ProfessionSalary, r.Count, r.ProfessionCount}
		for j, v := range values {
			w.set(j+1, row, v, strconv.FormatInt(v, 10), s.plain)
		}
	}
	return w.finish()
}

func writeCitySheet(f *excelize.File, sheet string, b stats.Bundle, s cellStyles) error {
	w := newSheetWriter(f, sheet)
	for i, h := range cityHeaders {
		if h == "" {
			w.set(i+1, 1, nil, "", s.header)
			continue
		}
		w.set(i+1, 1, h, h, s.header)
	}

	for i, r := range cityRows(b) {
		row := i + 2
		if r.Salary != nil {
			w.set(1, row, r.Salary.Area, r.Salary.Area, s.plain)
			w.set(2, row, r.Salary.Salary, strconv.FormatInt(r.Salary.Salary, 10), s.plain)
		}
		if r.Share != nil {
			w.set(4, row, r.Share.Area, r.Share.Area, s.plain)
			w.set(5, row, r.Share.Share, strconv.FormatFloat(r.Share.Share, 'f', -1, 64), s.percent)
		}
	}
	return w.finish()
}
