package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/utils"
)

// PDFOptions configures the PDF report
type PDFOptions struct {
	// FontPath points at a UTF-8 TrueType font. Without it the core
	// Helvetica font is used, which only covers Latin-1 text.
	FontPath string
}

const reportFont = "report"

type pdfDoc struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func newPDFDoc(opts PDFOptions) (*pdfDoc, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	d := &pdfDoc{pdf: pdf}
	if opts.FontPath != "" {
		pdf.AddUTF8Font(reportFont, "", opts.FontPath)
		pdf.AddUTF8Font(reportFont, "B", opts.FontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load font %s: %w", opts.FontPath, err)
		}
		d.family = reportFont
		d.tr = func(s string) string { return s }
	} else {
		d.family = "Helvetica"
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return d, nil
}

// UnrenderableText lists the profession and city names the configured font
// cannot show. It is always empty when a UTF-8 font is set.
func UnrenderableText(b stats.Bundle, opts PDFOptions) []string {
	if opts.FontPath != "" {
		return nil
	}

	tr := fpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")
	texts := []string{b.Profession}
	for _, s := range b.SalaryByCity {
		texts = append(texts, s.Area)
	}
	for _, s := range b.ShareByCity {
		texts = append(texts, s.Area)
	}

	var lost []string
	seen := make(map[string]bool)
	for _, text := range texts {
		if seen[text] {
			continue
		}
		seen[text] = true
		for _, r := range text {
			if r != '.' && tr(string(r)) == "." {
				lost = append(lost, text)
				break
			}
		}
	}
	return lost
}

// RenderPDF writes the PDF report for b to w
func RenderPDF(w io.Writer, b stats.Bundle, opts PDFOptions) error {
	d, err := newPDFDoc(opts)
	if err != nil {
		return err
	}

	d.chartsPage(b)
	d.tablesPage(b)

	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WritePDF saves the PDF report for b at path
func WritePDF(path string, b stats.Bundle, opts PDFOptions) error {
	d, err := newPDFDoc(opts)
	if err != nil {
		return err
	}

	d.chartsPage(b)
	d.tablesPage(b)

	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (d *pdfDoc) heading(text string, size float64) {
	d.pdf.SetFont(d.family, "B", size)
	d.pdf.CellFormat(0, size/2+2, d.tr(text), "", 1, "C", false, 0, "")
}

func (d *pdfDoc) chartsPage(b stats.Bundle) {
	d.pdf.AddPage()
	d.heading("Vacancy analytics report - "+b.Profession, 16)

	years := make([]string, 0, len(b.SalaryByYear))
	for _, y := range b.Years() {
		years = append(years, strconv.Itoa(y))
	}
	values := func(s stats.YearSeries) []int64 {
		out := make([]int64, len(s))
		for i, p := range s {
			out[i] = p.Value
		}
		return out
	}

	const top, w, h = 28, 95, 125
	d.groupedBars(box{10, top, w, h}, "Salary level by year",
		years,
		[2][]int64{values(b.SalaryByYear), values(b.ProfessionSalaryByYear)},
		[2]string{"average salary", "average salary - " + b.Profession})
	d.groupedBars(box{10 + w, top, w, h}, "Vacancy count by year",
		years,
		[2][]int64{values(b.CountByYear), values(b.ProfessionCountByYear)},
		[2]string{"vacancy count", "vacancy count - " + b.Profession})

	cities := make([]string, len(b.SalaryByCity))
	salaries := make([]int64, len(b.SalaryByCity))
	for i, s := range b.SalaryByCity {
		cities[i], salaries[i] = s.Area, s.Salary
	}
	d.horizontalBars(box{10, top + h, w, h}, "Salary level by city", cities, salaries)

	labels := make([]string, 0, len(b.ShareByCity)+1)
	shares := make([]float64, 0, len(b.ShareByCity)+1)
	for _, s := range b.ShareByCity {
		labels = append(labels, s.Area)
		shares = append(shares, s.Share)
	}
	if rest := otherShare(b.ShareByCity); rest > 0 {
		labels = append(labels, "Other")
		shares = append(shares, rest)
	}
	d.pie(box{10 + w, top + h, w, h}, "Vacancy share by city", labels, shares)
}

func (d *pdfDoc) tableRow(widths []float64, cells []string, bordered []bool) {
	for i, text := range cells {
		border := ""
		if bordered[i] {
			border = "1"
		}
		d.pdf.CellFormat(widths[i], 6, d.tr(text), border, 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *pdfDoc) tablesPage(b stats.Bundle) {
	d.pdf.AddPage()

	d.heading("Statistics by year", 12)
	yearWidths := []float64{20, 42, 50, 33, 45}
	all := []bool{true, true, true, true, true}

	headers := yearHeaders(b.Profession)
	for i := range headers {
		headers[i] = utils.TruncateString(headers[i], 32)
	}
	d.pdf.SetFont(d.family, "B", 8)
	d.tableRow(yearWidths, headers, all)

	d.pdf.SetFont(d.family, "", 8)
	for _, r := range yearRows(b) {
		d.tableRow(yearWidths, []string{
			strconv.Itoa(r.Year),
			utils.FormatNumber(r.Salary),
			utils.FormatNumber(r.ProfessionSalary),
			utils.FormatNumber(r.Count),
			utils.FormatNumber(r.ProfessionCount),
		}, all)
	}

	d.pdf.Ln(8)
	d.heading("Statistics by city", 12)
	cityWidths := []float64{55, 30, 10, 55, 40}
	spaced := []bool{true, true, false, true, true}

	d.pdf.SetFont(d.family, "B", 8)
	d.tableRow(cityWidths, cityHeaders, spaced)

	d.pdf.SetFont(d.family, "", 8)
	for _, r := range cityRows(b) {
		cells := make([]string, 5)
		if r.Salary != nil {
			cells[0] = utils.TruncateString(r.Salary.Area, 30)
			cells[1] = utils.FormatNumber(r.Salary.Salary)
		}
		if r.Share != nil {
			cells[3] = utils.TruncateString(r.Share.Area, 30)
			cells[4] = utils.FormatPercent(r.Share.Share)
		}
		d.tableRow(cityWidths, cells, spaced)
	}
}
