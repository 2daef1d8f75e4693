package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
)

func exampleBundle() stats.Bundle {
	return stats.Bundle{
		Profession:             "Engineer",
		Total:                  3,
		SalaryByYear:           stats.YearSeries{{Year: 2020, Value: 1000}, {Year: 2021, Value: 3000}},
		CountByYear:            stats.YearSeries{{Year: 2020, Value: 2}, {Year: 2021, Value: 1}},
		ProfessionSalaryByYear: stats.YearSeries{{Year: 2020, Value: 1500}, {Year: 2021, Value: 3000}},
		ProfessionCountByYear:  stats.YearSeries{{Year: 2020, Value: 1}, {Year: 2021, Value: 1}},
		SalaryByCity:           []stats.AreaSalary{{Area: "Moscow", Salary: 2250}, {Area: "Tomsk", Salary: 500}},
		ShareByCity:            []stats.AreaShare{{Area: "Moscow", Share: 0.6667}, {Area: "Tomsk", Share: 0.3333}},
	}
}

var excelOpts = ExcelOptions{YearsSheet: "Statistics by year", CitiesSheet: "Statistics by city"}

func TestConsoleRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsole(&buf, false).Render(exampleBundle()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Salary level by year: {2020: 1000, 2021: 3000}", lines[0])
	assert.Equal(t, "Vacancy count by year: {2020: 2, 2021: 1}", lines[1])
	assert.Equal(t, "Vacancy share by city (descending): {Moscow: 0.6667, Tomsk: 0.3333}", lines[5])
}

func TestConsoleRenderEmptyCities(t *testing.T) {
	b := exampleBundle()
	b.SalaryByCity, b.ShareByCity = nil, nil

	var buf bytes.Buffer
	require.NoError(t, NewConsole(&buf, true).Render(b))
	assert.Contains(t, buf.String(), "(descending): {}")
}

func TestFormatSeries(t *testing.T) {
	b := exampleBundle()
	assert.Equal(t, "{2020: 1, 2021: 1}", FormatSeries(b, stats.SeriesProfessionCountByYear))
	assert.Equal(t, "{Moscow: 2250, Tomsk: 500}", FormatSeries(b, stats.SeriesSalaryByCity))
}

func TestCityRowsPadShorterRanking(t *testing.T) {
	b := exampleBundle()
	b.ShareByCity = b.ShareByCity[:1]

	rows := cityRows(b)
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[1].Salary)
	assert.Nil(t, rows[1].Share)
}

func TestOtherShare(t *testing.T) {
	assert.Zero(t, otherShare(exampleBundle().ShareByCity))
	assert.InDelta(t, 0.25, otherShare([]stats.AreaShare{{Area: "A", Share: 0.5}, {Area: "B", Share: 0.25}}), 1e-9)
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteExcel(path, exampleBundle(), excelOpts))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Statistics by year", "Statistics by city"}, f.GetSheetList())

	rows, err := f.GetRows("Statistics by year")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Year", "Average salary", "Average salary - Engineer", "Vacancies", "Vacancies - Engineer"}, rows[0])
	assert.Equal(t, []string{"2020", "1000", "1500", "2", "1"}, rows[1])

	city, err := f.GetCellValue("Statistics by city", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Moscow", city)

	share, err := f.GetCellValue("Statistics by city", "E3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.3333", share)

	spacer, err := f.GetCellValue("Statistics by city", "C1")
	require.NoError(t, err)
	assert.Empty(t, spacer)

	width, err := f.GetColWidth("Statistics by year", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Average salary - Engineer")+2), width)
}

func TestWriteExcelTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcelTo(&buf, exampleBundle(), excelOpts))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, exampleBundle(), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFWithOtherSlice(t *testing.T) {
	b := exampleBundle()
	b.ShareByCity = []stats.AreaShare{{Area: "Moscow", Share: 0.6}}

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, WritePDF(path, b, PDFOptions{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePDFMissingFont(t *testing.T) {
	err := WritePDF(filepath.Join(t.TempDir(), "report.pdf"), exampleBundle(), PDFOptions{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestUnrenderableText(t *testing.T) {
	b := exampleBundle()
	assert.Empty(t, UnrenderableText(b, PDFOptions{}))

	b.Profession = "Аналитик"
	b.SalaryByCity[1].Area = "Томск"
	b.ShareByCity[1].Area = "Томск"
	assert.Equal(t, []string{"Аналитик", "Томск"}, UnrenderableText(b, PDFOptions{}))

	assert.Empty(t, UnrenderableText(b, PDFOptions{FontPath: "font.ttf"}))
}
