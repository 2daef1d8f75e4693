package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

var (
	// ErrEmptyFile is returned for a zero-byte input file
	ErrEmptyFile = errors.New("empty file")
	// ErrNoData is returned when no row survives the shape check
	ErrNoData = errors.New("no data")
)

// Dataset is a parsed vacancy export. Records only holds rows with
// exactly one value per header column and no empty values.
type Dataset struct {
	Path    string
	Size    int64
	Header  []string
	Records [][]string
	// Dropped counts the rows rejected by the shape check
	Dropped int
}

// Read parses the CSV file at path
func Read(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.Path = path
	ds.Size = info.Size()
	return ds, nil
}

// Parse reads a CSV export whose first record is the header.
// A leading UTF-8 byte order mark is skipped.
func Parse(r io.Reader) (*Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrEmptyFile
	}

	ds := &Dataset{Header: all[0]}
	for _, record := range all[1:] {
		if !complete(record, len(ds.Header)) {
			ds.Dropped++
			continue
		}
		ds.Records = append(ds.Records, record)
	}

	if len(ds.Records) == 0 {
		return nil, ErrNoData
	}
	return ds, nil
}

func complete(record []string, columns int) bool {
	if len(record) != columns {
		return false
	}
	for _, v := range record {
		if v == "" {
			return false
		}
	}
	return true
}

// Rows returns the cleaned records keyed by header, multi-line values joined with ", "
func (d *Dataset) Rows() []models.Row {
	return d.rows(func(string) string { return LineSeparator })
}

// TableRows is like Rows but keeps skill lists separated by SkillSeparator
func (d *Dataset) TableRows() []models.Row {
	return d.rows(func(column string) string {
		if column == models.ColumnKeySkills {
			return SkillSeparator
		}
		return LineSeparator
	})
}

func (d *Dataset) rows(separator func(column string) string) []models.Row {
	rows := make([]models.Row, 0, len(d.Records))
	for _, record := range d.Records {
		row := make(models.Row, len(d.Header))
		for i, column := range d.Header {
			row[column] = CleanField(record[i], separator(column))
		}
		rows = append(rows, row)
	}
	return rows
}

// Vacancies turns cleaned rows into vacancy records. When progress is not nil
// a progress bar is drawn on it. The first malformed row aborts the build.
func Vacancies(rows []models.Row, n *currency.Normalizer, progress io.Writer) ([]models.Vacancy, error) {
	var bar *pb.ProgressBar
	if progress != nil {
		bar = pb.Simple.New(len(rows))
		bar.SetWriter(progress)
		bar.Start()
		defer bar.Finish()
	}

	vacancies := make([]models.Vacancy, 0, len(rows))
	for i, row := range rows {
		v, err := models.NewVacancy(row, n)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		vacancies = append(vacancies, v)
		if bar != nil {
			bar.Increment()
		}
	}
	return vacancies, nil
}
