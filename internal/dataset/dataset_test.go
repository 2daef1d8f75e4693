package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

const sample = "\ufeffname,salary_from,salary_to,salary_currency,area_name,published_at\n" +
	"\"<b>Go</b>  developer\",100000.0,150000.0,RUR,Moscow,2022-07-05T18:19:30+0300\n" +
	"Analyst,,90000,RUR,Kazan,2021-07-05T18:19:30+0300\n" +
	"Clerk,1000,2000,USD,\"Saint\nPetersburg\",2020-01-01T00:00:00+0300\n" +
	"Broken,1,2,RUR,Tomsk\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vacancies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	ds, err := Read(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, models.StatsColumns, ds.Header)
	assert.Len(t, ds.Records, 2)
	assert.Equal(t, 2, ds.Dropped)
	assert.Equal(t, int64(len(sample)), ds.Size)

	rows := ds.Rows()
	assert.Equal(t, "Go developer", rows[0][models.ColumnName])
	assert.Equal(t, "Saint, Petersburg", rows[1][models.ColumnAreaName])
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(writeFile(t, ""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadNoData(t *testing.T) {
	_, err := Read(writeFile(t, "name,salary_from\nEngineer,\n"))
	assert.True(t, errors.Is(err, ErrNoData), "got %v", err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTableRowsKeepSkillSeparator(t *testing.T) {
	ds, err := Parse(strings.NewReader("name,key_skills\nDev,\"Go\nSQL\n  Docker\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "Go, SQL, Docker", ds.Rows()[0][models.ColumnKeySkills])
	assert.Equal(t, "Go# SQL# Docker", ds.TableRows()[0][models.ColumnKeySkills])
}

func TestVacancies(t *testing.T) {
	ds, err := Read(writeFile(t, sample))
	require.NoError(t, err)

	var progress bytes.Buffer
	vacancies, err := Vacancies(ds.Rows(), currency.Default(), &progress)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	assert.Equal(t, 2022, vacancies[0].PublishedYear)
	assert.Equal(t, "90990", vacancies[1].Salary.Normalized.String())
}

func TestVacanciesStopsOnBadRow(t *testing.T) {
	rows := []models.Row{{
		models.ColumnName:           "Dev",
		models.ColumnSalaryFrom:     "1",
		models.ColumnSalaryTo:       "2",
		models.ColumnSalaryCurrency: "???",
		models.ColumnAreaName:       "Moscow",
		models.ColumnPublishedAt:    "2020",
	}}
	_, err := Vacancies(rows, currency.Default(), nil)
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
}

func TestStripTagsDecodesEntitiesWithoutMarkup(t *testing.T) {
	assert.Equal(t, StripTags("R&amp;D <b>lead</b>"), StripTags("R&amp;D lead"))
	assert.Equal(t, "plain", StripTags("plain"))
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		in, sep, want string
	}{
		{"plain", LineSeparator, "plain"},
		{"  lots   of\tspace ", LineSeparator, "lots of space"},
		{"<p>Hello <strong>world</strong></p>", LineSeparator, "Hello world"},
		{"one\ntwo\nthree", LineSeparator, "one, two, three"},
		{"Go\nSQL", SkillSeparator, "Go# SQL"},
		{"R&amp;D <i>team</i>", LineSeparator, "R&D team"},
		{"R&amp;D team", LineSeparator, "R&D team"},
		{"Tom & Jerry", LineSeparator, "Tom & Jerry"},
		{"a <b c", LineSeparator, "a <b c"},
		{"<b>x</b> < y", LineSeparator, "x < y"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanField(tt.in, tt.sep), tt.in)
	}
}
