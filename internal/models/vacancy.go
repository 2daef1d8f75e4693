package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrMalformedYear   = errors.New("malformed publication year")
	ErrMalformedSalary = errors.New("malformed salary")
)

// MissingFieldError reports a row lacking one of StatsColumns
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row has no %q field", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MalformedYearError reports a publication date without a leading 4-digit year
type MalformedYearError struct {
	Value string
}

func (e *MalformedYearError) Error() string {
	return fmt.Sprintf("cannot read year from %q", e.Value)
}

func (e *MalformedYearError) Is(target error) bool { return target == ErrMalformedYear }

// MalformedSalaryError reports a salary bound that is not an integer
type MalformedSalaryError struct {
	Field string
	Value string
}

func (e *MalformedSalaryError) Error() string {
	return fmt.Sprintf("%s: cannot read salary from %q", e.Field, e.Value)
}

func (e *MalformedSalaryError) Is(target error) bool { return target == ErrMalformedSalary }

// NewVacancy builds a Vacancy from a cleaned row, normalizing its salary with n
func NewVacancy(row Row, n *currency.Normalizer) (Vacancy, error) {
	for _, field := range StatsColumns {
		if _, ok := row[field]; !ok {
			return Vacancy{}, &MissingFieldError{Field: field}
		}
	}

	salary, err := NewSalary(row[ColumnSalaryFrom], row[ColumnSalaryTo], row[ColumnSalaryCurrency], n)
	if err != nil {
		return Vacancy{}, err
	}

	year, err := ParseYear(row[ColumnPublishedAt])
	if err != nil {
		return Vacancy{}, err
	}

	return Vacancy{
		Name:          row[ColumnName],
		Salary:        salary,
		Area:          row[ColumnAreaName],
		PublishedYear: year,
	}, nil
}

// NewSalary parses both bounds and normalizes their midpoint
func NewSalary(from, to, code string, n *currency.Normalizer) (Salary, error) {
	low, err := ParseSalaryBound(from)
	if err != nil {
		return Salary{}, &MalformedSalaryError{Field: ColumnSalaryFrom, Value: from}
	}
	high, err := ParseSalaryBound(to)
	if err != nil {
		return Salary{}, &MalformedSalaryError{Field: ColumnSalaryTo, Value: to}
	}

	mid := decimal.NewFromInt(low).Add(decimal.NewFromInt(high)).Div(decimal.NewFromInt(2))
	normalized, err := n.Normalize(code, mid)
	if err != nil {
		return Salary{}, err
	}

	return Salary{From: low, To: high, Currency: code, Normalized: normalized}, nil
}

// ParseSalaryBound drops everything from the first '.' and parses the rest as an integer
func ParseSalaryBound(s string) (int64, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// ParseYear reads the year from the first 4 characters of a publication timestamp
func ParseYear(publishedAt string) (int, error) {
	if len(publishedAt) < 4 {
		return 0, &MalformedYearError{Value: publishedAt}
	}
	prefix := publishedAt[:4]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return 0, &MalformedYearError{Value: publishedAt}
		}
	}
	year, _ := strconv.Atoi(prefix)
	return year, nil
}

// Matches reports whether the vacancy title contains profession.
// An empty profession matches nothing.
func (v Vacancy) Matches(profession string) bool {
	return profession != "" && strings.Contains(v.Name, profession)
}
