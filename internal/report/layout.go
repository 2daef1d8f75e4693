package report

import (
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
)

// yearHeaders are the column titles of the per-year table
func yearHeaders(profession string) []string {
	return []string{
		"Year",
		"Average salary",
		"Average salary - " + profession,
		"Vacancies",
		"Vacancies - " + profession,
	}
}

// cityHeaders are the column titles of the per-city table; the third column is a spacer
var cityHeaders = []string{"City", "Salary level", "", "City", "Vacancy share"}

type yearRow struct {
	Year             int
	Salary           int64
	ProfessionSalary int64
	Count            int64
	ProfessionCount  int64
}

func yearRows(b stats.Bundle) []yearRow {
	rows := make([]yearRow, len(b.SalaryByYear))
	for i, p := range b.SalaryByYear {
		rows[i] = yearRow{
			Year:             p.Year,
			Salary:           p.Value,
			ProfessionSalary: b.ProfessionSalaryByYear[i].Value,
			Count:            b.CountByYear[i].Value,
			ProfessionCount:  b.ProfessionCountByYear[i].Value,
		}
	}
	return rows
}

// cityRow pairs the n-th entries of the two independent city rankings
type cityRow struct {
	Salary *stats.AreaSalary
	Share  *stats.AreaShare
}

func cityRows(b stats.Bundle) []cityRow {
	n := len(b.SalaryByCity)
	if len(b.ShareByCity) > n {
		n = len(b.ShareByCity)
	}

	rows := make([]cityRow, n)
	for i := range rows {
		if i < len(b.SalaryByCity) {
			rows[i].Salary = &b.SalaryByCity[i]
		}
		if i < len(b.ShareByCity) {
			rows[i].Share = &b.ShareByCity[i]
		}
	}
	return rows
}

// otherShare is the part of all vacancies not covered by the share ranking
func otherShare(shares []stats.AreaShare) float64 {
	rest := 1.0
	for _, s := range shares {
		rest -= s.Share
	}
	if rest < 1e-9 {
		return 0
	}
	return rest
}
