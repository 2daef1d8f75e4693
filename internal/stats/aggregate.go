package stats

import (
	"fmt"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

// Aggregate computes the statistics bundle for records and a profession filter.
// Records are read only.
func Aggregate(records []models.Vacancy, profession string) (Bundle, error) {
	acc := NewAccumulator(profession)
	for _, v := range records {
		acc.Add(v)
	}
	return acc.Bundle()
}

// AggregateRows builds vacancies from cleaned rows and aggregates them.
// The first row that cannot become a vacancy aborts the whole run.
func AggregateRows(rows []models.Row, n *currency.Normalizer, profession string) (Bundle, error) {
	acc := NewAccumulator(profession)
	for i, row := range rows {
		v, err := models.NewVacancy(row, n)
		if err != nil {
			return Bundle{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		acc.Add(v)
	}
	return acc.Bundle()
}
