package table

import (
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/dataset"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/utils"
)

var experienceLabels = map[string]string{
	"noExperience": "No experience",
	"between1And3": "1 to 3 years",
	"between3And6": "3 to 6 years",
	"moreThan6":    "More than 6 years",
}

var currencyNames = map[string]string{
	"AZN": "Manats",
	"BYR": "Belarusian rubles",
	"EUR": "Euros",
	"GEL": "Georgian lari",
	"KGS": "Kyrgyz som",
	"KZT": "Tenge",
	"RUR": "Rubles",
	"UAH": "Hryvnias",
	"USD": "Dollars",
	"UZS": "Uzbek sum",
}

// ExperienceLabel translates an experience id, leaving unknown ids as they are
func ExperienceLabel(id string) string {
	if label, ok := experienceLabels[id]; ok {
		return label
	}
	return id
}

// CurrencyName translates a currency code, leaving unknown codes as they are
func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}

// TaxLabel describes the salary_gross flag
func TaxLabel(gross string) string {
	if utils.YesNo(gross) == "Yes" {
		return "Before tax"
	}
	return "After tax"
}

// FormatSalary renders the salary columns as "10 000 - 20 000 (Rubles) (Before tax)"
func FormatSalary(row models.Row) string {
	return fmt.Sprintf("%s - %s (%s) (%s)",
		utils.FormatAmount(row[models.ColumnSalaryFrom]),
		utils.FormatAmount(row[models.ColumnSalaryTo]),
		CurrencyName(row[models.ColumnSalaryCurrency]),
		TaxLabel(row[models.ColumnSalaryGross]),
	)
}

// formatRow returns the display cells of a row, without the number column
func formatRow(row models.Row, maxText int) []string {
	cut := func(s string) string { return utils.TruncateString(s, maxText) }
	skills := strings.ReplaceAll(row[models.ColumnKeySkills], dataset.SkillSeparator, "\n")

	return []string{
		cut(row[models.ColumnName]),
		cut(row[models.ColumnDescription]),
		cut(skills),
		ExperienceLabel(row[models.ColumnExperienceID]),
		utils.YesNo(row[models.ColumnPremium]),
		cut(row[models.ColumnEmployerName]),
		FormatSalary(row),
		cut(row[models.ColumnAreaName]),
		utils.FormatDate(row[models.ColumnPublishedAt]),
	}
}
