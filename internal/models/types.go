package models

import "github.com/shopspring/decimal"

// Column names of the vacancy export
const (
	ColumnName           = "name"
	ColumnDescription    = "description"
	ColumnKeySkills      = "key_skills"
	ColumnExperienceID   = "experience_id"
	ColumnPremium        = "premium"
	ColumnEmployerName   = "employer_name"
	ColumnSalaryFrom     = "salary_from"
	ColumnSalaryTo       = "salary_to"
	ColumnSalaryGross    = "salary_gross"
	ColumnSalaryCurrency = "salary_currency"
	ColumnAreaName       = "area_name"
	ColumnPublishedAt    = "published_at"
)

// StatsColumns are the fields every row must carry to become a Vacancy
var StatsColumns = []string{
	ColumnName,
	ColumnSalaryFrom,
	ColumnSalaryTo,
	ColumnSalaryCurrency,
	ColumnAreaName,
	ColumnPublishedAt,
}

// Row is one cleaned input row keyed by header name
type Row map[string]string

// Salary represents the salary range of a vacancy
type Salary struct {
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Currency string `json:"currency"`
	// Normalized is the midpoint of the range in the reference currency
	Normalized decimal.Decimal `json:"normalized"`
}

// Vacancy represents one cleaned job posting
type Vacancy struct {
	Name          string `json:"name"`
	Salary        Salary `json:"salary"`
	Area          string `json:"area"`
	PublishedYear int    `json:"published_year"`
}
