package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/dataset"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/utils"
)

var (
	ErrFilterFormat    = errors.New("invalid filter format")
	ErrFilterParameter = errors.New("invalid filter parameter")
)

// Filter titles accepted in "<Title>: <value>" expressions
const (
	FilterName         = "Name"
	FilterDescription  = "Description"
	FilterSkills       = "Skills"
	FilterExperience   = "Experience"
	FilterPremium      = "Premium"
	FilterCompany      = "Company"
	FilterSalary       = "Salary"
	FilterGross        = "Salary before tax"
	FilterCurrency     = "Salary currency"
	FilterArea         = "Area"
	FilterPublished    = "Published"
	filterSeparator    = ": "
	skillListSeparator = ", "
)

var filterColumns = map[string]string{
	FilterName:        models.ColumnName,
	FilterDescription: models.ColumnDescription,
	FilterSkills:      models.ColumnKeySkills,
	FilterExperience:  models.ColumnExperienceID,
	FilterPremium:     models.ColumnPremium,
	FilterCompany:     models.ColumnEmployerName,
	FilterSalary:      models.ColumnSalaryTo,
	FilterGross:       models.ColumnSalaryGross,
	FilterCurrency:    models.ColumnSalaryCurrency,
	FilterArea:        models.ColumnAreaName,
	FilterPublished:   models.ColumnPublishedAt,
}

// FilterParameterError reports an unknown filter title
type FilterParameterError struct {
	Title      string
	Suggestion string
}

func (e *FilterParameterError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown filter parameter %q, did you mean %q?", e.Title, e.Suggestion)
	}
	return fmt.Sprintf("unknown filter parameter %q", e.Title)
}

func (e *FilterParameterError) Is(target error) bool { return target == ErrFilterParameter }

// Filter keeps the rows whose column matches Value. The zero Filter keeps everything.
type Filter struct {
	Title string
	Value string

	salary int64
}

// ParseFilter parses "<Title>: <value>". An empty string yields the zero Filter.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return Filter{}, nil
	}

	title, value, ok := strings.Cut(s, filterSeparator)
	if !ok {
		return Filter{}, fmt.Errorf("%w: expected \"<parameter>: <value>\", got %q", ErrFilterFormat, s)
	}
	if _, known := filterColumns[title]; !known {
		return Filter{}, &FilterParameterError{Title: title, Suggestion: suggest(title)}
	}

	f := Filter{Title: title, Value: value}
	if title == FilterSalary {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: salary must be an integer, got %q", ErrFilterFormat, value)
		}
		f.salary = n
	}
	return f, nil
}

// suggest returns the known title closest to title, if any is close enough
func suggest(title string) string {
	titles := make([]string, 0, len(filterColumns))
	for t := range filterColumns {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	if ranks := fuzzy.RankFindFold(title, titles); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 4
	for _, t := range titles {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(title), strings.ToLower(t)); d < bestDistance {
			best, bestDistance = t, d
		}
	}
	return best
}

// Active reports whether the filter restricts anything
func (f Filter) Active() bool { return f.Title != "" }

// Match reports whether row passes the filter
func (f Filter) Match(row models.Row) bool {
	if !f.Active() {
		return true
	}

	value := row[filterColumns[f.Title]]
	switch f.Title {
	case FilterSkills:
		have := make(map[string]bool)
		for _, skill := range strings.Split(value, dataset.SkillSeparator) {
			have[skill] = true
		}
		for _, skill := range strings.Split(f.Value, skillListSeparator) {
			if !have[skill] {
				return false
			}
		}
		return true
	case FilterSalary:
		from, err := models.ParseSalaryBound(row[models.ColumnSalaryFrom])
		if err != nil {
			return false
		}
		to, err := models.ParseSalaryBound(value)
		if err != nil {
			return false
		}
		return from <= f.salary && f.salary <= to
	case FilterCurrency:
		return CurrencyName(value) == f.Value
	case FilterPublished:
		return utils.FormatDate(value) == f.Value
	case FilterExperience:
		return ExperienceLabel(value) == f.Value
	case FilterPremium, FilterGross:
		return utils.YesNo(value) == f.Value
	}
	return value == f.Value
}
