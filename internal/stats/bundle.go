package stats

// YearValue is one point of a year series
type YearValue struct {
	Year  int   `json:"year"`
	Value int64 `json:"value"`
}

// YearSeries covers every year between the first and the last observed one
type YearSeries []YearValue

// Get returns the value recorded for year
func (s YearSeries) Get(year int) (int64, bool) {
	for _, p := range s {
		if p.Year == year {
			return p.Value, true
		}
	}
	return 0, false
}

// Sum adds up all values of the series
func (s YearSeries) Sum() int64 {
	var total int64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// AreaSalary is one entry of the city salary ranking
type AreaSalary struct {
	Area   string `json:"area"`
	Salary int64  `json:"salary"`
}

// AreaShare is one entry of the city vacancy share ranking
type AreaShare struct {
	Area  string  `json:"area"`
	Share float64 `json:"share"`
}

// Bundle holds every statistic produced by one aggregation run.
// It must be treated as read-only once returned.
type Bundle struct {
	Profession string `json:"profession"`
	Total      int    `json:"total"`

	SalaryByYear           YearSeries   `json:"salary_by_year"`
	CountByYear            YearSeries   `json:"count_by_year"`
	ProfessionSalaryByYear YearSeries   `json:"profession_salary_by_year"`
	ProfessionCountByYear  YearSeries   `json:"profession_count_by_year"`
	SalaryByCity           []AreaSalary `json:"salary_by_city"`
	ShareByCity            []AreaShare  `json:"share_by_city"`
}

// Years returns the year axis shared by the four year series
func (b Bundle) Years() []int {
	years := make([]int, len(b.SalaryByYear))
	for i, p := range b.SalaryByYear {
		years[i] = p.Year
	}
	return years
}

// Series identifies one of the six statistics of a Bundle, in report order
type Series int

const (
	SeriesSalaryByYear Series = iota
	SeriesCountByYear
	SeriesProfessionSalaryByYear
	SeriesProfessionCountByYear
	SeriesSalaryByCity
	SeriesShareByCity
)

// AllSeries lists the series in the order adapters print them
var AllSeries = []Series{
	SeriesSalaryByYear,
	SeriesCountByYear,
	SeriesProfessionSalaryByYear,
	SeriesProfessionCountByYear,
	SeriesSalaryByCity,
	SeriesShareByCity,
}

var seriesTitles = map[Series]string{
	SeriesSalaryByYear:           "Salary level by year",
	SeriesCountByYear:            "Vacancy count by year",
	SeriesProfessionSalaryByYear: "Salary level by year for the selected profession",
	SeriesProfessionCountByYear:  "Vacancy count by year for the selected profession",
	SeriesSalaryByCity:           "Salary level by city (descending)",
	SeriesShareByCity:            "Vacancy share by city (descending)",
}

// Title returns the human readable name of the series
func (s Series) Title() string {
	if t, ok := seriesTitles[s]; ok {
		return t
	}
	return "unknown series"
}

// YearSeries returns the year series s refers to, or nil for city series
func (b Bundle) YearSeries(s Series) YearSeries {
	switch s {
	case SeriesSalaryByYear:
		return b.SalaryByYear
	case SeriesCountByYear:
		return b.CountByYear
	case SeriesProfessionSalaryByYear:
		return b.ProfessionSalaryByYear
	case SeriesProfessionCountByYear:
		return b.ProfessionCountByYear
	}
	return nil
}
