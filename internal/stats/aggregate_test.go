package stats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

func vacancy(name string, salary int64, area string, year int) models.Vacancy {
	return models.Vacancy{
		Name:          name,
		Salary:        models.Salary{From: salary, To: salary, Currency: "RUR", Normalized: decimal.NewFromInt(salary)},
		Area:          area,
		PublishedYear: year,
	}
}

func exampleRows() []models.Row {
	mk := func(name, from, to, area, published string) models.Row {
		return models.Row{
			models.ColumnName:           name,
			models.ColumnSalaryFrom:     from,
			models.ColumnSalaryTo:       to,
			models.ColumnSalaryCurrency: "RUR",
			models.ColumnAreaName:       area,
			models.ColumnPublishedAt:    published,
		}
	}
	return []models.Row{
		mk("Engineer", "1000", "2000", "Moscow", "2020-01-10T10:00:00+0300"),
		mk("Senior Engineer", "3000", "3000", "Moscow", "2021-03-01T10:00:00+0300"),
		mk("Clerk", "500", "500", "Tomsk", "2020-07-15T10:00:00+0300"),
	}
}

func TestAggregateRowsExample(t *testing.T) {
	b, err := AggregateRows(exampleRows(), currency.Default(), "Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Engineer", b.Profession)
	assert.Equal(t, 3, b.Total)
	assert.Equal(t, YearSeries{{2020, 1000}, {2021, 3000}}, b.SalaryByYear)
	assert.Equal(t, YearSeries{{2020, 2}, {2021, 1}}, b.CountByYear)
	assert.Equal(t, YearSeries{{2020, 1500}, {2021, 3000}}, b.ProfessionSalaryByYear)
	assert.Equal(t, YearSeries{{2020, 1}, {2021, 1}}, b.ProfessionCountByYear)
	assert.Equal(t, []AreaSalary{{"Moscow", 2250}, {"Tomsk", 500}}, b.SalaryByCity)
	assert.Equal(t, []AreaShare{{"Moscow", 0.6667}, {"Tomsk", 0.3333}}, b.ShareByCity)
}

func TestAggregateRowsPropagatesErrors(t *testing.T) {
	rows := exampleRows()
	rows[1][models.ColumnSalaryCurrency] = "GBP"
	_, err := AggregateRows(rows, currency.Default(), "Engineer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, currency.ErrUnknownCurrency))
	assert.Contains(t, err.Error(), "row 2")

	rows = exampleRows()
	rows[2][models.ColumnPublishedAt] = "n/a"
	_, err = AggregateRows(rows, currency.Default(), "Engineer")
	assert.True(t, errors.Is(err, models.ErrMalformedYear))
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil, "Engineer")
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = AggregateRows([]models.Row{}, currency.Default(), "")
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestYearSeriesFillGaps(t *testing.T) {
	records := []models.Vacancy{
		vacancy("Go developer", 100, "A", 2015),
		vacancy("Clerk", 300, "A", 2019),
		vacancy("Go developer", 200, "A", 2019),
	}

	b, err := Aggregate(records, "Go")
	require.NoError(t, err)

	assert.Equal(t, []int{2015, 2016, 2017, 2018, 2019}, b.Years())
	for _, s := range []Series{SeriesSalaryByYear, SeriesCountByYear, SeriesProfessionSalaryByYear, SeriesProfessionCountByYear} {
		assert.Len(t, b.YearSeries(s), 5, s.Title())
	}

	avg, ok := b.SalaryByYear.Get(2017)
	assert.True(t, ok)
	assert.Zero(t, avg)
	assert.Equal(t, int64(250), mustGet(t, b.SalaryByYear, 2019))
	assert.Equal(t, int64(200), mustGet(t, b.ProfessionSalaryByYear, 2019))

	assert.Equal(t, int64(len(records)), b.CountByYear.Sum())
	assert.Equal(t, int64(2), b.ProfessionCountByYear.Sum())
}

func TestProfessionAxisFollowsAllRecords(t *testing.T) {
	records := []models.Vacancy{
		vacancy("Clerk", 100, "A", 2010),
		vacancy("Analyst", 100, "A", 2012),
		vacancy("Clerk", 100, "A", 2014),
	}

	b, err := Aggregate(records, "Analyst")
	require.NoError(t, err)
	assert.Equal(t, YearSeries{{2010, 0}, {2011, 0}, {2012, 1}, {2013, 0}, {2014, 0}}, b.ProfessionCountByYear)
}

func TestEmptyProfessionMatchesNothing(t *testing.T) {
	b, err := Aggregate([]models.Vacancy{vacancy("Engineer", 100, "A", 2020)}, "")
	require.NoError(t, err)
	assert.Equal(t, YearSeries{{2020, 0}}, b.ProfessionSalaryByYear)
	assert.Equal(t, YearSeries{{2020, 0}}, b.ProfessionCountByYear)
}

func TestAverageTruncates(t *testing.T) {
	records := []models.Vacancy{
		vacancy("a", 100, "A", 2020),
		vacancy("a", 101, "A", 2020),
		vacancy("a", 101, "A", 2020),
	}
	b, err := Aggregate(records, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), mustGet(t, b.SalaryByYear, 2020))
	assert.Equal(t, int64(100), b.SalaryByCity[0].Salary)
}

func TestCityThreshold(t *testing.T) {
	build := func(big int) []models.Vacancy {
		var records []models.Vacancy
		for i := 0; i < big; i++ {
			records = append(records, vacancy("x", 100, "Big", 2020))
		}
		return append(records, vacancy("x", 1000000, "Small", 2020))
	}

	// 1 of 100 is exactly one percent
	b, err := Aggregate(build(99), "x")
	require.NoError(t, err)
	assert.Equal(t, []AreaSalary{{"Small", 1000000}, {"Big", 100}}, b.SalaryByCity)
	assert.Equal(t, []AreaShare{{"Big", 0.99}, {"Small", 0.01}}, b.ShareByCity)

	// 1 of 101 floors to zero percent and drops out of both rankings
	b, err = Aggregate(build(100), "x")
	require.NoError(t, err)
	assert.Equal(t, []AreaSalary{{"Big", 100}}, b.SalaryByCity)
	assert.Equal(t, []AreaShare{{"Big", 0.9901}}, b.ShareByCity)
}

func TestCityRankingsAreIndependent(t *testing.T) {
	var records []models.Vacancy
	// area i has 12-i vacancies paying 100*(i+1): share and salary orders are reversed
	for i := 0; i < 12; i++ {
		for j := 0; j < 12-i; j++ {
			records = append(records, vacancy("x", int64(100*(i+1)), fmt.Sprintf("City%02d", i), 2020))
		}
	}

	b, err := Aggregate(records, "x")
	require.NoError(t, err)

	require.Len(t, b.SalaryByCity, TopCities)
	require.Len(t, b.ShareByCity, TopCities)
	assert.Equal(t, "City11", b.SalaryByCity[0].Area)
	assert.Equal(t, "City00", b.ShareByCity[0].Area)

	for i := 1; i < len(b.SalaryByCity); i++ {
		assert.GreaterOrEqual(t, b.SalaryByCity[i-1].Salary, b.SalaryByCity[i].Salary)
		assert.GreaterOrEqual(t, b.ShareByCity[i-1].Share, b.ShareByCity[i].Share)
	}

	salaryAreas := map[string]bool{}
	for _, s := range b.SalaryByCity {
		salaryAreas[s.Area] = true
	}
	assert.False(t, salaryAreas["City00"], "lowest paid city must not reach the salary top")
}

func TestCityTiesKeepFirstAppearance(t *testing.T) {
	records := []models.Vacancy{
		vacancy("x", 100, "Omsk", 2020),
		vacancy("x", 100, "Kazan", 2020),
		vacancy("x", 100, "Perm", 2020),
	}

	for i := 0; i < 3; i++ {
		b, err := Aggregate(records, "x")
		require.NoError(t, err)
		assert.Equal(t, []AreaSalary{{"Omsk", 100}, {"Kazan", 100}, {"Perm", 100}}, b.SalaryByCity)
		assert.Equal(t, []AreaShare{{"Omsk", 0.3333}, {"Kazan", 0.3333}, {"Perm", 0.3333}}, b.ShareByCity)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := sampleRecords(250)
	snapshot := append([]models.Vacancy(nil), records...)

	first, err := Aggregate(records, "Developer")
	require.NoError(t, err)
	second, err := Aggregate(records, "Developer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, records)
}

func TestRetainedAreasMeetThreshold(t *testing.T) {
	records := sampleRecords(731)
	b, err := Aggregate(records, "Developer")
	require.NoError(t, err)

	counts := map[string]int{}
	for _, v := range records {
		counts[v.Area]++
	}
	for _, s := range b.ShareByCity {
		assert.GreaterOrEqual(t, counts[s.Area]*100/len(records), MinSharePercent, s.Area)
	}
	for _, s := range b.SalaryByCity {
		assert.GreaterOrEqual(t, counts[s.Area]*100/len(records), MinSharePercent, s.Area)
	}
	assert.LessOrEqual(t, len(b.SalaryByCity), TopCities)
	assert.LessOrEqual(t, len(b.ShareByCity), TopCities)
}

func TestMergeMatchesSequentialFold(t *testing.T) {
	records := sampleRecords(500)
	want, err := Aggregate(records, "Developer")
	require.NoError(t, err)

	for _, shards := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d shards", shards), func(t *testing.T) {
			merged := NewAccumulator("Developer")
			size := (len(records) + shards - 1) / shards
			for start := 0; start < len(records); start += size {
				end := start + size
				if end > len(records) {
					end = len(records)
				}
				part := NewAccumulator("Developer")
				for _, v := range records[start:end] {
					part.Add(v)
				}
				require.NoError(t, merged.Merge(part))
			}

			got, err := merged.Bundle()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestMergeRejectsOtherProfession(t *testing.T) {
	a := NewAccumulator("Go")
	b := NewAccumulator("Java")
	b.Add(vacancy("Java", 1, "A", 2020))
	assert.Error(t, a.Merge(b))
}

func TestSeriesTitles(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range AllSeries {
		assert.NotEqual(t, "unknown series", s.Title())
		seen[s.Title()] = true
	}
	assert.Len(t, seen, 6)
	assert.Nil(t, Bundle{}.YearSeries(SeriesShareByCity))
}

func sampleRecords(n int) []models.Vacancy {
	areas := []string{"Moscow", "Saint Petersburg", "Kazan", "Novosibirsk", "Omsk", "Tomsk",
		"Perm", "Ufa", "Samara", "Sochi", "Tver", "Kursk", "Yakutsk"}
	titles := []string{"Developer", "Senior Developer", "Analyst", "Manager"}

	records := make([]models.Vacancy, 0, n)
	for i := 0; i < n; i++ {
		// skew areas so some fall under one percent
		area := areas[(i*i)%len(areas)]
		if i%97 == 0 {
			area = "Rare"
		}
		records = append(records, vacancy(titles[i%len(titles)], int64(20000+(i*7919)%150000), area, 2007+(i*31)%14))
	}
	return records
}

func mustGet(t *testing.T, s YearSeries, year int) int64 {
	t.Helper()
	v, ok := s.Get(year)
	require.True(t, ok, "year %d missing", year)
	return v
}
