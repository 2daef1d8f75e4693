package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/models"
)

const (
	// TopCities bounds both city rankings
	TopCities = 10
	// MinSharePercent is the floor(percentage) an area needs to enter the city rankings
	MinSharePercent = 1
	// ShareDecimals is the rounding applied to vacancy shares
	ShareDecimals = 4
)

// ErrEmptyDataset is returned when there is nothing to aggregate
var ErrEmptyDataset = errors.New("no vacancies to aggregate")

// bucket is a sum/count pair; merging buckets is commutative and associative
type bucket struct {
	sum   decimal.Decimal
	count int
}

func (b bucket) add(v decimal.Decimal) bucket {
	return bucket{sum: b.sum.Add(v), count: b.count + 1}
}

func (b bucket) merge(o bucket) bucket {
	return bucket{sum: b.sum.Add(o.sum), count: b.count + o.count}
}

func (b bucket) mean() decimal.Decimal {
	if b.count == 0 {
		return decimal.Zero
	}
	return b.sum.Div(decimal.NewFromInt(int64(b.count)))
}

// Accumulator folds vacancies into per-year and per-area sums and counts
type Accumulator struct {
	profession string
	total      int
	minYear    int
	maxYear    int

	all       map[int]bucket
	matched   map[int]bucket
	areas     map[string]bucket
	areaOrder []string
}

// NewAccumulator returns an empty Accumulator for the given profession filter
func NewAccumulator(profession string) *Accumulator {
	return &Accumulator{
		profession: profession,
		all:        make(map[int]bucket),
		matched:    make(map[int]bucket),
		areas:      make(map[string]bucket),
	}
}

// Add folds one vacancy in
func (a *Accumulator) Add(v models.Vacancy) {
	salary := v.Salary.Normalized
	a.observeYear(v.PublishedYear)
	a.total++

	a.all[v.PublishedYear] = a.all[v.PublishedYear].add(salary)
	if v.Matches(a.profession) {
		a.matched[v.PublishedYear] = a.matched[v.PublishedYear].add(salary)
	}

	if _, seen := a.areas[v.Area]; !seen {
		a.areaOrder = append(a.areaOrder, v.Area)
	}
	a.areas[v.Area] = a.areas[v.Area].add(salary)
}

func (a *Accumulator) observeYear(year int) {
	if a.total == 0 || year < a.minYear {
		a.minYear = year
	}
	if a.total == 0 || year > a.maxYear {
		a.maxYear = year
	}
}

// Merge folds the partial result of another accumulator into a.
// Areas first seen in other are appended after a's own areas.
func (a *Accumulator) Merge(other *Accumulator) error {
	if other.profession != a.profession {
		return fmt.Errorf("cannot merge accumulators for %q and %q", a.profession, other.profession)
	}
	if other.total == 0 {
		return nil
	}

	if a.total == 0 {
		a.minYear, a.maxYear = other.minYear, other.maxYear
	} else {
		if other.minYear < a.minYear {
			a.minYear = other.minYear
		}
		if other.maxYear > a.maxYear {
			a.maxYear = other.maxYear
		}
	}
	a.total += other.total

	for year, b := range other.all {
		a.all[year] = a.all[year].merge(b)
	}
	for year, b := range other.matched {
		a.matched[year] = a.matched[year].merge(b)
	}
	for _, area := range other.areaOrder {
		if _, seen := a.areas[area]; !seen {
			a.areaOrder = append(a.areaOrder, area)
		}
		a.areas[area] = a.areas[area].merge(other.areas[area])
	}
	return nil
}

// Total returns the number of vacancies folded so far
func (a *Accumulator) Total() int { return a.total }

// Bundle computes the statistics over everything folded so far
func (a *Accumulator) Bundle() (Bundle, error) {
	if a.total == 0 {
		return Bundle{}, ErrEmptyDataset
	}

	b := Bundle{Profession: a.profession, Total: a.total}
	b.SalaryByYear, b.CountByYear = a.yearSeries(a.all)
	b.ProfessionSalaryByYear, b.ProfessionCountByYear = a.yearSeries(a.matched)

	retained := a.retainedAreas()
	b.ShareByCity = a.shareRanking(retained)
	b.SalaryByCity = a.salaryRanking(retained)
	return b, nil
}

func (a *Accumulator) yearSeries(buckets map[int]bucket) (YearSeries, YearSeries) {
	n := a.maxYear - a.minYear + 1
	salaries := make(YearSeries, 0, n)
	counts := make(YearSeries, 0, n)
	for year := a.minYear; year <= a.maxYear; year++ {
		b := buckets[year]
		salaries = append(salaries, YearValue{Year: year, Value: b.mean().IntPart()})
		counts = append(counts, YearValue{Year: year, Value: int64(b.count)})
	}
	return salaries, counts
}

// retainedAreas keeps areas with floor(count/total*100) >= MinSharePercent,
// in order of first appearance
func (a *Accumulator) retainedAreas() []string {
	var kept []string
	for _, area := range a.areaOrder {
		if a.areas[area].count*100 >= MinSharePercent*a.total {
			kept = append(kept, area)
		}
	}
	return kept
}

func (a *Accumulator) shareRanking(areas []string) []AreaShare {
	total := decimal.NewFromInt(int64(a.total))
	shares := make([]decimal.Decimal, len(areas))
	for i, area := range areas {
		shares[i] = decimal.NewFromInt(int64(a.areas[area].count)).DivRound(total, ShareDecimals)
	}

	idx := order(len(areas), func(i, j int) bool { return shares[i].GreaterThan(shares[j]) })

	ranking := make([]AreaShare, 0, len(idx))
	for _, i := range idx {
		share, _ := shares[i].Float64()
		ranking = append(ranking, AreaShare{Area: areas[i], Share: share})
	}
	return ranking
}

func (a *Accumulator) salaryRanking(areas []string) []AreaSalary {
	means := make([]decimal.Decimal, len(areas))
	for i, area := range areas {
		means[i] = a.areas[area].mean()
	}

	idx := order(len(areas), func(i, j int) bool { return means[i].GreaterThan(means[j]) })

	ranking := make([]AreaSalary, 0, len(idx))
	for _, i := range idx {
		ranking = append(ranking, AreaSalary{Area: areas[i], Salary: means[i].IntPart()})
	}
	return ranking
}

// order stable-sorts the indexes 0..n-1 with less and keeps the first TopCities
func order(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool { return less(idx[x], idx[y]) })
	if len(idx) > TopCities {
		idx = idx[:TopCities]
	}
	return idx
}
