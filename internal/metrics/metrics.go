package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
)

// Registry holds the metrics of one run. They are exported once, at the end,
// in the node_exporter textfile format.
type Registry struct {
	reg *prometheus.Registry

	RowsRead        prometheus.Counter
	RowsDropped     prometheus.Counter
	Vacancies       prometheus.Counter
	RetainedCities  prometheus.Gauge
	YearSpan        prometheus.Gauge
	RunDurationSec  prometheus.Gauge
	LastSuccessUnix prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rowsRead := prometheus.NewCounter(prometheus.CounterOpts{Name: "vacancysleuth_rows_read_total"})
	rowsDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "vacancysleuth_rows_dropped_total"})
	vacancies := prometheus.NewCounter(prometheus.CounterOpts{Name: "vacancysleuth_vacancies_aggregated_total"})
	cities := prometheus.NewGauge(prometheus.GaugeOpts{Name: "vacancysleuth_retained_cities"})
	span := prometheus.NewGauge(prometheus.GaugeOpts{Name: "vacancysleuth_year_span"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{Name: "vacancysleuth_run_duration_seconds"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{Name: "vacancysleuth_last_success_timestamp_seconds"})

	r.MustRegister(rowsRead, rowsDropped, vacancies, cities, span, duration, lastSuccess)
	return &Registry{
		reg:             r,
		RowsRead:        rowsRead,
		RowsDropped:     rowsDropped,
		Vacancies:       vacancies,
		RetainedCities:  cities,
		YearSpan:        span,
		RunDurationSec:  duration,
		LastSuccessUnix: lastSuccess,
	}
}

// ObserveBundle records the shape of an aggregation result
func (r *Registry) ObserveBundle(b stats.Bundle) {
	r.Vacancies.Add(float64(b.Total))
	r.RetainedCities.Set(float64(len(b.ShareByCity)))
	r.YearSpan.Set(float64(len(b.SalaryByYear)))
}

// Finish stamps the run duration and success time
func (r *Registry) Finish(started time.Time) {
	r.RunDurationSec.Set(time.Since(started).Seconds())
	r.LastSuccessUnix.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path atomically
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
