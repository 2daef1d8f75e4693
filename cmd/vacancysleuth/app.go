package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/config"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/dataset"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/report"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/stats"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/table"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/ui"
)

const (
	modeStats = "stats"
	modeTable = "table"
)

// options are the per-run inputs collected from flags and prompts
type options struct {
	file       string
	profession string
	mode       string
	filter     string
	rows       string
	columns    string
	charts     bool
}

type app struct {
	cfg      *config.AppConfig
	logger   *pterm.Logger
	stdout   io.Writer
	progress io.Writer // nil disables the progress bar
	metrics  *metrics.Registry
}

func (a *app) run(opts options) error {
	started := time.Now()
	if opts.mode != modeStats && opts.mode != modeTable {
		return fmt.Errorf("unknown mode %q, expected %s or %s", opts.mode, modeStats, modeTable)
	}

	ds, err := dataset.Read(opts.file)
	if err != nil {
		return err
	}
	a.logger.Info("dataset loaded", a.logger.Args(
		"file", ds.Path,
		"size", humanize.Bytes(uint64(ds.Size)),
		"rows", len(ds.Records),
		"dropped", ds.Dropped,
	))
	a.metrics.RowsRead.Add(float64(len(ds.Records) + ds.Dropped))
	a.metrics.RowsDropped.Add(float64(ds.Dropped))

	if opts.mode == modeTable {
		err = a.runTable(ds, opts)
	} else {
		err = a.runStats(ds, opts)
	}
	if err != nil {
		return err
	}

	if a.cfg.Metrics.File != "" {
		a.metrics.Finish(started)
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.File); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Debug("metrics written", a.logger.Args("file", a.cfg.Metrics.File))
	}
	return nil
}

func (a *app) runStats(ds *dataset.Dataset, opts options) error {
	n, err := a.cfg.Normalizer()
	if err != nil {
		return err
	}

	vacancies, err := dataset.Vacancies(ds.Rows(), n, a.progress)
	if err != nil {
		return err
	}

	bundle, err := stats.Aggregate(vacancies, opts.profession)
	if err != nil {
		return err
	}
	a.metrics.ObserveBundle(bundle)
	a.logger.Debug("statistics computed", a.logger.Args(
		"profession", bundle.Profession,
		"vacancies", bundle.Total,
		"years", len(bundle.SalaryByYear),
		"cities", len(bundle.ShareByCity),
	))

	if err := report.NewConsole(a.stdout, opts.charts).Render(bundle); err != nil {
		return err
	}
	if len(bundle.SalaryByCity) > 0 {
		top := bundle.SalaryByCity[0]
		fmt.Fprintf(a.stdout, "\nHighest paying city: %s (%s)\n", top.Area, ui.ColorizeSalary(top.Salary))
	}

	return a.writeReports(bundle)
}

type renderedReport struct {
	kind string
	path string
	data []byte
}

// writeReports renders every configured report in memory and saves them only
// when all of them rendered. A failed save removes the files already saved.
func (a *app) writeReports(bundle stats.Bundle) error {
	var reports []renderedReport

	if path := a.cfg.Report.XLSX; path != "" {
		var buf bytes.Buffer
		err := report.WriteExcelTo(&buf, bundle, report.ExcelOptions{
			YearsSheet:  a.cfg.Report.YearsSheet,
			CitiesSheet: a.cfg.Report.CitiesSheet,
		})
		if err != nil {
			return err
		}
		reports = append(reports, renderedReport{kind: "xlsx", path: path, data: buf.Bytes()})
	}

	if path := a.cfg.Report.PDF; path != "" {
		opts := report.PDFOptions{FontPath: a.cfg.Report.FontPath}
		if lost := report.UnrenderableText(bundle, opts); len(lost) > 0 {
			a.logger.Warn("pdf font cannot show some names, set report.font_path to a UTF-8 TTF font",
				a.logger.Args("names", strings.Join(lost, ", ")))
		}

		var buf bytes.Buffer
		if err := report.RenderPDF(&buf, bundle, opts); err != nil {
			return err
		}
		reports = append(reports, renderedReport{kind: "pdf", path: path, data: buf.Bytes()})
	}

	for i, r := range reports {
		if err := os.WriteFile(r.path, r.data, 0o644); err != nil {
			for _, saved := range reports[:i] {
				os.Remove(saved.path)
			}
			return fmt.Errorf("save %s: %w", r.path, err)
		}
	}
	for _, r := range reports {
		a.logger.Info(r.kind+" report written", a.logger.Args("file", r.path))
	}
	return nil
}

func (a *app) runTable(ds *dataset.Dataset, opts options) error {
	printer, err := table.New(table.Options{
		Filter:         opts.filter,
		Rows:           opts.rows,
		Columns:        opts.columns,
		MaxColumnWidth: a.cfg.Table.MaxColumnWidth,
		MaxTextLength:  a.cfg.Table.MaxTextLength,
	})
	if err != nil {
		return err
	}
	return printer.Print(a.stdout, ds.TableRows())
}
