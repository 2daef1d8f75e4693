package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/config"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancysleuth/internal/ui"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 VacancySleuth Usage Examples 📋")
	fmt.Println("\n1. Salary and vacancy statistics for analysts, with XLSX and PDF reports:")
	fmt.Println("   vacancysleuth -file vacancies.csv -profession \"Analyst\"")

	fmt.Println("\n2. Statistics only, printed with bar charts and no report files:")
	fmt.Println("   vacancysleuth -file vacancies.csv -profession \"Go\" -xlsx \"\" -pdf \"\" -charts")

	fmt.Println("\n3. Table of Moscow vacancies, rows 10 to 19, selected columns:")
	fmt.Println("   vacancysleuth -mode table -file vacancies_big.csv -filter \"Area: Moscow\" -rows \"10 20\" -columns \"Name, Company, Salary\"")

	fmt.Println("\n4. Vacancies asking for both Go and SQL:")
	fmt.Println("   vacancysleuth -mode table -file vacancies_big.csv -filter \"Skills: Go, SQL\"")

	fmt.Println("\n5. Vacancies paying 100 000 within their salary range:")
	fmt.Println("   vacancysleuth -mode table -file vacancies_big.csv -filter \"Salary: 100000\"")

	fmt.Println("\n6. Write run metrics for the node_exporter textfile collector:")
	fmt.Println("   vacancysleuth -file vacancies.csv -profession \"Analyst\" -metrics-file /var/lib/node_exporter/vacancysleuth.prom")

	fmt.Println("\nFor more information, visit: https://github.com/fr4nk3nst1ner/vacancysleuth")
	os.Exit(0)
}

func main() {
	// Command line flags
	file := flag.String("file", "", "CSV export of vacancies")
	profession := flag.String("profession", "", "Profession to compare against all vacancies (stats mode)")
	mode := flag.String("mode", modeStats, "Run mode: stats or table")
	xlsx := flag.String("xlsx", "", "XLSX report path (overrides config, empty string in config disables)")
	pdf := flag.String("pdf", "", "PDF report path (overrides config)")
	filter := flag.String("filter", "", "Table filter, e.g. \"Area: Moscow\" (table mode)")
	rows := flag.String("rows", "", "Row range \"from\" or \"from to\" (table mode)")
	columns := flag.String("columns", "", "Columns to show, e.g. \"Name, Salary\" (table mode)")
	configPath := flag.String("config", "", "Path to config file")
	metricsFile := flag.String("metrics-file", "", "Write run metrics to this textfile")
	charts := flag.Bool("charts", false, "Draw bar charts after the statistics")
	debug := flag.Bool("debug", false, "Enable debug mode")
	noProgress := flag.Bool("no-progress", false, "Hide the progress bar")
	examples := flag.Bool("examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	ui.PrintBanner(*silence || *noBanner)

	if *examples {
		printExamples()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Printfln("Error loading config: %v", err)
		os.Exit(1)
	}

	// flags win over config and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "xlsx":
			cfg.Report.XLSX = *xlsx
		case "pdf":
			cfg.Report.PDF = *pdf
		case "metrics-file":
			cfg.Metrics.File = *metricsFile
		}
	})
	if *debug {
		cfg.Log.Level = "debug"
	}

	logger := ui.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	opts := options{
		file:       *file,
		profession: *profession,
		mode:       *mode,
		filter:     *filter,
		rows:       *rows,
		columns:    *columns,
		charts:     *charts,
	}

	if opts.file, err = ui.Ask("Enter the file name", opts.file); err != nil {
		logger.Fatal("Reading file name", logger.Args("error", err))
	}
	if opts.mode == modeStats {
		if opts.profession, err = ui.Ask("Enter the profession name", opts.profession); err != nil {
			logger.Fatal("Reading profession", logger.Args("error", err))
		}
	}

	var progress io.Writer = os.Stderr
	if *noProgress {
		progress = nil
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		stdout:   os.Stdout,
		progress: progress,
		metrics:  metrics.NewRegistry(),
	}
	if err := a.run(opts); err != nil {
		logger.Error("Run failed", logger.Args("error", err))
		os.Exit(1)
	}
}
