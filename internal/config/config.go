package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/currency"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "VACANCYSLEUTH_"

// AppConfig represents the application configuration
type AppConfig struct {
	Currency CurrencyConfig `yaml:"currency"`
	Report   ReportConfig   `yaml:"report"`
	Table    TableConfig    `yaml:"table"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type CurrencyConfig struct {
	// Rates convert one unit of a currency into roubles. Entries in a
	// config file extend or override the built-in table.
	Rates map[string]float64 `yaml:"rates"`
}

type ReportConfig struct {
	XLSX        string `yaml:"xlsx"`
	PDF         string `yaml:"pdf"`
	YearsSheet  string `yaml:"years_sheet"`
	CitiesSheet string `yaml:"cities_sheet"`
	FontPath    string `yaml:"font_path"` // UTF-8 TTF used by the PDF report
}

type TableConfig struct {
	MaxColumnWidth int `yaml:"max_column_width"`
	MaxTextLength  int `yaml:"max_text_length"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is present
func Default() *AppConfig {
	rates := make(map[string]float64)
	for code, rate := range currency.DefaultRates() {
		rates[code] = rate.InexactFloat64()
	}

	return &AppConfig{
		Currency: CurrencyConfig{Rates: rates},
		Report: ReportConfig{
			XLSX:        "report.xlsx",
			PDF:         "report.pdf",
			YearsSheet:  "Statistics by year",
			CitiesSheet: "Statistics by city",
		},
		Table: TableConfig{
			MaxColumnWidth: 20,
			MaxTextLength:  100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or the
// first config.yaml found when path is empty), then .env and environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			defaults := cfg.Currency.Rates
			cfg.Currency.Rates = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			rates, err := mergeRates(defaults, cfg.Currency.Rates)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			cfg.Currency.Rates = rates
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeRates overlays file rates on the defaults. Codes are case-insensitive;
// a file naming the same code twice is an error.
func mergeRates(defaults, file map[string]float64) (map[string]float64, error) {
	merged := make(map[string]float64, len(defaults)+len(file))
	for code, rate := range defaults {
		merged[strings.ToUpper(code)] = rate
	}

	seen := make(map[string]string, len(file))
	for code, rate := range file {
		folded := strings.ToUpper(code)
		if prev, dup := seen[folded]; dup {
			return nil, fmt.Errorf("currency rates %q and %q name the same code", prev, code)
		}
		seen[folded] = code
		merged[folded] = rate
	}
	return merged, nil
}

func findConfigPath() string {
	paths := []string{
		"config.yaml",
		"vacancysleuth.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vacancysleuth", "config.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *AppConfig) applyEnv() error {
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Report.XLSX = getEnv("XLSX", c.Report.XLSX)
	c.Report.PDF = getEnv("PDF", c.Report.PDF)
	c.Report.FontPath = getEnv("FONT_PATH", c.Report.FontPath)
	c.Metrics.File = getEnv("METRICS_FILE", c.Metrics.File)

	var err error
	if c.Table.MaxColumnWidth, err = getEnvInt("TABLE_WIDTH", c.Table.MaxColumnWidth); err != nil {
		return err
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *AppConfig) Validate() error {
	var problems []string

	if len(c.Currency.Rates) == 0 {
		problems = append(problems, "currency rate table is empty")
	}
	seen := make(map[string]bool, len(c.Currency.Rates))
	hasReference, badReference := false, false
	for code, rate := range c.Currency.Rates {
		upper := strings.ToUpper(code)
		if seen[upper] {
			problems = append(problems, fmt.Sprintf("currency %s is listed more than once", upper))
		}
		seen[upper] = true
		if rate <= 0 {
			problems = append(problems, fmt.Sprintf("invalid rate %v for %s: must be positive", rate, code))
		}
		if upper == currency.Reference {
			hasReference = true
			badReference = badReference || rate != 1
		}
	}
	if !hasReference || badReference {
		problems = append(problems, fmt.Sprintf("reference currency %s must have rate 1", currency.Reference))
	}

	if c.Report.YearsSheet == "" || c.Report.CitiesSheet == "" {
		problems = append(problems, "report sheet names cannot be empty")
	} else if c.Report.YearsSheet == c.Report.CitiesSheet {
		problems = append(problems, fmt.Sprintf("report sheet names must differ, both are %q", c.Report.YearsSheet))
	}
	if c.Report.FontPath != "" {
		if _, err := os.Stat(c.Report.FontPath); err != nil {
			problems = append(problems, fmt.Sprintf("font file %s: %v", c.Report.FontPath, err))
		}
	}

	if c.Table.MaxColumnWidth < 5 {
		problems = append(problems, fmt.Sprintf("invalid table column width %d: must be at least 5", c.Table.MaxColumnWidth))
	}
	if c.Table.MaxTextLength < 1 {
		problems = append(problems, fmt.Sprintf("invalid table text length %d: must be at least 1", c.Table.MaxTextLength))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Normalizer builds the currency normalizer from the configured rates
func (c *AppConfig) Normalizer() (*currency.Normalizer, error) {
	rates := make(map[string]decimal.Decimal, len(c.Currency.Rates))
	for code, rate := range c.Currency.Rates {
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	return currency.NewNormalizer(rates)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return i, nil
}
