package currency

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Reference is the currency every salary is normalized into
const Reference = "RUR"

// ErrUnknownCurrency is matched by every UnknownCurrencyError
var ErrUnknownCurrency = errors.New("unknown currency")

// UnknownCurrencyError reports a currency code missing from the rate table
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

func (e *UnknownCurrencyError) Is(target error) bool {
	return target == ErrUnknownCurrency
}

// DefaultRates returns the built-in conversion table into roubles
func DefaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"AZN": decimal.RequireFromString("35.68"),
		"BYR": decimal.RequireFromString("23.91"),
		"EUR": decimal.RequireFromString("59.90"),
		"GEL": decimal.RequireFromString("21.74"),
		"KGS": decimal.RequireFromString("0.76"),
		"KZT": decimal.RequireFromString("0.13"),
		"RUR": decimal.NewFromInt(1),
		"UAH": decimal.RequireFromString("1.64"),
		"USD": decimal.RequireFromString("60.66"),
		"UZS": decimal.RequireFromString("0.0055"),
	}
}

// Normalizer converts salary amounts into the reference currency.
// The rate table is copied on construction and never changes afterwards.
type Normalizer struct {
	rates map[string]decimal.Decimal
}

// NewNormalizer builds a Normalizer over the given rate table
func NewNormalizer(rates map[string]decimal.Decimal) (*Normalizer, error) {
	if len(rates) == 0 {
		return nil, errors.New("currency rate table is empty")
	}

	copied := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("currency %s: rate must be positive, got %s", code, rate)
		}
		copied[code] = rate
	}

	return &Normalizer{rates: copied}, nil
}

// Default returns a Normalizer over DefaultRates
func Default() *Normalizer {
	n, _ := NewNormalizer(DefaultRates())
	return n
}

// Normalize converts amount given in code into the reference currency
func (n *Normalizer) Normalize(code string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, ok := n.rates[code]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: code}
	}
	return amount.Mul(rate), nil
}

// Rate returns the conversion rate for code
func (n *Normalizer) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := n.rates[code]
	return rate, ok
}

// Codes lists the known currency codes in sorted order
func (n *Normalizer) Codes() []string {
	codes := make([]string, 0, len(n.rates))
	for code := range n.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
