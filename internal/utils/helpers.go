package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatNumber formats an integer with spaces between thousands, e.g. 1 250 000
func FormatNumber(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", " ")
}

// FormatAmount formats a numeric salary string, dropping any fractional part.
// Values that are not numbers are returned unchanged.
func FormatAmount(s string) string {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return s
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return FormatNumber(int64(value + 0.5))
}

// FormatPercent renders a share in [0, 1] as a percentage with a decimal comma, e.g. 66,67%
func FormatPercent(share float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f%%", share*100), ".", ",")
}

// FormatDate turns the date part of a timestamp (2022-07-05T18:19:30+0300) into 05.07.2022
func FormatDate(timestamp string) string {
	date := timestamp
	if len(date) > 10 {
		date = date[:10]
	}
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return date
	}
	parts[0], parts[len(parts)-1] = parts[len(parts)-1], parts[0]
	return strings.Join(parts, ".")
}

// TruncateString cuts s to length runes and appends "..." if anything was cut
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

// YesNo translates the export's boolean literals
func YesNo(value string) string {
	switch value {
	case "True":
		return "Yes"
	case "False":
		return "No"
	}
	return value
}
