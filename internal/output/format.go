// Package output renders computed windows for the CLI in table, JSON, NDJSON and YAML form.
package output

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(50000) returns "50,000".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with at most precision decimals and thousand
// separators, dropping a fractional part that rounds to zero.
// Example: FormatFloat(1234.5, 2) returns "1,234.50"; FormatFloat(50000, 2) returns "50,000".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	const base = 10
	multiplier := math.Pow(base, float64(max(precision, 0)))
	rounded := math.Round(f*multiplier) / multiplier

	if precision <= 0 || rounded == math.Trunc(rounded) {
		return FormatNumber(int64(rounded))
	}

	formatted := strconv.FormatFloat(math.Abs(rounded), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}

	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", n) + "." + frac
}
