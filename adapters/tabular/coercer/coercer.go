package coercer

import (
	"math"
	"strconv"
	"strings"
)

// NumericCoercer handles deterministic numeric coercion of raw cell text.
// Cells that cannot be coerced become missing rather than raising; the
// normalizer decides what to do with missing values.
type NumericCoercer struct{}

// New creates a numeric coercer.
func New() *NumericCoercer {
	return &NumericCoercer{}
}

// Coerce attempts to parse a raw cell as a float64.
// Handles international formats: parentheses for negatives, European
// decimals, thousands separators, currency and percent symbols.
func (c *NumericCoercer) Coerce(raw string) (float64, bool) {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, false
	}

	// Parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	currencySymbols := []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}
	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	cleanVal = strings.ReplaceAll(cleanVal, "%", "")

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	// European format: period as thousands separator, comma as decimal.
	// French format: space as thousands separator, comma as decimal.
	if hasComma && (hasPeriod || hasSpace) {
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) <= 3 && allDigits(afterComma) {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		}
	} else if hasComma && !hasPeriod {
		// Comma alone: thousands separator when it sits in a xxx,ddd group
		// pattern, decimal separator otherwise.
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) == 3 && allDigits(afterComma) && strings.Count(cleanVal, ",") >= 1 && !strings.Contains(cleanVal[:commaIdx], " ") && len(cleanVal[:commaIdx]) <= 3+4*strings.Count(cleanVal, ",") {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		}
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// CoerceInt parses a raw cell as an integer, tolerating float-like forms
// such as "2019.0" that spreadsheet exports produce for year columns.
func (c *NumericCoercer) CoerceInt(raw string) (int, bool) {
	val, ok := c.Coerce(raw)
	if !ok {
		return 0, false
	}
	rounded := math.Round(val)
	if math.Abs(val-rounded) > 1e-9 {
		return 0, false
	}
	return int(rounded), true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
