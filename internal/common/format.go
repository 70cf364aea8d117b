package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Magnitude thresholds for abbreviated display units
const (
	crore   = 1e7
	lakh    = 1e5
	billion = 1e9
	million = 1e6
)

// CurrencySymbol returns the display symbol for a currency code.
// Unknown codes fall back to the code itself.
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "INR":
		return "₹"
	case "USD":
		return "$"
	case "AUD":
		return "A$"
	case "GBP":
		return "£"
	case "EUR":
		return "€"
	case "JPY":
		return "¥"
	default:
		return currency
	}
}

// FormatMagnitude formats a large value into an abbreviated unit form.
// INR values use the Indian crore/lakh convention; everything else uses
// billions/millions. Values below the smallest unit are grouped.
func FormatMagnitude(value float64, currency string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	if strings.ToUpper(currency) == "INR" {
		switch {
		case math.Abs(value) >= crore:
			return fmt.Sprintf("%.2f Cr", value/crore)
		case math.Abs(value) >= lakh:
			return fmt.Sprintf("%.2f Lakh", value/lakh)
		}
		return GroupDigits(value)
	}

	switch {
	case math.Abs(value) >= billion:
		return fmt.Sprintf("%.2f B", value/billion)
	case math.Abs(value) >= million:
		return fmt.Sprintf("%.2f M", value/million)
	}
	return GroupDigits(value)
}

// GroupDigits formats a value with comma thousands grouping.
// Whole values are rendered without a fraction; fractional values keep
// two decimal places.
func GroupDigits(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	decimals := 0
	if value != math.Trunc(value) {
		decimals = 2
	}
	s := strconv.FormatFloat(value, 'f', decimals, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	out := sb.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPrice formats a price with two decimals and thousands grouping.
func FormatPrice(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	s := strconv.FormatFloat(value, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	i := strings.IndexByte(s, '.')
	intPart, fracPart := s[:i], s[i:]

	var sb strings.Builder
	for j, r := range intPart {
		if j > 0 && (len(intPart)-j)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	out := sb.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatSignedPct formats a percentage with an explicit sign.
func FormatSignedPct(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatSigned formats a value with an explicit sign and grouping.
func FormatSigned(value float64) string {
	if value >= 0 {
		return "+" + FormatPrice(value)
	}
	return FormatPrice(value)
}

// FormatRatio formats an optional ratio value. Nil renders as N/A; the
// percentage flag multiplies by 100 and appends a percent sign.
func FormatRatio(value *float64, percentage bool) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return "N/A"
	}
	if percentage {
		return fmt.Sprintf("%.2f%%", *value*100)
	}
	return fmt.Sprintf("%.2f", *value)
}
