package pages

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// FormatGrams renders a weight without a unit, dropping trailing zeros.
func FormatGrams(value float64) string {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		rounded = 0 // normalise -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// FormatPercent renders a baker's percentage to one decimal, or a dash when there is
// no flour to measure against.
func FormatPercent(value *float64) string {
	if value == nil {
		return DefaultDash("")
	}
	return fmt.Sprintf("%.1f%%", *value)
}

// FormatAvailable renders the grams left for a stage row. Over-allocation shows the
// magnitude with a minus sign and a trailing "!".
func FormatAvailable(value float64) string {
	if value < 0 {
		return "−" + FormatGrams(-value) + "g!"
	}
	return FormatGrams(value) + "g"
}

// FormatDrift renders the difference between actual and target weight with its sign.
func FormatDrift(value float64) string {
	switch {
	case value > 0:
		return "+" + FormatGrams(value) + " g"
	case value < 0:
		return "−" + FormatGrams(-value) + " g"
	default:
		return "0 g"
	}
}

// FormatScaleFactor renders a multiplier such as "×0.50".
func FormatScaleFactor(value float64) string {
	return fmt.Sprintf("×%.2f", value)
}

// FormatSheetDate renders the supplied time using a production-friendly layout.
func FormatSheetDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02 Jan 2006 15:04")
}
