package report

import (
	"fmt"
)

// formatFloat formats a float64 value for CSV output with exactly 6
// decimal places so small returns and volatilities survive the round trip.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.6f", f)
}

// formatPrice formats a price for display with 2 decimal places.
func formatPrice(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatPercent formats a ratio as a percentage with 2 decimal places.
func formatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}
