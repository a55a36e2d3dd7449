// internal/models/format.go
package models

import "fmt"

// FormatCurrency renders a dollar amount the way the dashboard displays money.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatRate renders an interest rate, with TBD standing in until the API
// assigns one.
func FormatRate(rate float64) string {
	if rate == 0 {
		return "TBD"
	}
	return fmt.Sprintf("%.2f%%", rate)
}
