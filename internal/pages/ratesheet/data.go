// internal/pages/ratesheet/data.go
package ratesheet

const PageName = "rate-sheet"

// RateEntry is one row of the static rate sheet.
type RateEntry struct {
	Program    string
	Term       string
	Rate       string
	APR        string
	Points     string
	LastUpdate string
}

// rateSheet is the static demo data the screen renders. Live pricing comes
// later; see the product backlog.
var rateSheet = []RateEntry{
	{Program: "Conventional", Term: "30yrs", Rate: "6.875%", APR: "7.012%", Points: "0.5", LastUpdate: "Daily"},
	{Program: "Conventional", Term: "15yrs", Rate: "6.125%", APR: "6.248%", Points: "0.5", LastUpdate: "Daily"},
	{Program: "FHA", Term: "30yrs", Rate: "6.500%", APR: "7.301%", Points: "1.0", LastUpdate: "Daily"},
	{Program: "VA", Term: "30yrs", Rate: "6.375%", APR: "6.602%", Points: "0.8", LastUpdate: "Daily"},
	{Program: "Non-Conventional", Term: "30yrs", Rate: "7.625%", APR: "7.814%", Points: "1.2", LastUpdate: "Weekly"},
}

// Entries returns the rate sheet rows.
func Entries() []RateEntry {
	out := make([]RateEntry, len(rateSheet))
	copy(out, rateSheet)
	return out
}
