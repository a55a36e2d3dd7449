// internal/pages/applications/viewmodel.go
package applications

import (
	"strings"

	"mortgage-dashboard/internal/models"
)

// RowSource records where a pipeline row came from. Rows built by the API
// pass through untouched; rows built here are marked derived.
type RowSource int

const (
	SourceServer RowSource = iota + 1
	SourceDerived
)

func (s RowSource) String() string {
	switch s {
	case SourceServer:
		return "server"
	case SourceDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Row is one pipeline table row tagged with its origin. LoanID carries the
// application id so the row can link to the detail screen.
type Row struct {
	models.LoanRow
	LoanID string
	Source RowSource
}

// defaultProgress is shown for statuses the dashboard does not know about.
const defaultProgress = 20

var statusProgress = map[string]int{
	models.StatusInit:             20,
	models.StatusInProcess:        40,
	models.StatusReadyForReview:   60,
	models.StatusPendingDocuments: 80,
	models.StatusApproved:         100,
	models.StatusDenied:           100,
}

// ProgressForStatus maps a status to its progress bar percentage.
func ProgressForStatus(status string) int {
	if p, ok := statusProgress[status]; ok {
		return p
	}
	return defaultProgress
}

// DeriveRow builds the display row for one application. A row precomputed by
// the API wins; otherwise every field is derived locally.
func DeriveRow(app models.Application) Row {
	if app.Row != nil {
		return Row{LoanRow: *app.Row, LoanID: app.ID, Source: SourceServer}
	}

	return Row{
		LoanID: app.ID,
		LoanRow: models.LoanRow{
			LoanNumber: loanNumber(app),
			Borrowers:  borrowerNames(app.Borrowers),
			LoanAmount: FormatCurrency(app.LoanAmount),
			Rate:       FormatRate(app.InterestRate),
			Status:     app.Status,
			Progress:   ProgressForStatus(app.Status),
			CloseDate:  closeDate(app),
		},
		Source: SourceDerived,
	}
}

// DeriveRows maps a list of applications to pipeline rows, preserving order.
func DeriveRows(apps []models.Application) []Row {
	rows := make([]Row, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, DeriveRow(app))
	}
	return rows
}

// FilterRows applies the status dropdown and the search box. Status "All"
// matches everything; the query is trimmed and matched case-insensitively
// against the borrowers column. Order is preserved.
func FilterRows(rows []Row, status, query string) []Row {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if status != "" && status != StatusFilterAll && row.Status != status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(row.Borrowers), needle) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FormatCurrency renders a dollar amount for the table.
func FormatCurrency(amount float64) string {
	return models.FormatCurrency(amount)
}

// FormatRate renders an interest rate column value.
func FormatRate(rate float64) string {
	return models.FormatRate(rate)
}

func loanNumber(app models.Application) string {
	if app.LoanNumber != "" {
		return app.LoanNumber
	}
	return app.ID
}

func borrowerNames(borrowers []models.Borrower) string {
	names := make([]string, 0, len(borrowers))
	for _, b := range borrowers {
		if name := b.FullName(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, ", ")
}

func closeDate(app models.Application) string {
	if app.CloseDate != "" {
		return app.CloseDate
	}
	return "TBD"
}
