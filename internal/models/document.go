// internal/models/document.go
package models

import "time"

// Document categories a borrower can upload against.
const (
	CategoryIncome = "Income"
	CategoryAsset  = "Asset"
	CategoryCredit = "Credit"
)

// AllCategories lists upload categories in display order.
var AllCategories = []string{CategoryIncome, CategoryAsset, CategoryCredit}

// UploadedDocument is a transient record of a document pushed to the API
// during this session. The API owns the files; these rows only feed the
// loan-details document table.
type UploadedDocument struct {
	ID           string    `json:"id"`
	BorrowerID   string    `json:"borrower_id"`
	BorrowerName string    `json:"borrower_name"`
	Category     string    `json:"category"`
	FileName     string    `json:"file_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
