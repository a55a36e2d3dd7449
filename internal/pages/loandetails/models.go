// internal/pages/loandetails/models.go
package loandetails

const PageName = "loan-details"

// UploadRequest is a parsed document upload submit.
type UploadRequest struct {
	LoanID     string
	BorrowerID string
	Category   string
	FileName   string
	Content    []byte
}
