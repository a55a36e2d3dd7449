// internal/pages/applications/models.go
package applications

import (
	"encoding/json"

	"github.com/google/uuid"

	"mortgage-dashboard/internal/models"
)

const PageName = "applications"

// StatusFilterAll is the wildcard option of the status dropdown.
const StatusFilterAll = "All"

// LoanForm carries the new-application dialog state through a submit and,
// on failure, back into the re-rendered dialog with the input intact.
type LoanForm struct {
	PropertyPrice      string
	LoanAmount         string
	DownPayment        string
	LoanType           string
	LoanTerm           string
	LoanPurpose        string
	InterestPreference string
	Borrowers          []BorrowerForm
	SubmissionKey      string
}

// BorrowerForm is one borrower entry of the dialog.
type BorrowerForm struct {
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	MaritalStatus string
}

// DefaultLoanForm returns the dialog in its initial state: defaults selected,
// one empty borrower row, and a fresh submission key.
func DefaultLoanForm() LoanForm {
	return LoanForm{
		LoanType:           models.LoanTypeConventional,
		LoanTerm:           models.LoanTerm30,
		LoanPurpose:        models.LoanPurposePurchase,
		InterestPreference: models.InterestPreferenceFixed,
		Borrowers:          []BorrowerForm{{}},
		SubmissionKey:      uuid.NewString(),
	}
}

// BorrowersJSON encodes the borrower entries as the JSON string the API
// expects in the multipart "borrowers" field.
func (f LoanForm) BorrowersJSON() (string, error) {
	type wireBorrower struct {
		FirstName     string `json:"firstname"`
		LastName      string `json:"lastname"`
		Phone         string `json:"phone"`
		Email         string `json:"email,omitempty"`
		MaritalStatus string `json:"marital_status,omitempty"`
	}

	wire := make([]wireBorrower, 0, len(f.Borrowers))
	for _, b := range f.Borrowers {
		wire = append(wire, wireBorrower{
			FirstName:     b.FirstName,
			LastName:      b.LastName,
			Phone:         b.Phone,
			Email:         b.Email,
			MaritalStatus: b.MaritalStatus,
		})
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ReplaceBorrowerAt returns the borrower list with the entry at idx swapped
// out. Out-of-range indexes leave the list untouched.
func ReplaceBorrowerAt(borrowers []BorrowerForm, idx int, b BorrowerForm) []BorrowerForm {
	if idx < 0 || idx >= len(borrowers) {
		return borrowers
	}
	out := make([]BorrowerForm, len(borrowers))
	copy(out, borrowers)
	out[idx] = b
	return out
}

// UploadedFile is a file attached to the new-application dialog.
type UploadedFile struct {
	Name    string
	Content []byte
}
