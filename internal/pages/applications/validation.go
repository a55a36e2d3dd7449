// internal/pages/applications/validation.go
package applications

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/validation"
)

// ValidateLoanForm rejects incomplete dialog input before anything goes on
// the wire. A failure here must cost zero API calls.
func ValidateLoanForm(form *LoanForm) error {
	var missing []string
	if strings.TrimSpace(form.PropertyPrice) == "" {
		missing = append(missing, "property price")
	}
	if strings.TrimSpace(form.LoanAmount) == "" {
		missing = append(missing, "loan amount")
	}
	if strings.TrimSpace(form.DownPayment) == "" {
		missing = append(missing, "down payment")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationFailedError(
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if !hasCompleteBorrower(form.Borrowers) {
		return apperrors.NewValidationFailedError(
			"at least one borrower with first name, last name and phone is required")
	}

	return validateBorrowersSchema(form)
}

func hasCompleteBorrower(borrowers []BorrowerForm) bool {
	for _, b := range borrowers {
		if strings.TrimSpace(b.FirstName) != "" &&
			strings.TrimSpace(b.LastName) != "" &&
			strings.TrimSpace(b.Phone) != "" {
			return true
		}
	}
	return false
}

// validateBorrowersSchema round-trips the borrowers payload through JSON and
// checks it against the schema, so whatever reaches the API is well-formed.
func validateBorrowersSchema(form *LoanForm) error {
	raw, err := form.BorrowersJSON()
	if err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("encode borrowers: %v", err))
	}

	var decoded []interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("borrowers payload is not valid JSON: %v", err))
	}

	result, err := validation.ValidateBorrowersPayload(decoded)
	if err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	if !result.Valid {
		return apperrors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
