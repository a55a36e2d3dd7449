// internal/pages/applications/validation_test.go
package applications

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mortgage-dashboard/internal/common/errors"
)

// ==========================
// Test Helper Functions
// ==========================

func createValidLoanForm() *LoanForm {
	return &LoanForm{
		PropertyPrice:      "300000",
		LoanAmount:         "250000",
		DownPayment:        "50000",
		LoanType:           "CONVENTIONAL",
		LoanTerm:           "30yrs",
		LoanPurpose:        "PURCHASE",
		InterestPreference: "FIXED",
		Borrowers: []BorrowerForm{
			{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
		},
	}
}

func assertValidationError(t *testing.T, err error, detailFragment string) {
	t.Helper()
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	if detailFragment != "" {
		assert.Contains(t, stdErr.Details, detailFragment)
	}
}

// ==========================
// Loan Form Validation Tests
// ==========================

func TestValidateLoanForm_Valid(t *testing.T) {
	assert.NoError(t, ValidateLoanForm(createValidLoanForm()))
}

func TestValidateLoanForm_MissingAmounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoanForm)
		detail string
	}{
		{
			name:   "missing property price",
			mutate: func(f *LoanForm) { f.PropertyPrice = "" },
			detail: "property price",
		},
		{
			name:   "missing loan amount",
			mutate: func(f *LoanForm) { f.LoanAmount = "" },
			detail: "loan amount",
		},
		{
			name:   "missing down payment",
			mutate: func(f *LoanForm) { f.DownPayment = "" },
			detail: "down payment",
		},
		{
			name:   "whitespace-only value",
			mutate: func(f *LoanForm) { f.PropertyPrice = "   " },
			detail: "property price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := createValidLoanForm()
			tt.mutate(form)
			assertValidationError(t, ValidateLoanForm(form), tt.detail)
		})
	}
}

func TestValidateLoanForm_ListsAllMissingFields(t *testing.T) {
	form := createValidLoanForm()
	form.PropertyPrice = ""
	form.LoanAmount = ""
	form.DownPayment = ""

	err := ValidateLoanForm(form)
	assertValidationError(t, err, "property price")

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Contains(t, stdErr.Details, "loan amount")
	assert.Contains(t, stdErr.Details, "down payment")
}

func TestValidateLoanForm_RequiresCompleteBorrower(t *testing.T) {
	tests := []struct {
		name      string
		borrowers []BorrowerForm
	}{
		{
			name:      "no borrowers",
			borrowers: nil,
		},
		{
			name:      "empty borrower row",
			borrowers: []BorrowerForm{{}},
		},
		{
			name:      "missing phone",
			borrowers: []BorrowerForm{{FirstName: "Jane", LastName: "Doe"}},
		},
		{
			name:      "missing last name",
			borrowers: []BorrowerForm{{FirstName: "Jane", Phone: "555-0100"}},
		},
		{
			name:      "whitespace names",
			borrowers: []BorrowerForm{{FirstName: "  ", LastName: "Doe", Phone: "555-0100"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := createValidLoanForm()
			form.Borrowers = tt.borrowers
			assertValidationError(t, ValidateLoanForm(form), "borrower")
		})
	}
}

func TestValidateLoanForm_SchemaRejectsIncompleteExtraBorrower(t *testing.T) {
	form := createValidLoanForm()
	form.Borrowers = append(form.Borrowers, BorrowerForm{FirstName: "John"})

	// A second incomplete borrower still fails the schema check, which wants
	// every entry well-formed.
	err := ValidateLoanForm(form)
	assert.Error(t, err)
}

func TestHasCompleteBorrower(t *testing.T) {
	assert.True(t, hasCompleteBorrower([]BorrowerForm{
		{},
		{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
	}))
	assert.False(t, hasCompleteBorrower([]BorrowerForm{{FirstName: "Jane"}}))
	assert.False(t, hasCompleteBorrower(nil))
}
