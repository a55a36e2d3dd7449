// internal/models/application.go
package models

import "encoding/json"

// Application statuses as the mortgage API reports them.
const (
	StatusInit             = "INIT"
	StatusInProcess        = "In Process"
	StatusReadyForReview   = "Ready for Review"
	StatusApproved         = "Approved"
	StatusPendingDocuments = "Pending Documents"
	StatusDenied           = "Denied"
)

// AllStatuses lists the pipeline filter options in display order.
var AllStatuses = []string{
	StatusInit,
	StatusInProcess,
	StatusReadyForReview,
	StatusApproved,
	StatusPendingDocuments,
	StatusDenied,
}

// Loan form enumerations. The API stores these verbatim.
const (
	LoanTypeConventional    = "CONVENTIONAL"
	LoanTypeNonConventional = "NON_CONVENTIONAL"
	LoanTypeVA              = "VA"
	LoanTypeFHA             = "FHA"

	LoanTerm30 = "30yrs"
	LoanTerm15 = "15yrs"

	LoanPurposePurchase  = "PURCHASE"
	LoanPurposeRefinance = "REFINANCE"

	InterestPreferenceFixed      = "FIXED"
	InterestPreferenceAdjustable = "ADJUSTABLE"
)

// Application is the wire representation of a loan application.
type Application struct {
	ID                 string     `json:"id"`
	LoanNumber         string     `json:"loan_number,omitempty"`
	Status             string     `json:"status"`
	LoanAmount         float64    `json:"loan_amount"`
	PropertyPrice      float64    `json:"property_price"`
	DownPayment        float64    `json:"loan_down_payment"`
	LoanType           string     `json:"loan_type"`
	LoanTerm           string     `json:"loan_term"`
	LoanPurpose        string     `json:"loan_purpose"`
	InterestPreference string     `json:"loan_interest_preference"`
	InterestRate       float64    `json:"interest_rate,omitempty"`
	LTV                float64    `json:"ltv,omitempty"`
	DTI                float64    `json:"dti,omitempty"`
	CloseDate          string     `json:"close_date,omitempty"`
	CreatedAt          string     `json:"created_at,omitempty"`
	Borrowers          []Borrower `json:"borrowers,omitempty"`

	// Row is the display row some API versions precompute for the pipeline table.
	Row *LoanRow `json:"row,omitempty"`
}

// LoanRow is one row of the pipeline table, either taken from the API or
// derived locally from the application and its borrowers.
type LoanRow struct {
	LoanNumber string `json:"loan_number"`
	Borrowers  string `json:"borrowers"`
	LoanAmount string `json:"loan_amount"`
	Rate       string `json:"rate"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	CloseDate  string `json:"close_date"`
}

// ApplicationListResponse is the envelope of GET /api/applications. The API
// has shipped both a bare array and an {"applications": [...]} wrapper, so
// decoding accepts either.
type ApplicationListResponse struct {
	Applications []Application `json:"applications"`
}

func (r *ApplicationListResponse) UnmarshalJSON(data []byte) error {
	var arr []Application
	if err := json.Unmarshal(data, &arr); err == nil {
		r.Applications = arr
		return nil
	}

	type wrapper struct {
		Applications []Application `json:"applications"`
	}
	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Applications = w.Applications
	return nil
}

// RecommendationResponse is the envelope of GET /api/applications/{id}/new-recommendation.
type RecommendationResponse struct {
	LLMRecommendation string `json:"llm_recommendation"`
}
