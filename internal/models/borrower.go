// internal/models/borrower.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Borrower is the wire representation of a loan applicant.
type Borrower struct {
	ID            string         `json:"id,omitempty"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	MaritalStatus string         `json:"marital_status,omitempty"`
	CreditScore   int            `json:"credit_score,omitempty"`
	FicoScore     int            `json:"fico_score,omitempty"`
	TotalIncome   MoneyString    `json:"total_income,omitempty"`
	IncomeSources []IncomeSource `json:"income_sources,omitempty"`
}

// FullName joins first and last name, tolerating either being empty.
func (b Borrower) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// IncomeSource is one income line item parsed from a borrower's documents.
type IncomeSource struct {
	SourceType string      `json:"source_type"`
	Income     MoneyString `json:"income"`
}

// MoneyString holds a currency amount as received from the API, which sends
// either a formatted string like "$1,200.50" or a bare JSON number.
type MoneyString string

func (m *MoneyString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MoneyString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = MoneyString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("money value is neither string nor number: %s", string(data))
}

func (m MoneyString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

// Parse converts the raw amount to a float, stripping the "$" prefix and
// thousands separators.
func (m MoneyString) Parse() (float64, error) {
	cleaned := strings.TrimSpace(string(m))
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty money value")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func (m MoneyString) String() string {
	return string(m)
}
