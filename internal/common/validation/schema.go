// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// borrowersSchema describes the borrowers payload submitted with a new
// application. It must survive a JSON round trip unchanged, so the shape is
// pinned before anything goes on the wire.
var borrowersSchema = map[string]interface{}{
	"type":     "array",
	"minItems": 1,
	"items": map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"firstname", "lastname", "phone"},
		"properties": map[string]interface{}{
			"firstname":      map[string]interface{}{"type": "string", "minLength": 1},
			"lastname":       map[string]interface{}{"type": "string", "minLength": 1},
			"phone":          map[string]interface{}{"type": "string", "minLength": 1},
			"email":          map[string]interface{}{"type": "string"},
			"marital_status": map[string]interface{}{"type": "string"},
		},
	},
}

// ValidateBorrowersPayload checks the decoded borrowers array against the schema.
func ValidateBorrowersPayload(borrowers []interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(borrowersSchema)
	documentLoader := gojsonschema.NewGoLoader(borrowers)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}
