package validation

import (
	"fmt"

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

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// searchRequestSchema constrains the POST /search body. The query text is
// required but may be empty; coordinates must arrive as a pair.
var searchRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"q"},
	"properties": map[string]interface{}{
		"q": map[string]interface{}{
			"type":      "string",
			"maxLength": 512,
		},
		"lat": map[string]interface{}{
			"type":    "number",
			"minimum": -90,
			"maximum": 90,
		},
		"lng": map[string]interface{}{
			"type":    "number",
			"minimum": -180,
			"maximum": 180,
		},
		"page": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
		"hitsPerPage": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
			"maximum": 100,
		},
		"radiusMeters": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
	},
	"additionalProperties": false,
	"dependencies": map[string]interface{}{
		"lat": []interface{}{"lng"},
		"lng": []interface{}{"lat"},
	},
}

// ValidateSearchRequest validates a decoded search request body against the
// request schema.
func ValidateSearchRequest(body map[string]interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(searchRequestSchema)
	documentLoader := gojsonschema.NewGoLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, resErr := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   resErr.Field(),
			Message: resErr.Description(),
			Code:    resErr.Type(),
		})
	}
	return out, nil
}
