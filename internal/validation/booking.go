// Package validation checks caller input before it reaches the stores.
package validation

import (
	"encoding/json"
	"fmt"

	"gastroguide/internal/apperrors"
	"gastroguide/model"

	"github.com/xeipuuv/gojsonschema"
)

// bookingRequired is checked in this order so the first missing field is
// reported consistently.
var bookingRequired = []string{"customer", "date", "time", "guests"}

var bookingSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"customer", "date", "time", "guests"},
	"properties": map[string]interface{}{
		"customer":   map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 255},
		"email":      map[string]interface{}{"type": "string", "maxLength": 255},
		"phone":      map[string]interface{}{"type": "string", "maxLength": 50},
		"date":       map[string]interface{}{"type": "string", "minLength": 1},
		"time":       map[string]interface{}{"type": "string", "minLength": 1},
		"guests":     map[string]interface{}{"type": "integer", "minimum": 1},
		"table_pref": map[string]interface{}{"type": "string", "maxLength": 100},
	},
}

var bookingSchemaLoader = gojsonschema.NewGoLoader(bookingSchema)

// DecodeBookingRequest validates a raw booking body and decodes it.
func DecodeBookingRequest(body []byte) (model.BookingRequest, error) {
	var req model.BookingRequest
	if err := ValidateBookingJSON(body); err != nil {
		return req, err
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, apperrors.NewValidationError("body", "Invalid JSON body")
	}
	return req, nil
}

// ValidateBookingJSON returns a validation error naming the first offending
// field. Empty strings and a zero guest count count as missing.
func ValidateBookingJSON(body []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return apperrors.NewValidationError("body", "Invalid JSON body")
	}

	result, err := gojsonschema.Validate(bookingSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return apperrors.NewValidationError("body", fmt.Sprintf("validation error: %v", err))
	}
	if result.Valid() {
		return nil
	}

	missing := map[string]bool{}
	var first gojsonschema.ResultError
	for _, re := range result.Errors() {
		switch re.Type() {
		case "required":
			if prop, ok := re.Details()["property"].(string); ok {
				missing[prop] = true
			}
		case "string_gte":
			missing[re.Field()] = true
		case "number_gte":
			if v, ok := doc[re.Field()].(float64); ok && v == 0 {
				missing[re.Field()] = true
			}
		}
		if first == nil {
			first = re
		}
	}

	for _, field := range bookingRequired {
		if missing[field] {
			return apperrors.NewValidationError(field, "Missing required field: "+field)
		}
	}
	return apperrors.NewValidationError(first.Field(), fmt.Sprintf("Invalid field %s: %s", first.Field(), first.Description()))
}
