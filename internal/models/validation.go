package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SanitizeString removes extra whitespace and trims the string
func SanitizeString(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ValidatePositiveInteger validates that an integer is positive
func ValidatePositiveInteger(value int, fieldName string) error {
	if value <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " must be greater than 0",
			Value:   value,
		}
	}
	return nil
}

// FromValidatorError converts the first failure reported by the validator into a ValidationError
func FromValidatorError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	field := jsonFieldName(fe.Field())

	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "min", "gte":
		message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		message = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}

	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   fe.Value(),
	}
}

// jsonFieldName maps GenerationRequest struct fields to their wire names
func jsonFieldName(structField string) string {
	switch structField {
	case "Prompt":
		return "prompt"
	case "MaxTokens":
		return "max_tokens"
	case "Temperature":
		return "temperature"
	case "ModelID":
		return "model_id"
	default:
		return structField
	}
}
