// Package validator wraps go-playground/validator with the custom rules
// used by the link APIs.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LoganMichel/logmi-app/pkg/response"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("shortcode", validateShortCode)
}

// Validate runs struct validation and maps failures to field-level errors
// for the API envelope. An empty slice means the value is valid.
func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	if err := validate.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, response.ValidationError{
				Field:   fieldErr.Field(),
				Message: errorMessage(fieldErr),
			})
		}
	}

	return validationErrors
}

func validateShortCode(fl validator.FieldLevel) bool {
	return shortCodePattern.MatchString(fl.Field().String())
}

// IsReserved reports whether a candidate custom code collides with a system
// route and must never be allocated as a short code.
func IsReserved(code string, reserved []string) bool {
	lowered := strings.ToLower(code)
	for _, path := range reserved {
		if lowered == strings.ToLower(path) {
			return true
		}
	}
	return false
}

func errorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
	case "shortcode":
		return fmt.Sprintf("%s may only contain letters, digits, '-' and '_'", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
