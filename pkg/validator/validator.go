package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	registerNumberPattern = regexp.MustCompile(`^[0-9]{12}$`)
	rollNumberPattern     = regexp.MustCompile(`^[0-9]{2}[A-Z]{2}[0-9]{3}$`)
)

func init() {
	validate = validator.New()

	// register_number: exactly 12 decimal digits.
	validate.RegisterValidation("register_number", func(fl validator.FieldLevel) bool {
		return registerNumberPattern.MatchString(fl.Field().String())
	})

	// roll_number: 2 digits, 2 uppercase letters, 3 digits; inputs are
	// case-normalized before validation, so lowercase letters pass too.
	validate.RegisterValidation("roll_number", func(fl validator.FieldLevel) bool {
		return rollNumberPattern.MatchString(strings.ToUpper(fl.Field().String()))
	})
}

// GetValidator returns the validator instance
func GetValidator() *validator.Validate {
	return validate
}

// ValidateStruct validates a struct
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FormatValidationError formats validation errors into a readable format
func FormatValidationError(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(fieldError.Field()),
				Tag:     fieldError.Tag(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

// getErrorMessage returns a human-readable error message for validation errors
func getErrorMessage(fieldError validator.FieldError) string {
	field := strings.ToLower(fieldError.Field())

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fieldError.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldError.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	case "register_number":
		return fmt.Sprintf("%s must be exactly 12 digits", field)
	case "roll_number":
		return fmt.Sprintf("%s must be 2 digits, 2 letters, 3 digits", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
