package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/socialfeed/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Check adds an error when ok is false.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required checks that value is not empty or whitespace-only.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength checks that value has at most max characters (runes).
func (v *Validator) MaxLength(field, value string, max int) *Validator {
	return v.Check(utf8.RuneCountInString(value) <= max, field,
		fmt.Sprintf("must be at most %d characters", max))
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the collected field errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Error returns an *errors.AppError describing every collected failure,
// or nil when the input is valid.
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	return newValidationError(v.errors)
}

func newValidationError(fieldErrors []FieldError) *errors.AppError {
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Field+" "+fe.Message)
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", fieldErrors)
}
