package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/kbukum/socialfeed/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under the names clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
})

// tagMessages renders a failed tag; the tag parameter is appended where the
// message ends in a space.
var tagMessages = map[string]string{
	"required": "is required",
	"notblank": "is required",
	"min":      "must be at least ",
	"max":      "must be at most ",
	"gt":       "must be greater than ",
	"oneof":    "must be one of: ",
}

// Validate checks a request struct against its `validate` tags, such as
// `validate:"notblank,max=50"`, and returns an INVALID_INPUT error listing
// each failing field. String lengths count runes.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	failures, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, 0, len(failures))
	for _, f := range failures {
		fields = append(fields, FieldError{Field: f.Field(), Message: describe(f)})
	}
	return newValidationError(fields)
}

func describe(f validator.FieldError) string {
	msg, ok := tagMessages[f.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		msg += f.Param()
		if f.Kind() == reflect.String && (f.Tag() == "min" || f.Tag() == "max") {
			msg += " characters"
		}
	}
	return msg
}
