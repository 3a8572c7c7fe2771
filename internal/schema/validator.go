// Package schema validates inbound request payloads.
package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-voice-guard-service/internal/apperr"
)

// Validator checks struct tags on request payloads and maps violations to
// application errors.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate returns nil, apperr.MissingInput for a missing audio field, or
// apperr.InvalidInput for any other violation.
func (v *Validator) Validate(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.InvalidInput("", err.Error())
	}

	for _, fe := range fieldErrs {
		if fe.Field() == "audio" && fe.Tag() == "required" {
			return apperr.MissingInput()
		}
	}

	fe := fieldErrs[0]
	return apperr.InvalidInput(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
