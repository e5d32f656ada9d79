package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a form field that failed validation.
type FieldError struct {
	FailedField string
	Tag         string
	Value       any
}

// Message returns a short text for templates.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return e.FailedField + " is required"
	case "email":
		return e.FailedField + " must be a valid email address"
	case "max":
		return e.FailedField + " is too long"
	default:
		return e.FailedField + " is invalid"
	}
}

var validate = validator.New()

// Validate validates a parsed form and returns the failed fields.
// A nil result means the form is valid.
func Validate(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{FailedField: "form", Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Value:       fe.Value(),
		})
	}

	return out
}

// Messages joins the messages of errs.
func Messages(errs []FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message())
	}

	return strings.Join(msgs, ", ")
}
