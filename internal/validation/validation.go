// Package validation normalizes and validates survey input before it
// reaches the repository layer.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field paths by their json names, matching the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// FieldError is one schema violation: the offending field, a readable
// message and the machine-readable rule that failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	return fmt.Sprintf("invalid input: %s %s", e[0].Field, e[0].Message)
}

type SubmitRequest struct {
	Email            string  `json:"email" validate:"required,email,max=255"`
	Motivation       *string `json:"motivation" validate:"omitempty,max=1000"`
	FavoriteLanguage string  `json:"favorite_language" validate:"required,oneof=JavaScript Python Java C# Otro"`
}

// Normalize lowercases and trims the email and collapses an empty or
// whitespace-only motivation to absent. Runs before validation so the
// rules see the values that would actually be stored.
func (r *SubmitRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.Motivation != nil {
		trimmed := strings.TrimSpace(*r.Motivation)
		if trimmed == "" {
			r.Motivation = nil
		} else {
			r.Motivation = &trimmed
		}
	}
}

// ValidateSubmit checks a normalized submission against the creation
// schema. A nil return means the request may be persisted as-is.
func ValidateSubmit(req *SubmitRequest) Errors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Message: err.Error(), Code: "invalid"}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

// NormalizeEmail applies the same normalization the creation schema
// uses, so lookups and uniqueness checks share one identity rule.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks a bare email value, used by the lookup and
// existence endpoints.
func ValidateEmail(email string) Errors {
	err := validate.Var(email, "required,email,max=255")
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "email", Message: err.Error(), Code: "invalid"}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   "email",
			Message: messageFor(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
