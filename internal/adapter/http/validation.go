package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// invoice role class
	_ = v.RegisterValidation("invoicerole", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "client", "investor", "capinvestor":
			return true
		}
		return false
	})
	// comma-separated email list, each address valid
	_ = v.RegisterValidation("emaillist", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if strings.TrimSpace(raw) == "" {
			return false
		}
		for _, addr := range strings.Split(raw, ",") {
			if err := v.Var(strings.TrimSpace(addr), "email"); err != nil {
				return false
			}
		}
		return true
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "emaillist":
			out = append(out, FieldError{Field: field, Message: "must be a comma-separated list of valid email addresses"})
		case "invoicerole":
			out = append(out, FieldError{Field: field, Message: "must be one of client, investor, capinvestor"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
