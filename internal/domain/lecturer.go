package domain

import (
	"net/mail"
	"strings"
)

// Lecturer is a lecturer record read from the seed file and submitted to the API.
// It is never persisted locally.
type Lecturer struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department"`
}

// Validate checks the required fields. Email is optional but must parse when set.
func (l Lecturer) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(l.Department) == "" {
		errs = append(errs, FieldError{Field: "department", Message: "required"})
	}
	if l.Email != "" {
		if _, err := mail.ParseAddress(l.Email); err != nil {
			errs = append(errs, FieldError{Field: "email", Message: "invalid format"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
