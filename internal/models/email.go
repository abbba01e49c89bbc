package models

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, normalized (lowercase) e-mail address.
type Email string

// NewEmail validates and normalizes an e-mail address.
func NewEmail(value string) (Email, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", NewValidationError("email cannot be empty")
	}
	if !emailPattern.MatchString(trimmed) {
		return "", NewValidationError("invalid email format: %s", value)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}
