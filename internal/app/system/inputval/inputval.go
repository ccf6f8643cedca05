// internal/app/system/inputval/inputval.go

// Package inputval holds request-input sanitization and validation helpers
// shared by the organization lifecycle handlers.
package inputval

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidEmail and ErrWeakPassword are wrapped by the corresponding
// validation failures so callers can classify them.
var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// MaxEmailLength bounds sanitized email input.
const MaxEmailLength = 100

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SanitizeString trims whitespace, truncates to max bytes, and removes
// embedded NUL bytes. It runs on every string input before validation.
func SanitizeString(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		s = s[:max]
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// ValidateEmail checks the address shape and returns it lowercased.
func ValidateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email cannot be empty", ErrInvalidEmail)
	}
	if len(email) > MaxEmailLength {
		return "", fmt.Errorf("%w: address too long", ErrInvalidEmail)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: malformed address", ErrInvalidEmail)
	}
	return email, nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// one uppercase letter, one lowercase letter, and one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrWeakPassword)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrWeakPassword)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	}
	if !lower {
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	}
	if !digit {
		return fmt.Errorf("%w: must contain a number", ErrWeakPassword)
	}
	return nil
}
