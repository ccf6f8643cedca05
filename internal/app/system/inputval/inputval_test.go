package inputval_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/inputval"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"trims whitespace", "  hello  ", 100, "hello"},
		{"truncates to max", "abcdefgh", 5, "abcde"},
		{"strips NUL bytes", "he\x00llo", 100, "hello"},
		{"empty stays empty", "", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inputval.SanitizeString(tt.input, tt.max); got != tt.want {
				t.Errorf("SanitizeString(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"admin@acmecorp.com",
		"first.last@example.co",
		"user+tag@sub.example.org",
	}
	for _, email := range valid {
		if _, err := inputval.ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) returned error: %v", email, err)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@",
		"user@example.com" + strings.Repeat("x", 100),
	}
	for _, email := range invalid {
		if _, err := inputval.ValidateEmail(email); !errors.Is(err, inputval.ErrInvalidEmail) {
			t.Errorf("ValidateEmail(%q) error = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestValidateEmail_Lowercases(t *testing.T) {
	got, err := inputval.ValidateEmail("Admin@AcmeCorp.COM")
	if err != nil {
		t.Fatalf("ValidateEmail returned error: %v", err)
	}
	if got != "admin@acmecorp.com" {
		t.Errorf("ValidateEmail = %q, want lowercased form", got)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := inputval.ValidatePassword("SecurePass123"); err != nil {
		t.Errorf("ValidatePassword(valid) returned error: %v", err)
	}

	weak := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "securepass123"},
		{"no lowercase", "SECUREPASS123"},
		{"no digit", "SecurePassword"},
		{"empty", ""},
	}
	for _, tt := range weak {
		t.Run(tt.name, func(t *testing.T) {
			if err := inputval.ValidatePassword(tt.password); !errors.Is(err, inputval.ErrWeakPassword) {
				t.Errorf("ValidatePassword(%q) error = %v, want ErrWeakPassword", tt.password, err)
			}
		})
	}
}
