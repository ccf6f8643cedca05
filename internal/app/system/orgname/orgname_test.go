package orgname_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/orgname"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "acme_corp", "acme_corp"},
		{"uppercase folded", "AcmeCorp", "acmecorp"},
		{"spaces become underscores", "Acme Corp", "acme_corp"},
		{"surrounding whitespace trimmed", "  acme corp  ", "acme_corp"},
		{"special characters stripped", "acme-corp!2024", "acmecorp2024"},
		{"leading underscores trimmed", "__acme", "acme"},
		{"digits allowed", "team42", "team42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orgname.Sanitize(tt.input)
			if err != nil {
				t.Fatalf("Sanitize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "ab"},
		{"too long", "this_organization_name_is_far_too_long_to_be_accepted_here"},
		{"only special characters", "!!!"},
		{"only underscores", "____"},
		{"too short after stripping", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orgname.Sanitize(tt.input)
			if !errors.Is(err, orgname.ErrInvalidName) {
				t.Errorf("Sanitize(%q) error = %v, want ErrInvalidName", tt.input, err)
			}
		})
	}
}

func TestSanitize_Deterministic(t *testing.T) {
	inputs := []string{"Acme Corp", "acme_corp", "  TEAM 42  "}
	for _, input := range inputs {
		first, err := orgname.Sanitize(input)
		if err != nil {
			t.Fatalf("Sanitize(%q) returned error: %v", input, err)
		}
		second, err := orgname.Sanitize(input)
		if err != nil {
			t.Fatalf("second Sanitize(%q) returned error: %v", input, err)
		}
		if first != second {
			t.Errorf("Sanitize(%q) not deterministic: %q then %q", input, first, second)
		}
	}
}

func TestSanitize_IdempotentOnCanonical(t *testing.T) {
	// Sanitizing an already-sanitized name must be a no-op.
	inputs := []string{"Acme Corp", "Team-42!", "  mixed CASE name  "}
	for _, input := range inputs {
		canonical, err := orgname.Sanitize(input)
		if err != nil {
			t.Fatalf("Sanitize(%q) returned error: %v", input, err)
		}
		again, err := orgname.Sanitize(canonical)
		if err != nil {
			t.Fatalf("Sanitize(%q) returned error: %v", canonical, err)
		}
		if again != canonical {
			t.Errorf("Sanitize(%q) = %q, want unchanged", canonical, again)
		}
	}
}

func TestCollectionName(t *testing.T) {
	if got := orgname.CollectionName("acme_corp"); got != "org_acme_corp" {
		t.Errorf("CollectionName(acme_corp) = %q, want org_acme_corp", got)
	}
}
