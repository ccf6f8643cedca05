// internal/app/system/orgname/orgname.go

// Package orgname derives canonical, collision-resistant organization names
// and the per-organization collection names built from them.
//
// A canonical name is lowercase [a-z0-9_], 3-50 characters, and never starts
// with an underscore. Sanitize is pure and deterministic: the same input
// always yields the same output, and re-sanitizing a canonical name yields
// the name unchanged.
package orgname

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is wrapped by every validation failure from Sanitize.
var ErrInvalidName = errors.New("invalid organization name")

const (
	// MinLength and MaxLength bound the trimmed input and the canonical
	// result.
	MinLength = 3
	MaxLength = 50

	// Prefix is prepended to every canonical name to form the collection
	// name for the organization's data.
	Prefix = "org_"
)

// Sanitize validates a human-supplied organization name and returns its
// canonical form: trimmed, lowercased, interior spaces replaced with
// underscores, and every character outside [a-z0-9_] removed.
func Sanitize(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) < MinLength {
		return "", fmt.Errorf("%w: name must be at least %d characters", ErrInvalidName, MinLength)
	}
	if len(name) > MaxLength {
		return "", fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidName, MaxLength)
	}

	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	sanitized := b.String()

	if sanitized == "" {
		return "", fmt.Errorf("%w: name must contain at least one alphanumeric character", ErrInvalidName)
	}

	// Canonical names never begin with an underscore.
	sanitized = strings.TrimLeft(sanitized, "_")
	if sanitized == "" {
		return "", fmt.Errorf("%w: name must contain alphanumeric characters", ErrInvalidName)
	}

	if len(sanitized) < MinLength {
		return "", fmt.Errorf("%w: name must be at least %d characters after sanitization", ErrInvalidName, MinLength)
	}

	return sanitized, nil
}

// CollectionName returns the collection name for a canonical organization
// name. It applies the prefix unconditionally and performs no validation;
// callers pass names that already went through Sanitize.
func CollectionName(name string) string {
	return Prefix + name
}
