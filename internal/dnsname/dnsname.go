// Package dnsname validates and normalizes DNS names per RFC 1123 hostname
// rules (lowercase labels of 1-63 characters, 253 characters total).
package dnsname

import (
	"fmt"
	"strings"
)

const (
	maxLabelLen = 63
	maxNameLen  = 253
)

// Normalize lowercases a DNS name and strips surrounding whitespace and the
// trailing dot.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
}

// Validate checks that name is a syntactically valid DNS hostname after
// normalization. It returns a descriptive error for the first violation.
func Validate(name string) error {
	n := Normalize(name)
	if n == "" {
		return fmt.Errorf("name is empty")
	}
	if len(n) > maxNameLen {
		return fmt.Errorf("name exceeds %d characters: %d", maxNameLen, len(n))
	}
	for _, label := range strings.Split(n, ".") {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("label %q: %w", label, err)
		}
	}
	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("empty label")
	}
	if len(label) > maxLabelLen {
		return fmt.Errorf("exceeds %d characters", maxLabelLen)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("leading or trailing hyphen")
	}
	for _, c := range label {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return fmt.Errorf("invalid character %q", c)
		}
	}
	return nil
}

// FirstLabel splits a DNS name into its leftmost label and the remainder.
// "app.example.com" yields ("app", "example.com").
func FirstLabel(name string) (label, rest string) {
	n := Normalize(name)
	if i := strings.Index(n, "."); i >= 0 {
		return n[:i], n[i+1:]
	}
	return n, ""
}

// HasSuffix reports whether name ends with the given domain suffix,
// comparing normalized forms. An empty suffix matches any name.
func HasSuffix(name, suffix string) bool {
	if suffix == "" {
		return true
	}
	n := Normalize(name)
	s := strings.TrimPrefix(Normalize(suffix), ".")
	return n == s || strings.HasSuffix(n, "."+s)
}
