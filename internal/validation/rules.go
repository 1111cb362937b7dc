// Package validation is the declarative form-validation engine shared by
// the login, register and forgot-password views.
//
// A Schema lists fields in display order, each with an ordered list of
// rules. Validation stops at the first failing rule per field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks value (with access to the whole form for cross-field rules)
// and returns an error message, or "" when the value is acceptable.
type Rule func(value string, values map[string]string) string

// emailPattern is intentionally loose: local@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Required fails when the value is empty. Whitespace counts as a value.
func Required(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// Email fails when a non-empty value is not email-shaped.
func Email(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v != "" && !IsValidEmail(v) {
			return msg
		}
		return ""
	}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if utf8.RuneCountInString(v) < n {
			return msg
		}
		return ""
	}
}

// Matches fails when the value differs from the named field's value.
func Matches(field string, msg string) Rule {
	return func(v string, values map[string]string) string {
		if v != values[field] {
			return msg
		}
		return ""
	}
}

var (
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasLower = regexp.MustCompile(`[a-z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

// StrongPassword requires 8+ characters with upper case, lower case and a
// digit.
func StrongPassword() Rule {
	return func(v string, _ map[string]string) string {
		switch {
		case utf8.RuneCountInString(v) < 8:
			return "Password must be at least 8 characters"
		case !hasUpper.MatchString(v):
			return "Password must contain at least one uppercase letter"
		case !hasLower.MatchString(v):
			return "Password must contain at least one lowercase letter"
		case !hasDigit.MatchString(v):
			return "Password must contain at least one number"
		}
		return ""
	}
}

// PasswordPolicy selects the password rules applied on sign-up and sign-in.
type PasswordPolicy int

const (
	// PolicyBasic requires at least six characters.
	PolicyBasic PasswordPolicy = iota
	// PolicyStrong applies StrongPassword.
	PolicyStrong
)

// ParsePolicy parses "basic" or "strong".
func ParsePolicy(s string) (PasswordPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return PolicyBasic, nil
	case "strong":
		return PolicyStrong, nil
	default:
		return PolicyBasic, fmt.Errorf("unknown password policy %q (valid: basic, strong)", s)
	}
}

func (p PasswordPolicy) String() string {
	if p == PolicyStrong {
		return "strong"
	}
	return "basic"
}

// passwordRules returns the rules for a password field under p.
func (p PasswordPolicy) passwordRules() []Rule {
	rules := []Rule{Required("Password is required")}
	if p == PolicyStrong {
		return append(rules, StrongPassword())
	}
	return append(rules, MinLength(6, "Password must be at least 6 characters"))
}
