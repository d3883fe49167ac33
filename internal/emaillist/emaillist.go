// Package emaillist parses and validates delimited lists of email addresses
// as typed into recipient and cc fields.
package emaillist

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailRule requires a top level domain, accepts UTF-8 local parts and
// rejects display names such as "Name <user@example.com>".
const emailRule = "email"

var validate = validator.New()

// Result is the outcome of validating a list.
type Result struct {
	IsValid       bool     `json:"isValid"`
	InvalidEmails []string `json:"invalidEmails"`
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// Parse splits raw on commas and semicolons and returns the trimmed, non-empty
// tokens in input order. Duplicates are kept.
func Parse(raw string) []string {
	out := []string{}

	if strings.TrimSpace(raw) == "" {
		return out
	}

	for _, token := range strings.FieldsFunc(raw, isSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		out = append(out, token)
	}

	return out
}

// IsValid reports whether candidate is a well formed email address.
func IsValid(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}

	return validate.Var(candidate, emailRule) == nil
}

// Validate parses raw and reports the tokens that are not valid addresses.
// A blank list is valid.
func Validate(raw string) Result {
	invalid := []string{}

	for _, email := range Parse(raw) {
		if !IsValid(email) {
			invalid = append(invalid, email)
		}
	}

	return Result{
		IsValid:       len(invalid) == 0,
		InvalidEmails: invalid,
	}
}
