// Package validation holds the pure field checks used by the signup and login
// forms. Every validator is synchronous and side-effect free.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Error kinds. Messages returned by the validators wrap one of these, so
// callers can match with errors.Is while still showing the human text.
var (
	ErrEmptyField        = errors.New("empty field")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrTooShort          = errors.New("too short")
	ErrTooLong           = errors.New("too long")
	ErrMissingComplexity = errors.New("missing complexity")
	ErrInvalidCharacters = errors.New("invalid characters")
	ErrMismatch          = errors.New("mismatch")
)

const (
	PasswordMinLen = 6
	PasswordMaxLen = 128
	NameMinLen     = 2
	NameMaxLen     = 50
	PhoneMinDigits = 7
	PhoneMaxDigits = 15
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	phoneStrip = regexp.MustCompile(`[\s\-()]`)
)

// FieldError is a validation failure: a kind sentinel plus the message shown
// next to the field.
type FieldError struct {
	Kind    error
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return e.Kind }

// Result is the outcome of a single validator.
type Result struct {
	Valid bool
	Err   error
}

// Message returns the human readable error or "" for a valid result.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func ok() Result { return Result{Valid: true} }

func fail(kind error, msg string) Result {
	return Result{Err: &FieldError{Kind: kind, Message: msg}}
}

// ValidateEmail checks for a permissive local@domain.tld shape.
func ValidateEmail(email string) Result {
	if email == "" {
		return fail(ErrEmptyField, "Email is required")
	}
	if !emailRe.MatchString(email) {
		return fail(ErrInvalidFormat, "Please enter a valid email address")
	}
	return ok()
}

// ValidatePassword requires 6..128 characters with at least one letter and
// one digit.
func ValidatePassword(password string) Result {
	if password == "" {
		return fail(ErrEmptyField, "Password is required")
	}
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLen {
		return fail(ErrTooShort, "Password must be at least 6 characters")
	}
	if n > PasswordMaxLen {
		return fail(ErrTooLong, "Password is too long (max 128 characters)")
	}
	if !hasASCIILetter(password) || !hasDigit(password) {
		return fail(ErrMissingComplexity, "Password must contain both letters and numbers")
	}
	return ok()
}

// ValidateLoginPassword is the lighter check the login form applies: the
// backend decides whether the credentials are right.
func ValidateLoginPassword(password string) Result {
	if password == "" {
		return fail(ErrEmptyField, "Password is required")
	}
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return fail(ErrTooShort, "Password must be at least 6 characters")
	}
	return ok()
}

// ValidateDisplayName checks the trimmed name length and its character set.
func ValidateDisplayName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fail(ErrEmptyField, "Name is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLen {
		return fail(ErrTooShort, "Name must be at least 2 characters")
	}
	if n > NameMaxLen {
		return fail(ErrTooLong, "Name is too long (max 50 characters)")
	}
	if !nameRe.MatchString(name) {
		return fail(ErrInvalidCharacters, "Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return ok()
}

// ValidatePhoneNumber checks the local part of a phone number. The country
// code is selected separately and is not part of the input.
func ValidatePhoneNumber(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return fail(ErrEmptyField, "Phone number is required")
	}
	clean := CleanPhoneNumber(phone)
	if !digitsRe.MatchString(clean) {
		return fail(ErrInvalidFormat, "Phone number should contain only digits")
	}
	if len(clean) < PhoneMinDigits || len(clean) > PhoneMaxDigits {
		return fail(ErrInvalidFormat, "Phone number should be between 7-15 digits")
	}
	return ok()
}

// CleanPhoneNumber removes spaces, hyphens and parentheses.
func CleanPhoneNumber(phone string) string {
	return phoneStrip.ReplaceAllString(phone, "")
}

// ValidateConfirmPassword requires confirm to be present and equal to password.
func ValidateConfirmPassword(password, confirm string) Result {
	if confirm == "" {
		return fail(ErrEmptyField, "Please confirm your password")
	}
	if password != confirm {
		return fail(ErrMismatch, "Passwords do not match")
	}
	return ok()
}

func hasASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
