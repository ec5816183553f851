// Package services contains the business logic of the development backend:
// OTP-gated signup, password and federated login, token revocation and
// studio bookings.
package services

import (
	"errors"

	"github.com/dmitrijs2005/studiobook/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPInvalid         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidInput       = errors.New("invalid input")
)

// invalid reports a malformed request field. The message is meant for the
// end user.
func invalid(msg string) error {
	return &validation.FieldError{Kind: ErrInvalidInput, Message: msg}
}

func check(r validation.Result) error {
	if r.Valid {
		return nil
	}
	return r.Err
}
