package signup

import "errors"

var (
	ErrBusy             = errors.New("another request is in progress")
	ErrInvalidState     = errors.New("action not allowed in current state")
	ErrValidation       = errors.New("form has invalid fields")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidOTPLength = errors.New("otp must be 6 characters")
	ErrResendNotReady   = errors.New("resend not available yet")
)
