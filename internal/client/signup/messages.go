package signup

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/studiobook/internal/client/client"
)

const (
	MsgEmailExists        = "This email already exists"
	MsgEmailExistsToast   = "This email already exists. Use another email to sign up."
	MsgPrecheckSkipped    = "Cannot verify email availability. Proceeding anyway..."
	MsgSendOTPFailed      = "Failed to send OTP"
	MsgResent             = "OTP resent successfully!"
	MsgResendFailed       = "Failed to resend OTP"
	MsgOTPLength          = "Please enter a valid 6-digit OTP"
	MsgVerified           = "OTP Verified! Account created successfully!"
	MsgRedirecting        = "Redirecting to login page..."
	MsgOTPIncorrect       = "Incorrect OTP. Please check and try again."
	MsgOTPExpired         = "OTP has expired. Please request a new one."
	MsgVerificationFailed = "OTP verification failed. Please try again."
	MsgSignupFailedPrefix = "Signup failed: "
)

// ClassifyOTPError turns a failed verification into the text shown to the
// user. A machine-readable code wins; older backends are matched on
// substrings of their message.
func ClassifyOTPError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case client.CodeOTPInvalid:
			return MsgOTPIncorrect
		case client.CodeOTPExpired:
			return MsgOTPExpired
		case client.CodeAccountExists:
			return MsgSignupFailedPrefix + apiErr.Message
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Invalid OTP"):
		return MsgOTPIncorrect
	case strings.Contains(msg, "expired"):
		return MsgOTPExpired
	case strings.Contains(msg, "already"):
		return MsgSignupFailedPrefix + msg
	case msg == "":
		return MsgVerificationFailed
	}
	return msg
}

func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
