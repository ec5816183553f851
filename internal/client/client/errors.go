package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// MsgUnavailable is what a user sees when the backend cannot be reached.
const MsgUnavailable = "Unable to connect to server. Please ensure the backend is running."

// MsgTokenInvalid is the backend message that marks the bearer token as
// unusable. Seeing it makes the client drop the persisted token.
const MsgTokenInvalid = "Invalid or expired token"

// DefaultErrorMessage is used when a failure body carries no message.
const DefaultErrorMessage = "Something went wrong"

// Machine-readable failure codes. Older backends send none, in which case
// callers fall back to matching Message.
const (
	CodeOTPInvalid    = "otp_invalid"
	CodeOTPExpired    = "otp_expired"
	CodeAccountExists = "account_exists"
	CodeTokenInvalid  = "token_invalid"
)

// APIError is a non-success HTTP reply with its decoded body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrUnauthorized) hold for 401 replies.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// TokenInvalid reports whether the reply says the bearer token is no
// longer accepted.
func (e *APIError) TokenInvalid() bool {
	return e.Code == CodeTokenInvalid || e.Message == MsgTokenInvalid
}

// transportError is a request that got no HTTP reply. It prints as
// MsgUnavailable and matches both ErrUnavailable and its cause.
type transportError struct {
	cause error
}

func (e *transportError) Error() string {
	return MsgUnavailable
}

func (e *transportError) Unwrap() []error {
	return []error{ErrUnavailable, e.cause}
}

func unavailable(err error) error {
	return &transportError{cause: err}
}
