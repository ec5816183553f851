package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
)

// rejection keeps the backend's message as the error text while matching
// a service sentinel with errors.Is.
type rejection struct {
	kind  error
	cause error
}

func (e *rejection) Error() string {
	return e.cause.Error()
}

func (e *rejection) Unwrap() []error {
	return []error{e.kind, e.cause}
}
