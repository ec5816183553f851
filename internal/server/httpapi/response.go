package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/studiobook/internal/server/services"
	"github.com/dmitrijs2005/studiobook/internal/validation"
)

// Machine readable codes sent next to the message of a failed request.
const (
	CodeValidation         = "validation_failed"
	CodeAccountExists      = "account_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeOTPInvalid         = "otp_invalid"
	CodeOTPExpired         = "otp_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeTokenMissing       = "token_missing"
	CodeInternal           = "internal_error"
)

const (
	MsgTokenInvalid       = "Invalid or expired token"
	MsgTokenMissing       = "Authentication required"
	MsgAccountExists      = "User with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgOTPInvalid         = "Invalid OTP"
	MsgOTPExpired         = "OTP has expired. Please request a new one"
	MsgBadBody            = "Invalid request body"
	MsgInternal           = "Something went wrong"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorBody{Success: false, Message: msg, Code: code})
}

// statusOf maps a service error to the reply sent to the client. Unknown
// errors become a 500 with a generic message.
func statusOf(err error) (int, string, string) {
	var fe *validation.FieldError
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, fe.Message, CodeValidation
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict, MsgAccountExists, CodeAccountExists
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials, CodeInvalidCredentials
	case errors.Is(err, services.ErrOTPInvalid):
		return http.StatusBadRequest, MsgOTPInvalid, CodeOTPInvalid
	case errors.Is(err, services.ErrOTPExpired):
		return http.StatusBadRequest, MsgOTPExpired, CodeOTPExpired
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, MsgTokenInvalid, CodeTokenInvalid
	default:
		return http.StatusInternalServerError, MsgInternal, CodeInternal
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, code := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg, code)
}

const maxBodyBytes = 1 << 20

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadBody, CodeValidation)
		return false
	}
	return true
}
