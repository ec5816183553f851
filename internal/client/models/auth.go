package models

// Request and response bodies of the backend auth endpoints.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

// SendOTPResponse carries DevOTP only when the backend runs in development
// mode and echoes the generated code.
type SendOTPResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	DevOTP  string `json:"devOTP,omitempty"`
}

// VerifyOTPRequest is the code plus the full profile needed to materialize
// the account in the same call.
type VerifyOTPRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	DisplayName string `json:"displayName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password,omitempty"`
}

type GoogleAuthRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CheckEmailResponse struct {
	Success   bool `json:"success"`
	Available bool `json:"available"`
}

// AuthResponse is returned by every endpoint that opens a session.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type MeResponse struct {
	User *User `json:"user"`
}

// ErrorResponse is the body of a non-success reply. Code is optional and
// machine readable; older backends send only Message or Error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}
