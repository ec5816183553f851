package client

import (
	"context"

	"github.com/dmitrijs2005/studiobook/internal/client/models"
)

// Backend paths, relative to the base URL.
const (
	PathLogin      = "/auth/login"
	PathRegister   = "/auth/register"
	PathSendOTP    = "/auth/email/send-otp"
	PathVerifyOTP  = "/auth/email/verify-otp"
	PathGoogle     = "/auth/google"
	PathLogout     = "/auth/logout"
	PathMe         = "/auth/me"
	PathCheckEmail = "/auth/check-email"
	PathBookings   = "/bookings"
)

// Client is the typed view of the backend used by the session store, the
// signup flow and the booking form.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	SendEmailOTP(ctx context.Context, email string) (*models.SendOTPResponse, error)
	VerifyEmailOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.AuthResponse, error)
	GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, opts ...RequestOption) error
	Me(ctx context.Context, opts ...RequestOption) (*models.User, error)
	CheckEmail(ctx context.Context, email string) (*models.CheckEmailResponse, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) auth(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return c.auth(ctx, PathLogin, req)
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.auth(ctx, PathRegister, req)
}

func (c *HTTPClient) SendEmailOTP(ctx context.Context, email string) (*models.SendOTPResponse, error) {
	var resp models.SendOTPResponse
	if err := c.Post(ctx, PathSendOTP, models.SendOTPRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyEmailOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.AuthResponse, error) {
	return c.auth(ctx, PathVerifyOTP, req)
}

func (c *HTTPClient) GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (*models.AuthResponse, error) {
	return c.auth(ctx, PathGoogle, req)
}

func (c *HTTPClient) Logout(ctx context.Context, opts ...RequestOption) error {
	return c.Post(ctx, PathLogout, struct{}{}, nil, opts...)
}

// Me returns the account behind the bearer token. Pass WithToken to check a
// token that is not persisted yet.
func (c *HTTPClient) Me(ctx context.Context, opts ...RequestOption) (*models.User, error) {
	var resp models.MeResponse
	if err := c.Get(ctx, PathMe, &resp, opts...); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{Status: 200, Message: DefaultErrorMessage}
	}
	return resp.User, nil
}

// CheckEmail asks whether email is free for signup. A transport failure
// wraps ErrUnavailable so callers can tell it apart from a rejection.
func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (*models.CheckEmailResponse, error) {
	var resp models.CheckEmailResponse
	if err := c.Post(ctx, PathCheckEmail, models.CheckEmailRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := c.Post(ctx, PathBookings, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.Get(ctx, PathBookings, &out); err != nil {
		return nil, err
	}
	return out, nil
}
