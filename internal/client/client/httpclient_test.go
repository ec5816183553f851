package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) ClearToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestDo_AttachesHeaders(t *testing.T) {
	var gotAuth, gotCT, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		writeJSON(w, 200, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/api", &fakeTokens{token: "abc"})
	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/auth/me", &out))

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "/api/auth/me", gotPath)
	assert.Equal(t, true, out["ok"])
}

func TestDo_NoTokenNoAuthorization(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		writeJSON(w, 200, map[string]any{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeTokens{})
	require.NoError(t, c.Get(context.Background(), "/x", nil))
	assert.False(t, present)
}

func TestDo_WithTokenOverridesSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, 200, map[string]any{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &fakeTokens{token: "stored"})
	require.NoError(t, c.Get(context.Background(), "/x", nil, WithToken("explicit")))
	assert.Equal(t, "Bearer explicit", gotAuth)
}

func TestDo_AbsoluteURLUsedAsIs(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(w, 200, map[string]any{})
	}))
	defer srv.Close()

	c := NewHTTPClient("http://127.0.0.1:1/api", nil)
	require.NoError(t, c.Get(context.Background(), srv.URL+"/elsewhere", nil))
	assert.Equal(t, "/elsewhere", gotPath)
}

func TestDo_ErrorMessageSelection(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		wantMsg  string
		wantCode string
	}{
		{"message field", 400, map[string]any{"message": "Email taken", "code": CodeAccountExists}, "Email taken", CodeAccountExists},
		{"error field", 500, map[string]any{"error": "boom"}, "boom", ""},
		{"message wins", 400, map[string]any{"message": "m", "error": "e"}, "m", ""},
		{"empty body", 502, map[string]any{}, DefaultErrorMessage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			err := NewHTTPClient(srv.URL, nil).Get(context.Background(), "/x", nil)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestDo_NonJSONFailureBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, nil).Get(context.Background(), "/x", nil)
	assert.EqualError(t, err, DefaultErrorMessage)
}

func TestDo_InvalidTokenPurgesPersistedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"success": false, "message": MsgTokenInvalid})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "abc"}
	err := NewHTTPClient(srv.URL, tokens).Get(context.Background(), "/auth/me", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, tokens.cleared)
	assert.Empty(t, tokens.token)
}

func TestDo_OtherFailureKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "abc"}
	_ = NewHTTPClient(srv.URL, tokens).Get(context.Background(), "/x", nil)
	assert.Equal(t, 0, tokens.cleared)
	assert.Equal(t, "abc", tokens.token)
}

func TestDo_TokenInvalidCodePurges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"message": "Session ended", "code": CodeTokenInvalid})
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "abc"}
	_ = NewHTTPClient(srv.URL, tokens).Get(context.Background(), "/x", nil)
	assert.Equal(t, 1, tokens.cleared)
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewHTTPClient(url, nil).Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.EqualError(t, err, MsgUnavailable)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestDo_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewHTTPClient(srv.URL, nil).Get(ctx, "/x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTypedAPI_RoundTrip(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@b.co", DisplayName: "Asha", Role: models.RoleUser}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/email/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyOTPRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req.OTP)
		assert.Equal(t, "+91 9876543210", req.PhoneNumber)
		writeJSON(w, 201, models.AuthResponse{Token: "tok", User: user})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, 200, models.MeResponse{User: user})
	})
	mux.HandleFunc("/api/auth/check-email", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, models.CheckEmailResponse{Success: true, Available: true})
	})
	mux.HandleFunc("/api/auth/email/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, models.SendOTPResponse{Success: true, DevOTP: "654321"})
	})
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, 200, []models.Booking{{ID: "b1"}})
			return
		}
		var req models.BookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, 201, models.Booking{BookingRequest: req, ID: "b2", Status: "pending"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	c := NewHTTPClient(srv.URL+"/api", nil)

	auth, err := c.VerifyEmailOTP(ctx, models.VerifyOTPRequest{
		Email: "a@b.co", OTP: "123456", PhoneNumber: "+91 9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", auth.Token)

	me, err := c.Me(ctx, WithToken(auth.Token))
	require.NoError(t, err)
	assert.Equal(t, auth.User, me)

	avail, err := c.CheckEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, avail.Available)

	otp, err := c.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "654321", otp.DevOTP)

	b, err := c.CreateBooking(ctx, models.BookingRequest{StudioType: "podcast", Duration: 2})
	require.NoError(t, err)
	assert.Equal(t, "b2", b.ID)
	assert.Equal(t, "podcast", b.StudioType)

	list, err := c.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].ID)
}

func TestOptions_TimeoutDoesNotTouchCallerClient(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	c := NewHTTPClient("http://127.0.0.1:1", nil, WithHTTPDoer(hc), WithTimeout(time.Second))

	assert.Equal(t, 5*time.Second, hc.Timeout)
	assert.Equal(t, time.Second, c.http.Timeout)
}

func TestUseTokens_ReplacesSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, 401, map[string]any{"message": MsgTokenInvalid})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	tokens := &fakeTokens{token: "late"}
	c.UseTokens(tokens)

	_ = c.Get(context.Background(), "/x", nil)
	assert.Equal(t, "Bearer late", gotAuth)
	assert.Equal(t, 1, tokens.cleared)
}
