package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/server/config"
	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studiobook/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (m *captureMailer) SendOTP(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[email] = code
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newAuthService(t *testing.T) (*AuthService, *captureMailer, *clock) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.OTPTTL = 10 * time.Minute

	mailer := &captureMailer{}
	s := NewAuthService(repomanager.NewMemoryRepositoryManager(), mailer, cfg)
	s.hashCost = bcrypt.MinCost
	c := &clock{t: time.Now()}
	s.now = c.now
	return s, mailer, c
}

func signup(email, otp string) SignupInput {
	return SignupInput{
		Email:       email,
		OTP:         otp,
		DisplayName: "Jane Doe",
		PhoneNumber: "+91 9876543210",
		Password:    "secret123",
	}
}

func TestCheckEmail(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	available, err := s.CheckEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = s.Register(ctx, signup("jane@example.com", ""))
	require.NoError(t, err)

	for range 2 {
		available, err = s.CheckEmail(ctx, "JANE@example.com")
		require.NoError(t, err)
		assert.False(t, available)
	}

	_, err = s.CheckEmail(ctx, "not-an-email")
	var fe *validation.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Please enter a valid email address", fe.Message)
}

func TestSendAndVerifyOTP(t *testing.T) {
	s, mailer, _ := newAuthService(t)
	ctx := context.Background()

	code, err := s.SendEmailOTP(ctx, "Jane@Example.com")
	require.NoError(t, err)
	assert.Len(t, code, OTPLength)
	assert.Equal(t, code, mailer.codes["jane@example.com"])

	sess, err := s.VerifyEmailOTP(ctx, signup("jane@example.com", code))
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "jane@example.com", sess.User.Email)
	assert.Equal(t, "+91 9876543210", sess.User.PhoneNumber)
	assert.Equal(t, models.ProviderEmail, sess.User.Provider)
	assert.Equal(t, models.RoleUser, sess.User.Role)

	user, _, err := s.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, user.ID)

	// the code is single use
	_, err = s.VerifyEmailOTP(ctx, signup("jane@example.com", code))
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyOTP_WrongCodeKeepsChallenge(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	code, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", wrong))
	assert.ErrorIs(t, err, ErrOTPInvalid)

	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", code))
	assert.NoError(t, err)
}

func TestVerifyOTP_NoChallenge(t *testing.T) {
	s, _, _ := newAuthService(t)

	_, err := s.VerifyEmailOTP(context.Background(), signup("a@b.co", "123456"))
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyOTP_Expired(t *testing.T) {
	s, _, c := newAuthService(t)
	ctx := context.Background()

	code, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)

	c.t = c.t.Add(11 * time.Minute)
	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", code))
	assert.ErrorIs(t, err, ErrOTPExpired)

	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", code))
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestVerifyOTP_ResendReplacesCode(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	first, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)
	second, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)

	if first != second {
		_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", first))
		assert.ErrorIs(t, err, ErrOTPInvalid)
	}
	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", second))
	assert.NoError(t, err)
}

func TestVerifyOTP_RechecksDuplicate(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	code, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)

	// someone registered the address between send and verify
	_, err = s.Register(ctx, signup("a@b.co", ""))
	require.NoError(t, err)

	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", code))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyOTP_InvalidProfileKeepsChallenge(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	code, err := s.SendEmailOTP(ctx, "a@b.co")
	require.NoError(t, err)

	in := signup("a@b.co", code)
	in.Password = "short"
	_, err = s.VerifyEmailOTP(ctx, in)
	assert.ErrorIs(t, err, validation.ErrTooShort)

	_, err = s.VerifyEmailOTP(ctx, signup("a@b.co", code))
	assert.NoError(t, err)
}

func TestSendOTP_Errors(t *testing.T) {
	s, mailer, _ := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, signup("taken@b.co", ""))
	require.NoError(t, err)
	_, err = s.SendEmailOTP(ctx, "taken@b.co")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.SendEmailOTP(ctx, "")
	assert.ErrorIs(t, err, validation.ErrEmptyField)

	mailer.err = errors.New("smtp down")
	_, err = s.SendEmailOTP(ctx, "free@b.co")
	assert.ErrorContains(t, err, "smtp down")
}

func TestLogin(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, signup("a@b.co", ""))
	require.NoError(t, err)

	sess, err := s.Login(ctx, "A@b.co", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	_, err = s.Login(ctx, "a@b.co", "wrong123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@b.co", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleAuth(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	first, err := s.GoogleAuth(ctx, "g@gmail.com", "Gee User", "http://photo")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderGoogle, first.User.Provider)
	assert.Equal(t, "http://photo", first.User.PhotoURL)

	again, err := s.GoogleAuth(ctx, "g@gmail.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID)

	// federated accounts have no password
	_, err = s.Login(ctx, "g@gmail.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	sess, err := s.Register(ctx, signup("a@b.co", ""))
	require.NoError(t, err)

	_, claims, err := s.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, claims))

	_, _, err = s.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := s.Login(ctx, "a@b.co", "secret123")
	require.NoError(t, err)
	_, _, err = s.Authenticate(ctx, other.Token)
	assert.NoError(t, err)
}

func TestAuthenticate_BadToken(t *testing.T) {
	s, _, _ := newAuthService(t)

	_, _, err := s.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSeedAdmin(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	admin, err := s.SeedAdmin(ctx, "admin@studio.local", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	sess, err := s.Login(ctx, "admin@studio.local", "admin123")
	require.NoError(t, err)
	_, claims, err := s.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = s.Register(ctx, signup("promote@b.co", ""))
	require.NoError(t, err)
	promoted, err := s.SeedAdmin(ctx, "promote@b.co", "ignored1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	_, err = s.Login(ctx, "promote@b.co", "secret123")
	assert.NoError(t, err)
}
