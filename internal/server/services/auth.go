package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/server/auth"
	"github.com/dmitrijs2005/studiobook/internal/server/config"
	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/users"
	"github.com/dmitrijs2005/studiobook/internal/shared"
	"github.com/dmitrijs2005/studiobook/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// OTPLength is the number of digits of an emailed code.
const OTPLength = 6

// Session is an issued bearer token and the account it belongs to.
type Session struct {
	Token string
	User  *models.User
}

// SignupInput is the data needed to create an email account.
type SignupInput struct {
	Email       string
	OTP         string
	DisplayName string
	PhoneNumber string
	Password    string
}

// AuthService provides authentication-related operations:
// - SendEmailOTP / VerifyEmailOTP: two-step signup gated by a code
// - Register, Login, GoogleAuth: open a session directly
// - Authenticate / Logout: check and revoke bearer tokens
type AuthService struct {
	repos         repomanager.RepositoryManager
	mailer        Mailer
	jwtSecret     []byte
	tokenValidity time.Duration
	otpTTL        time.Duration
	hashCost      int
	now           func() time.Time
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(m repomanager.RepositoryManager, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		repos:         m,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		otpTTL:        cfg.OTPTTL,
		hashCost:      bcrypt.DefaultCost,
		now:           time.Now,
	}
}

// CheckEmail reports whether email is free for signup.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = users.NormalizeEmail(email)
	if err := check(validation.ValidateEmail(email)); err != nil {
		return false, err
	}

	_, err := s.repos.Users().GetByEmail(ctx, email)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return false, nil
}

// SendEmailOTP issues a fresh code for email, replacing any earlier one, and
// hands it to the mailer. The code is returned so development builds can
// echo it.
func (s *AuthService) SendEmailOTP(ctx context.Context, email string) (string, error) {
	available, err := s.CheckEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !available {
		return "", ErrEmailTaken
	}
	email = users.NormalizeEmail(email)

	code, err := shared.RandomDigits(OTPLength)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	otp := &models.OTP{Email: email, Code: code, ExpiresAt: s.now().Add(s.otpTTL)}
	if err := s.repos.OTPs().Put(ctx, otp); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return "", fmt.Errorf("send otp: %w", err)
	}
	return code, nil
}

// VerifyEmailOTP checks the code of in.Email and, when it matches, creates
// the account from the rest of in and opens a session. The code is consumed
// only on success; an expired code is dropped.
func (s *AuthService) VerifyEmailOTP(ctx context.Context, in SignupInput) (*Session, error) {
	in.Email = users.NormalizeEmail(in.Email)
	if err := check(validation.ValidateEmail(in.Email)); err != nil {
		return nil, err
	}

	otp, err := s.repos.OTPs().Get(ctx, in.Email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrOTPInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("load otp: %w", err)
	}

	if otp.Expired(s.now()) {
		_ = s.repos.OTPs().Delete(ctx, in.Email)
		return nil, ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(strings.TrimSpace(in.OTP))) != 1 {
		return nil, ErrOTPInvalid
	}

	sess, err := s.createEmailAccount(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repos.OTPs().Delete(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}
	return sess, nil
}

// Register creates an email account without a code challenge.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (*Session, error) {
	in.Email = users.NormalizeEmail(in.Email)
	if err := check(validation.ValidateEmail(in.Email)); err != nil {
		return nil, err
	}
	return s.createEmailAccount(ctx, in)
}

func (s *AuthService) createEmailAccount(ctx context.Context, in SignupInput) (*Session, error) {
	if err := check(validation.ValidatePassword(in.Password)); err != nil {
		return nil, err
	}
	if in.DisplayName != "" {
		if err := check(validation.ValidateDisplayName(in.DisplayName)); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name, _, _ = strings.Cut(in.Email, "@")
	}

	user, err := s.repos.Users().Create(ctx, &models.User{
		Email:        in.Email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		DisplayName:  name,
		Provider:     models.ProviderEmail,
		Role:         models.RoleUser,
		PasswordHash: hash,
	})
	if errors.Is(err, shared.ErrAlreadyExists) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login checks email and password. Unknown accounts, federated accounts and
// wrong passwords all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repos.Users().GetByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if len(user.PasswordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GoogleAuth signs in the account of a federated identity, creating it on
// first use. The identity is trusted as given.
func (s *AuthService) GoogleAuth(ctx context.Context, email, displayName, photoURL string) (*Session, error) {
	email = users.NormalizeEmail(email)
	if err := check(validation.ValidateEmail(email)); err != nil {
		return nil, err
	}

	user, err := s.repos.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.PhotoURL == "" && photoURL != "" {
			user.PhotoURL = photoURL
			if err := s.repos.Users().Update(ctx, user); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
		}
		return s.issue(user)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	user, err = s.repos.Users().Create(ctx, &models.User{
		Email:       email,
		DisplayName: name,
		PhotoURL:    photoURL,
		Provider:    models.ProviderGoogle,
		Role:        models.RoleUser,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to its account. Bad, expired and
// revoked tokens, as well as tokens of deleted accounts, yield
// ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	revoked, err := s.repos.RevokedTokens().IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.repos.Users().GetByID(ctx, claims.UserID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, claims, nil
}

// Logout revokes the token described by claims.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	exp := s.now().Add(s.tokenValidity)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return s.repos.RevokedTokens().Revoke(ctx, claims.ID, exp)
}

// SeedAdmin makes sure an administrator account exists for email. An
// existing account is promoted; its password is left untouched.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repos.Users().GetByEmail(ctx, email)
	if err == nil {
		if user.Role != models.RoleAdmin {
			user.Role = models.RoleAdmin
			if err := s.repos.Users().Update(ctx, user); err != nil {
				return nil, fmt.Errorf("promote admin: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err = s.repos.Users().Create(ctx, &models.User{
		Email:        email,
		DisplayName:  "Administrator",
		Provider:     models.ProviderEmail,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
