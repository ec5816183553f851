package signup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/studiobook/internal/client/client"
	"github.com/dmitrijs2005/studiobook/internal/client/models"
	"github.com/dmitrijs2005/studiobook/internal/logging"
)

// State is the position of a Controller in the signup flow.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateOtpPending
	StateVerifying
	StateRedirecting
	StateDone
)

var stateNames = map[State]string{
	StateEditing:     "editing",
	StateSubmitting:  "submitting",
	StateOtpPending:  "otp_pending",
	StateVerifying:   "verifying",
	StateRedirecting: "redirecting",
	StateDone:        "done",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// OTPLength is the number of characters a verification code must have.
const OTPLength = 6

// DefaultRedirectDelay is how long the success message stays up before the
// login page opens.
const DefaultRedirectDelay = 1500 * time.Millisecond

const pathLogin = "/login"

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Navigator moves the front-end to another route.
type Navigator interface {
	Navigate(path string)
}

// Session is the part of the session store the signup flow needs.
type Session interface {
	SendEmailOTP(ctx context.Context, email string) (string, error)
	VerifyEmailOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.User, error)
	Logout(ctx context.Context)
}

// EmailChecker answers the pre-check before an OTP is sent.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) (*models.CheckEmailResponse, error)
}

// Options tunes a Controller. Zero values pick the defaults.
type Options struct {
	CountryCode   string
	ResendTicks   int
	TickInterval  time.Duration // 0 leaves ticking to the caller
	RedirectDelay time.Duration
	Logger        logging.Logger

	// Sleep waits before the redirect. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Controller owns the state of one signup form.
type Controller struct {
	session  Session
	checker  EmailChecker
	notifier Notifier
	nav      Navigator
	log      logging.Logger

	tickInterval  time.Duration
	redirectDelay time.Duration
	sleep         func(ctx context.Context, d time.Duration) error

	countdown *Countdown

	mu         sync.Mutex
	state      State
	busy       bool
	draft      Draft
	otp        string
	stopTicker func()
}

func NewController(session Session, checker EmailChecker, notifier Notifier, nav Navigator, opts Options) *Controller {
	if opts.ResendTicks <= 0 {
		opts.ResendTicks = DefaultResendTicks
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}

	return &Controller{
		session:       session,
		checker:       checker,
		notifier:      notifier,
		nav:           nav,
		log:           opts.Logger,
		tickInterval:  opts.TickInterval,
		redirectDelay: opts.RedirectDelay,
		sleep:         opts.Sleep,
		countdown:     NewCountdown(opts.ResendTicks),
		draft:         newDraft(opts.CountryCode),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a request is in flight. Submit, Verify and Resend
// controls should be disabled while it is true.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Draft returns a copy of the form input.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// OTP is the code as the user last entered it. A failed verify clears it.
func (c *Controller) OTP() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.otp
}

func (c *Controller) Countdown() *Countdown {
	return c.countdown
}

// SetField stores typed input. Typing clears the field's error.
func (c *Controller) SetField(f Field, v string) {
	c.mu.Lock()
	c.draft.set(f, v)
	c.mu.Unlock()
}

func (c *Controller) SetCountryCode(cc string) {
	c.mu.Lock()
	c.draft.CountryCode = cc
	c.mu.Unlock()
}

// SetOTP stores the code being typed into the OTP input.
func (c *Controller) SetOTP(code string) {
	c.mu.Lock()
	c.otp = code
	c.mu.Unlock()
}

// Blur marks f touched and records its error, if any. It returns the
// message, "" when the field is valid.
func (c *Controller) Blur(f Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.touched[f] = true
	r := c.draft.validate(f)
	if !r.Valid {
		c.draft.errors[f] = r.Message()
	}
	return c.draft.errors[f]
}

// begin claims the busy flag when the controller is in one of allowed.
func (c *Controller) begin(next State, allowed ...State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}
	ok := false
	for _, s := range allowed {
		if c.state == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidState, c.state)
	}
	c.busy = true
	c.state = next
	return nil
}

func (c *Controller) end(state State) {
	c.mu.Lock()
	c.busy = false
	c.state = state
	c.mu.Unlock()
}

// Submit validates every field, runs the email pre-check and sends the
// OTP. On success the controller is in OtpPending.
func (c *Controller) Submit(ctx context.Context) error {
	if err := c.begin(StateSubmitting, StateEditing); err != nil {
		return err
	}

	c.mu.Lock()
	first, valid := c.draft.validateAll()
	email := c.draft.values[FieldEmail]
	c.mu.Unlock()

	if !valid {
		c.end(StateEditing)
		c.notifier.Error(first)
		return fmt.Errorf("%w: %s", ErrValidation, first)
	}

	resp, err := c.checker.CheckEmail(ctx, email)
	switch {
	case errors.Is(err, client.ErrUnavailable):
		c.log.Warn(ctx, "email pre-check unreachable, sending otp anyway", "error", err)
		c.notifier.Warning(MsgPrecheckSkipped)
	case err != nil:
		c.log.Warn(ctx, "email pre-check rejected, sending otp anyway", "error", err)
		c.notifier.Warning(MsgPrecheckSkipped)
	case resp != nil && resp.Success && !resp.Available:
		c.mu.Lock()
		c.draft.errors[FieldEmail] = MsgEmailExists
		c.mu.Unlock()
		c.end(StateEditing)
		c.notifier.Error(MsgEmailExistsToast)
		return ErrEmailTaken
	}

	devOTP, err := c.session.SendEmailOTP(ctx, email)
	if err != nil {
		c.end(StateEditing)
		c.notifier.Error(messageOr(err, MsgSendOTPFailed))
		return err
	}

	c.mu.Lock()
	c.otp = ""
	c.mu.Unlock()
	c.restartCountdown()
	c.end(StateOtpPending)

	c.log.Info(ctx, "otp sent", "email", email)
	c.notifier.Success("OTP sent to " + email)
	if devOTP != "" {
		c.notifier.Info("Development OTP: " + devOTP)
	}
	return nil
}

// Resend asks for a new OTP once the countdown is over and restarts it.
func (c *Controller) Resend(ctx context.Context) error {
	if !c.countdown.Ready() {
		c.mu.Lock()
		st := c.state
		c.mu.Unlock()
		if st == StateOtpPending {
			return ErrResendNotReady
		}
	}
	if err := c.begin(StateOtpPending, StateOtpPending); err != nil {
		return err
	}
	defer c.end(StateOtpPending)

	c.mu.Lock()
	email := c.draft.values[FieldEmail]
	c.mu.Unlock()

	devOTP, err := c.session.SendEmailOTP(ctx, email)
	if err != nil {
		c.notifier.Error(MsgResendFailed)
		return err
	}

	c.restartCountdown()
	c.notifier.Success(MsgResent)
	if devOTP != "" {
		c.notifier.Info("Development OTP: " + devOTP)
	}
	return nil
}

// Verify sends code with the full profile. Success forces a logout and
// sends the user to the login page after the redirect delay. Failure keeps
// the OTP step open with the input cleared.
func (c *Controller) Verify(ctx context.Context, code string) error {
	if utf8.RuneCountInString(code) != OTPLength {
		c.mu.Lock()
		st := c.state
		c.mu.Unlock()
		if st == StateOtpPending {
			c.notifier.Error(MsgOTPLength)
			return ErrInvalidOTPLength
		}
	}
	if err := c.begin(StateVerifying, StateOtpPending); err != nil {
		return err
	}

	c.mu.Lock()
	c.otp = code
	d := c.draft
	c.mu.Unlock()

	req := models.VerifyOTPRequest{
		Email:       d.values[FieldEmail],
		OTP:         code,
		DisplayName: d.values[FieldDisplayName],
		PhoneNumber: d.FullPhoneNumber(),
		Password:    d.values[FieldPassword],
	}

	if _, err := c.session.VerifyEmailOTP(ctx, req); err != nil {
		c.mu.Lock()
		c.otp = ""
		c.mu.Unlock()
		c.end(StateOtpPending)

		c.log.Info(ctx, "otp verification failed", "email", req.Email, "error", err)
		c.notifier.Error(ClassifyOTPError(err))
		return err
	}

	c.stopCountdown()
	c.mu.Lock()
	c.state = StateRedirecting
	c.mu.Unlock()

	c.notifier.Success(MsgVerified)
	c.notifier.Info(MsgRedirecting)

	c.session.Logout(ctx)
	err := c.sleep(ctx, c.redirectDelay)
	if c.nav != nil {
		c.nav.Navigate(pathLogin)
	}
	c.end(StateDone)
	if err != nil {
		return fmt.Errorf("redirect wait: %w", err)
	}
	return nil
}

func (c *Controller) restartCountdown() {
	c.stopCountdown()
	c.countdown.Reset()
	if c.tickInterval <= 0 {
		return
	}
	stop := c.countdown.Start(context.Background(), c.tickInterval)
	c.mu.Lock()
	c.stopTicker = stop
	c.mu.Unlock()
}

func (c *Controller) stopCountdown() {
	c.mu.Lock()
	stop := c.stopTicker
	c.stopTicker = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Close stops the countdown goroutine, if any.
func (c *Controller) Close() {
	c.stopCountdown()
}
