package signup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/client/client"
	"github.com/dmitrijs2005/studiobook/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeSession struct {
	sendCalls   int
	sendDevOTP  string
	sendErr     error
	verifyCalls int
	verifyErr   error
	lastVerify  models.VerifyOTPRequest
	logoutCalls int
}

func (f *fakeSession) SendEmailOTP(context.Context, string) (string, error) {
	f.sendCalls++
	return f.sendDevOTP, f.sendErr
}

func (f *fakeSession) VerifyEmailOTP(_ context.Context, req models.VerifyOTPRequest) (*models.User, error) {
	f.verifyCalls++
	f.lastVerify = req
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &models.User{ID: "u1", Email: req.Email}, nil
}

func (f *fakeSession) Logout(context.Context) { f.logoutCalls++ }

type fakeChecker struct {
	resp  *models.CheckEmailResponse
	err   error
	calls int
}

func (f *fakeChecker) CheckEmail(context.Context, string) (*models.CheckEmailResponse, error) {
	f.calls++
	return f.resp, f.err
}

type note struct{ level, msg string }

type recordingNotifier struct{ notes []note }

func (r *recordingNotifier) Success(m string) { r.notes = append(r.notes, note{"success", m}) }
func (r *recordingNotifier) Info(m string)    { r.notes = append(r.notes, note{"info", m}) }
func (r *recordingNotifier) Warning(m string) { r.notes = append(r.notes, note{"warning", m}) }
func (r *recordingNotifier) Error(m string)   { r.notes = append(r.notes, note{"error", m}) }

func (r *recordingNotifier) last() note {
	if len(r.notes) == 0 {
		return note{}
	}
	return r.notes[len(r.notes)-1]
}

func (r *recordingNotifier) has(level, msg string) bool {
	for _, n := range r.notes {
		if n.level == level && n.msg == msg {
			return true
		}
	}
	return false
}

type recordingNav struct{ paths []string }

func (r *recordingNav) Navigate(p string) { r.paths = append(r.paths, p) }

type harness struct {
	c       *Controller
	session *fakeSession
	checker *fakeChecker
	notes   *recordingNotifier
	nav     *recordingNav
	slept   []time.Duration
}

func newHarness() *harness {
	h := &harness{
		session: &fakeSession{},
		checker: &fakeChecker{resp: &models.CheckEmailResponse{Success: true, Available: true}},
		notes:   &recordingNotifier{},
		nav:     &recordingNav{},
	}
	h.c = NewController(h.session, h.checker, h.notes, h.nav, Options{
		Sleep: func(_ context.Context, d time.Duration) error {
			h.slept = append(h.slept, d)
			return nil
		},
	})
	return h
}

func (h *harness) fillValid() {
	h.c.SetField(FieldDisplayName, "Asha Rao")
	h.c.SetField(FieldEmail, "asha@example.com")
	h.c.SetField(FieldPhoneNumber, "9876543210")
	h.c.SetField(FieldPassword, "secret12")
	h.c.SetField(FieldConfirmPassword, "secret12")
}

func (h *harness) toOtpPending(t *testing.T) {
	t.Helper()
	h.fillValid()
	require.NoError(t, h.c.Submit(context.Background()))
	require.Equal(t, StateOtpPending, h.c.State())
}

// ---- tests ----

func TestSubmit_ValidationReportsFirstFailingField(t *testing.T) {
	h := newHarness()
	h.c.SetField(FieldDisplayName, "Asha")
	h.c.SetField(FieldEmail, "bad-email")
	h.c.SetField(FieldPassword, "abcdef")

	err := h.c.Submit(context.Background())

	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateEditing, h.c.State())
	assert.Equal(t, note{"error", "Please enter a valid email address"}, h.notes.last())

	d := h.c.Draft()
	for _, f := range Fields {
		assert.True(t, d.Touched(f), f.String())
	}
	assert.Empty(t, d.Error(FieldDisplayName))
	assert.Equal(t, "Phone number is required", d.Error(FieldPhoneNumber))
	assert.Contains(t, d.Error(FieldPassword), "letters and numbers")
	assert.Equal(t, "Please confirm your password", d.Error(FieldConfirmPassword))
	assert.Equal(t, 0, h.checker.calls)
	assert.Equal(t, 0, h.session.sendCalls)
}

func TestBlurAndTyping(t *testing.T) {
	h := newHarness()
	h.c.SetField(FieldEmail, "bad-email")

	msg := h.c.Blur(FieldEmail)
	assert.Equal(t, "Please enter a valid email address", msg)
	d := h.c.Draft()
	assert.True(t, d.Touched(FieldEmail))
	assert.Equal(t, msg, d.Error(FieldEmail))

	h.c.SetField(FieldEmail, "bad-email2")
	d = h.c.Draft()
	assert.Empty(t, d.Error(FieldEmail))
	assert.True(t, d.Touched(FieldEmail))
}

func TestSubmit_EmailTakenDoesNotSendOTP(t *testing.T) {
	h := newHarness()
	h.checker.resp = &models.CheckEmailResponse{Success: true, Available: false}
	h.fillValid()

	err := h.c.Submit(context.Background())

	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, StateEditing, h.c.State())
	assert.Equal(t, MsgEmailExists, h.c.Draft().Error(FieldEmail))
	assert.Equal(t, 0, h.session.sendCalls)
	assert.True(t, h.notes.has("error", MsgEmailExistsToast))
	assert.False(t, h.c.Busy())
}

func TestSubmit_AvailableSendsOTP(t *testing.T) {
	h := newHarness()
	h.session.sendDevOTP = "123456"
	h.fillValid()

	require.NoError(t, h.c.Submit(context.Background()))

	assert.Equal(t, StateOtpPending, h.c.State())
	assert.Equal(t, 1, h.session.sendCalls)
	assert.Equal(t, DefaultResendTicks, h.c.Countdown().Remaining())
	assert.True(t, h.notes.has("success", "OTP sent to asha@example.com"))
	assert.True(t, h.notes.has("info", "Development OTP: 123456"))
}

func TestSubmit_UnreachablePrecheckProceeds(t *testing.T) {
	h := newHarness()
	h.checker.resp = nil
	h.checker.err = errors.Join(client.ErrUnavailable, errors.New("dial tcp: refused"))
	h.fillValid()

	require.NoError(t, h.c.Submit(context.Background()))

	assert.Equal(t, StateOtpPending, h.c.State())
	assert.Equal(t, 1, h.session.sendCalls)
	assert.True(t, h.notes.has("warning", MsgPrecheckSkipped))
}

func TestSubmit_PrecheckRejectionProceeds(t *testing.T) {
	tests := []struct {
		name string
		resp *models.CheckEmailResponse
		err  error
	}{
		{"server error", nil, &client.APIError{Status: 500, Message: "Server error"}},
		{"bad request", nil, &client.APIError{Status: 400, Message: "Email is required"}},
		{"unsuccessful body", &models.CheckEmailResponse{Success: false}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			h.checker.resp = tc.resp
			h.checker.err = tc.err
			h.fillValid()

			require.NoError(t, h.c.Submit(context.Background()))

			assert.Equal(t, StateOtpPending, h.c.State())
			assert.Equal(t, 1, h.session.sendCalls)
			assert.Empty(t, h.c.Draft().Error(FieldEmail))
		})
	}
}

func TestSubmit_SendFailureStaysEditing(t *testing.T) {
	h := newHarness()
	h.session.sendErr = errors.New("Too many requests")
	h.fillValid()

	err := h.c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateEditing, h.c.State())
	assert.Equal(t, note{"error", "Too many requests"}, h.notes.last())
}

func TestVerify_RequiresSixCharacters(t *testing.T) {
	h := newHarness()
	h.toOtpPending(t)

	err := h.c.Verify(context.Background(), "12345")

	require.ErrorIs(t, err, ErrInvalidOTPLength)
	assert.Equal(t, StateOtpPending, h.c.State())
	assert.Equal(t, 0, h.session.verifyCalls)
	assert.Equal(t, note{"error", MsgOTPLength}, h.notes.last())
}

func TestVerify_OutsideOtpPending(t *testing.T) {
	h := newHarness()
	err := h.c.Verify(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVerify_ExpiredClearsInputAndStaysPending(t *testing.T) {
	h := newHarness()
	h.toOtpPending(t)
	h.session.verifyErr = &client.APIError{Status: 400, Message: "OTP has expired"}

	h.c.SetOTP("654321")
	err := h.c.Verify(context.Background(), "654321")

	require.Error(t, err)
	assert.Equal(t, StateOtpPending, h.c.State())
	assert.Empty(t, h.c.OTP())
	assert.False(t, h.c.Busy())
	assert.Equal(t, note{"error", MsgOTPExpired}, h.notes.last())
	assert.Equal(t, 0, h.session.logoutCalls)
	assert.Empty(t, h.nav.paths)
}

func TestVerify_SuccessLogsOutAndRedirects(t *testing.T) {
	h := newHarness()
	h.c.SetCountryCode("+44")
	h.toOtpPending(t)

	require.NoError(t, h.c.Verify(context.Background(), "123456"))

	assert.Equal(t, models.VerifyOTPRequest{
		Email:       "asha@example.com",
		OTP:         "123456",
		DisplayName: "Asha Rao",
		PhoneNumber: "+44 9876543210",
		Password:    "secret12",
	}, h.session.lastVerify)
	assert.Equal(t, StateDone, h.c.State())
	assert.Equal(t, 1, h.session.logoutCalls)
	assert.Equal(t, []time.Duration{DefaultRedirectDelay}, h.slept)
	assert.Equal(t, []string{"/login"}, h.nav.paths)
	assert.True(t, h.notes.has("success", MsgVerified))
	assert.True(t, h.notes.has("info", MsgRedirecting))
	assert.False(t, h.c.Busy())
}

func TestDefaultCountryCode(t *testing.T) {
	h := newHarness()
	h.toOtpPending(t)
	require.NoError(t, h.c.Verify(context.Background(), "123456"))
	assert.Equal(t, "+91 9876543210", h.session.lastVerify.PhoneNumber)
}

func TestResend_GatedByCountdown(t *testing.T) {
	h := newHarness()
	h.toOtpPending(t)

	assert.ErrorIs(t, h.c.Resend(context.Background()), ErrResendNotReady)
	assert.Equal(t, 1, h.session.sendCalls)

	for i := 0; i < DefaultResendTicks; i++ {
		h.c.Countdown().Tick()
	}
	require.True(t, h.c.Countdown().Ready())

	require.NoError(t, h.c.Resend(context.Background()))
	assert.Equal(t, 2, h.session.sendCalls)
	assert.Equal(t, DefaultResendTicks, h.c.Countdown().Remaining())
	assert.True(t, h.notes.has("success", MsgResent))
	assert.Equal(t, StateOtpPending, h.c.State())
}

func TestResend_FailureKeepsCountdownAtZero(t *testing.T) {
	h := newHarness()
	h.toOtpPending(t)
	for i := 0; i < DefaultResendTicks; i++ {
		h.c.Countdown().Tick()
	}
	h.session.sendErr = errors.New("smtp down")

	require.Error(t, h.c.Resend(context.Background()))
	assert.True(t, h.c.Countdown().Ready())
	assert.Equal(t, note{"error", MsgResendFailed}, h.notes.last())
}

type blockingSession struct {
	fakeSession
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSession) SendEmailOTP(ctx context.Context, email string) (string, error) {
	close(b.entered)
	<-b.release
	return b.fakeSession.SendEmailOTP(ctx, email)
}

func TestSubmit_RejectsReentry(t *testing.T) {
	bs := &blockingSession{entered: make(chan struct{}), release: make(chan struct{})}
	h := newHarness()
	h.c = NewController(bs, h.checker, h.notes, h.nav, Options{})
	h.fillValid()

	done := make(chan error, 1)
	go func() { done <- h.c.Submit(context.Background()) }()

	<-bs.entered
	assert.True(t, h.c.Busy())
	assert.ErrorIs(t, h.c.Submit(context.Background()), ErrBusy)
	close(bs.release)

	require.NoError(t, <-done)
	assert.Equal(t, StateOtpPending, h.c.State())
}

func TestController_TickerDrivesCountdown(t *testing.T) {
	h := newHarness()
	h.c = NewController(h.session, h.checker, h.notes, h.nav, Options{
		ResendTicks:  3,
		TickInterval: time.Millisecond,
	})
	defer h.c.Close()
	h.fillValid()

	require.NoError(t, h.c.Submit(context.Background()))
	require.Eventually(t, h.c.Countdown().Ready, time.Second, time.Millisecond)
	require.NoError(t, h.c.Resend(context.Background()))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "otp_pending", StateOtpPending.String())
	assert.Equal(t, "State(99)", State(99).String())
	assert.Equal(t, "confirmPassword", FieldConfirmPassword.String())
}
