package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/client/signup"
	"github.com/dmitrijs2005/studiobook/internal/shared"
	"github.com/dmitrijs2005/studiobook/internal/validation"
)

// maxFieldAttempts bounds how often a single field is re-prompted.
const maxFieldAttempts = 3

var fieldPrompts = map[signup.Field]string{
	signup.FieldDisplayName:     "Full name",
	signup.FieldEmail:           "Email",
	signup.FieldPhoneNumber:     "Phone number (digits)",
	signup.FieldPassword:        "Password",
	signup.FieldConfirmPassword: "Confirm password",
}

func (a *App) newSignupController() *signup.Controller {
	return signup.NewController(a.session, a.api, a.ui, a.ui, signup.Options{
		CountryCode:   a.config.DefaultCountryCode,
		ResendTicks:   a.config.ResendTicks(),
		TickInterval:  time.Second,
		RedirectDelay: a.config.RedirectDelay,
		Logger:        a.log.With("component", "signup"),
	})
}

// Signup walks through the signup form, then the OTP step.
func (a *App) Signup(ctx context.Context) error {
	ctrl := a.newSignupController()
	defer ctrl.Close()

	if err := a.fillSignupForm(ctrl); err != nil {
		return err
	}

	if err := ctrl.Submit(ctx); err != nil {
		return err
	}

	return a.otpStep(ctx, ctrl)
}

func (a *App) fillSignupForm(ctrl *signup.Controller) error {
	for _, f := range signup.Fields {
		if f == signup.FieldPhoneNumber {
			cc, err := getSimpleText(a.reader, fmt.Sprintf("Country code [%s]", ctrl.Draft().CountryCode), a.out)
			if err != nil {
				return err
			}
			if cc != "" {
				ctrl.SetCountryCode(cc)
			}
		}

		for attempt := 0; attempt < maxFieldAttempts; attempt++ {
			v, err := a.readField(f)
			if err != nil {
				return err
			}
			ctrl.SetField(f, v)
			msg := ctrl.Blur(f)
			if msg == "" {
				if f == signup.FieldPassword {
					s, score := validation.PasswordStrength(v)
					a.println(fmt.Sprintf("Password strength: %s (%d/%d)", s, score, validation.MaxStrengthScore))
				}
				break
			}
			a.ui.Error(msg)
		}
	}
	return nil
}

func (a *App) readField(f signup.Field) (string, error) {
	prompt := fieldPrompts[f]
	if f == signup.FieldPassword || f == signup.FieldConfirmPassword {
		pw, err := getPassword(prompt, a.out)
		if err != nil {
			return "", err
		}
		defer shared.WipeByteArray(pw)
		return string(pw), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// otpStep reads codes until verification succeeds or the user cancels.
func (a *App) otpStep(ctx context.Context, ctrl *signup.Controller) error {
	for ctrl.State() == signup.StateOtpPending {
		in, err := getSimpleText(a.reader, "Enter the 6-digit code ('resend' for a new one, 'cancel' to stop)", a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(in) {
		case "cancel":
			a.ui.Info("Signup cancelled")
			return nil
		case "resend":
			err := ctrl.Resend(ctx)
			if errors.Is(err, signup.ErrResendNotReady) {
				a.ui.Info(fmt.Sprintf("Resend in %ds", ctrl.Countdown().Remaining()))
			}
			continue
		}

		ctrl.SetOTP(in)
		if err := ctrl.Verify(ctx, in); err == nil {
			return nil
		}
	}
	return nil
}
