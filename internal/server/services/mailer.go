package services

import (
	"context"

	"github.com/dmitrijs2005/studiobook/internal/logging"
)

// Mailer delivers a one-time code to an address.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

// LogMailer writes the code to the log instead of sending mail.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{log: l.With("module", "mailer")}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code string) error {
	m.log.Info(ctx, "otp issued", "email", email, "code", code)
	return nil
}
