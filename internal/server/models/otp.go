package models

import "time"

// OTP is the outstanding email challenge of one address. A newer challenge
// replaces the older one.
type OTP struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer accepted at now.
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
