// Package signup drives the email signup form: field validation, the email
// pre-check, OTP dispatch with a resend countdown, and verification.
//
// A Controller moves through Editing, Submitting, OtpPending, Verifying,
// Redirecting and Done. Anything a user should see goes through the
// Notifier; routing goes through the Navigator.
package signup
