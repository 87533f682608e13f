package mailer

import "log/slog"

// Mailer delivers transactional mail. Delivery is an external
// collaborator; the services only depend on this interface.
type Mailer interface {
	SendOTP(email, code, purpose string) error
}

// LogMailer writes outbound mail to the log instead of sending it.
// Used in development and in tests.
type LogMailer struct{}

func (LogMailer) SendOTP(email, code, purpose string) error {
	slog.Info("otp email (log mailer)", "email", email, "purpose", purpose, "code", code)
	return nil
}
