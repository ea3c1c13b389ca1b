package services

import "log/slog"

// LogCodeSender writes the code to the application log instead of
// delivering it. Stand-in until an email/SMS transport is wired.
type LogCodeSender struct{}

func (LogCodeSender) SendCode(email, code string) error {
	slog.Info("otp code issued", "email", email, "code", code)
	return nil
}
