package otp

import (
	"context"
	"log/slog"
)

// LogSender stands in for an SMS gateway by writing to the log.
// The code itself is logged only when Reveal is set, which is meant for development.
type LogSender struct {
	Reveal bool
}

// SendCode logs the issued code.
func (s LogSender) SendCode(_ context.Context, phone, code string) error {
	attrs := []any{"event", "code_sent", "phone_suffix", suffix(phone, 4)}
	if s.Reveal {
		attrs = append(attrs, "code", code)
	}
	slog.Info("otp_event", attrs...)
	return nil
}

func suffix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
