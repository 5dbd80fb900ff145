package otp

import (
	"context"
	"log/slog"

	domain "fitwise/internal/domain/otp"
)

// DemoVerifier accepts any well-formed code for a well-formed phone.
// It must never be wired in production.
type DemoVerifier struct{}

// Issue only logs; there is nothing to deliver in demo mode.
func (DemoVerifier) Issue(_ context.Context, phone string) error {
	if err := domain.ValidatePhone(phone); err != nil {
		return err
	}
	slog.Info("otp_event", "event", "demo_issued")
	return nil
}

// Verify reports whether phone and code are well formed.
func (DemoVerifier) Verify(_ context.Context, phone, code string) bool {
	return domain.ValidatePhone(phone) == nil && domain.ValidateCode(code) == nil
}
