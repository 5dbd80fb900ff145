package otp

import "context"

// Verifier issues and checks one-time login codes.
// Verify answers only yes or no so callers cannot tell why a code failed.
type Verifier interface {
	Issue(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) bool
}

// CodeSender delivers an issued code to the phone's owner.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}
