package otp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Constants for one-time codes.
const (
	CodeLength     = 6
	MinPhoneLength = 10
	MaxAttempts    = 5
	DefaultTTL     = 5 * time.Minute
)

// Domain errors
var (
	ErrInvalidPhone = errors.New("phone number must be at least 10 characters")
	ErrInvalidCode  = errors.New("code must be exactly 6 digits")
)

// ValidatePhone checks the login phone number.
// PRE: none
// POST: Returns nil if the trimmed phone has at least MinPhoneLength characters
func ValidatePhone(phone string) error {
	if len([]rune(strings.TrimSpace(phone))) < MinPhoneLength {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateCode checks that code is exactly CodeLength ASCII digits.
func ValidateCode(code string) error {
	if len(code) != CodeLength {
		return ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return ErrInvalidCode
		}
	}
	return nil
}

// Challenge is an issued code awaiting verification.
// Only the hash of the code is held.
type Challenge struct {
	Phone     string
	CodeHash  []byte
	ExpiresAt time.Time
	Attempts  int
}

// Expired reports whether the challenge can no longer be used at now.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Exhausted reports whether the attempt budget is spent.
func (c Challenge) Exhausted() bool {
	return c.Attempts >= MaxAttempts
}

// Usable reports whether the challenge may still be verified.
// INVARIANT: an expired or exhausted challenge never verifies
func (c Challenge) Usable(now time.Time) bool {
	return !c.Expired(now) && !c.Exhausted()
}

// FormatCode renders n as a zero-padded code.
func FormatCode(n int) string {
	return fmt.Sprintf("%0*d", CodeLength, n)
}
