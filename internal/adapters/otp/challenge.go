package otp

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "fitwise/internal/domain/otp"
	"fitwise/internal/domain/profile"
)

// ChallengeVerifier issues random codes and keeps only their bcrypt hashes.
// A code verifies at most once, within its TTL and attempt budget.
type ChallengeVerifier struct {
	sender CodeSender
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu         sync.Mutex
	challenges map[string]domain.Challenge
}

// NewChallengeVerifier creates a verifier delivering codes through sender.
// PRE: sender is non-nil
// POST: ttl <= 0 selects domain.DefaultTTL
func NewChallengeVerifier(sender CodeSender, ttl time.Duration) *ChallengeVerifier {
	if ttl <= 0 {
		ttl = domain.DefaultTTL
	}
	return &ChallengeVerifier{
		sender:     sender,
		ttl:        ttl,
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
		challenges: make(map[string]domain.Challenge),
	}
}

// Issue creates a fresh challenge for phone, replacing any earlier one, and sends the code.
// PRE: phone passes domain.ValidatePhone
// POST: exactly one live challenge exists for the phone
func (v *ChallengeVerifier) Issue(ctx context.Context, phone string) error {
	if err := domain.ValidatePhone(phone); err != nil {
		return err
	}
	code, err := randomCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), v.cost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}

	key := profile.NormalizePhone(phone)
	v.mu.Lock()
	v.sweep()
	v.challenges[key] = domain.Challenge{
		Phone:     key,
		CodeHash:  hash,
		ExpiresAt: v.now().Add(v.ttl),
	}
	v.mu.Unlock()

	if err := v.sender.SendCode(ctx, phone, code); err != nil {
		v.mu.Lock()
		delete(v.challenges, key)
		v.mu.Unlock()
		return fmt.Errorf("send code: %w", err)
	}
	slog.Info("otp_event", "event", "challenge_issued", "ttl", v.ttl.String())
	return nil
}

// Verify checks code against the live challenge for phone.
// POST: a matching code consumes the challenge; every check spends one attempt
// INVARIANT: bcrypt runs outside mu; the attempt is reserved first so
// concurrent guesses share one budget
func (v *ChallengeVerifier) Verify(_ context.Context, phone, code string) bool {
	if domain.ValidateCode(code) != nil {
		return false
	}
	key := profile.NormalizePhone(phone)

	v.mu.Lock()
	c, ok := v.challenges[key]
	if !ok {
		v.mu.Unlock()
		return false
	}
	if !c.Usable(v.now()) {
		delete(v.challenges, key)
		v.mu.Unlock()
		return false
	}
	c.Attempts++
	v.challenges[key] = c
	v.mu.Unlock()

	if bcrypt.CompareHashAndPassword(c.CodeHash, []byte(code)) != nil {
		slog.Warn("otp_event", "event", "code_mismatch", "attempts", c.Attempts)
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// consumed or reissued while the hash was being checked
	current, ok := v.challenges[key]
	if !ok || !bytes.Equal(current.CodeHash, c.CodeHash) {
		return false
	}
	delete(v.challenges, key)
	return true
}

// sweep drops dead challenges. Caller holds mu.
func (v *ChallengeVerifier) sweep() {
	now := v.now()
	for k, c := range v.challenges {
		if !c.Usable(now) {
			delete(v.challenges, k)
		}
	}
}

func randomCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return domain.FormatCode(int(n.Int64())), nil
}
