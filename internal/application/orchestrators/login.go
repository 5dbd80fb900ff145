package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitwise/internal/domain/otp"
	"fitwise/internal/domain/profile"
)

// CodeVerifier issues and checks one-time codes.
type CodeVerifier interface {
	Issue(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) bool
}

// ProfileStoreForLogin defines the store interface needed by Login.
type ProfileStoreForLogin interface {
	FindByPhone(ctx context.Context, phone string) (profile.Profile, bool, error)
	Save(ctx context.Context, p profile.Profile) error
}

// RequestOTPInput carries input for the code request orchestrator.
type RequestOTPInput struct {
	Phone string
}

// RequestOTPDeps holds dependencies for RequestOTP.
type RequestOTPDeps struct {
	Verifier CodeVerifier
}

// ExecuteRequestOTP issues a login code for a phone number.
// PRE: none
// POST: A code is issued, or otp.ErrInvalidPhone for a malformed number
func ExecuteRequestOTP(ctx context.Context, input RequestOTPInput, deps RequestOTPDeps) error {
	phone := strings.TrimSpace(input.Phone)
	if err := otp.ValidatePhone(phone); err != nil {
		return err
	}
	if err := deps.Verifier.Issue(ctx, phone); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "otp_requested")
	return nil
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Phone string
	Code  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	ProfileStore ProfileStoreForLogin
	Verifier     CodeVerifier
	AdminPhones  []string
	Locks        *ProfileLocks
	Now          func() time.Time
}

// ExecuteLogin verifies the code and returns the caller's profile, creating it on first login.
// PRE: none
// POST: Returns the profile, or ErrAuthFailed without saying which check failed
// INVARIANT: role is decided once, at creation, from the admin allow-list
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (profile.Profile, error) {
	phone := strings.TrimSpace(input.Phone)
	if otp.ValidatePhone(phone) != nil || otp.ValidateCode(input.Code) != nil {
		slog.Info("auth_event", "event", "login_failed", "reason", "malformed")
		return profile.Profile{}, ErrAuthFailed
	}
	if !deps.Verifier.Verify(ctx, phone, input.Code) {
		slog.Info("auth_event", "event", "login_failed", "reason", "code_rejected")
		return profile.Profile{}, ErrAuthFailed
	}

	unlock := lockProfile(deps.Locks, "phone:"+profile.NormalizePhone(phone))
	defer unlock()

	existing, ok, err := deps.ProfileStore.FindByPhone(ctx, phone)
	if err != nil {
		return profile.Profile{}, err
	}
	if ok {
		slog.Info("auth_event", "event", "login_success", "profile_id", existing.ID, "role", existing.Role)
		return existing, nil
	}

	p := profile.Profile{
		ID:         uuid.New().String(),
		Name:       profile.DefaultName,
		Phone:      phone,
		Role:       profile.RoleForPhone(phone, deps.AdminPhones),
		Attendance: []string{},
		CreatedAt:  nowOrDefault(deps.Now),
	}
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}
	if err := deps.ProfileStore.Save(ctx, p); err != nil {
		if errors.Is(err, profile.ErrPhoneTaken) {
			// another process created it between lookup and save
			if again, ok, findErr := deps.ProfileStore.FindByPhone(ctx, phone); findErr == nil && ok {
				return again, nil
			}
		}
		return profile.Profile{}, err
	}

	slog.Info("auth_event", "event", "profile_created", "profile_id", p.ID, "role", p.Role)
	return p, nil
}
