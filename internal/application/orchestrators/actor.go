package orchestrators

import (
	"context"
	"errors"
	"time"

	"fitwise/internal/domain/profile"
)

// Orchestrator errors shared by every operation.
var (
	ErrAuthFailed      = errors.New("invalid phone number or code")
	ErrProfileNotFound = errors.New("profile not found")
	ErrForbidden       = errors.New("not allowed for this account")
)

// Actor is the authenticated caller, passed explicitly into every operation.
type Actor struct {
	ProfileID string
	Role      string
}

// IsAdmin applies the single admin-gating predicate to the actor.
func (a Actor) IsAdmin() bool {
	return profile.CanAccessAdmin(profile.Profile{Role: a.Role})
}

// CanActOn reports whether the actor may change the given profile.
func (a Actor) CanActOn(profileID string) bool {
	return a.ProfileID != "" && (a.ProfileID == profileID || a.IsAdmin())
}

// ProfileReader loads a profile by ID.
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (profile.Profile, bool, error)
}

// ProfileWriter loads and persists profiles.
type ProfileWriter interface {
	ProfileReader
	Save(ctx context.Context, p profile.Profile) error
}

func loadProfile(ctx context.Context, store ProfileReader, id string) (profile.Profile, error) {
	p, ok, err := store.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, err
	}
	if !ok {
		return profile.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func nowOrDefault(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
