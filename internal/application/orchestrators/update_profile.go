package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"fitwise/internal/domain/profile"
)

// ProfileStoreForUpdate defines the store interface needed by UpdateProfile.
type ProfileStoreForUpdate interface {
	ProfileWriter
	FindByPhone(ctx context.Context, phone string) (profile.Profile, bool, error)
}

// UpdateProfileInput carries input for the update profile orchestrator.
type UpdateProfileInput struct {
	Actor     Actor
	ProfileID string
	Update    profile.Update
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	ProfileStore ProfileStoreForUpdate
	Locks        *ProfileLocks
}

// ExecuteUpdateProfile applies field changes to a profile.
// PRE: Actor is authenticated
// POST: Profile is saved with the changes, or left untouched on any error
// INVARIANT: only admins change phone numbers; role and attendance are never touched here
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (profile.Profile, error) {
	if !input.Actor.CanActOn(input.ProfileID) {
		return profile.Profile{}, ErrForbidden
	}
	if input.Update.Phone != nil && !input.Actor.IsAdmin() {
		return profile.Profile{}, ErrForbidden
	}

	unlock := lockProfile(deps.Locks, input.ProfileID)
	defer unlock()

	p, err := loadProfile(ctx, deps.ProfileStore, input.ProfileID)
	if err != nil {
		return profile.Profile{}, err
	}
	if input.Update.IsEmpty() {
		return p, nil
	}

	next, err := input.Update.Apply(p)
	if err != nil {
		return p, err
	}
	if err := next.Validate(); err != nil {
		return p, err
	}
	if profile.NormalizePhone(next.Phone) != profile.NormalizePhone(p.Phone) {
		owner, ok, err := deps.ProfileStore.FindByPhone(ctx, next.Phone)
		if err != nil {
			return p, err
		}
		if ok && owner.ID != p.ID {
			return p, profile.ErrPhoneTaken
		}
	}
	if err := deps.ProfileStore.Save(ctx, next); err != nil {
		if errors.Is(err, profile.ErrPhoneTaken) {
			return p, profile.ErrPhoneTaken
		}
		return p, err
	}

	slog.Info("profile_event", "event", "profile_updated", "profile_id", p.ID, "by", input.Actor.ProfileID)
	return next, nil
}
