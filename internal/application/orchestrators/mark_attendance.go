package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"fitwise/internal/domain/attendance"
	"fitwise/internal/domain/profile"
)

// MarkAttendanceInput carries input for the mark and unmark orchestrators.
// An empty Date means today.
type MarkAttendanceInput struct {
	Actor     Actor
	ProfileID string
	Date      string
}

// AttendanceDeps holds dependencies for MarkAttendance and UnmarkAttendance.
type AttendanceDeps struct {
	ProfileStore ProfileWriter
	Locks        *ProfileLocks
	Now          func() time.Time // injectable for testing
}

// ExecuteMarkAttendance adds a date to a profile's attendance set.
// PRE: Actor is authenticated
// POST: Date is present exactly once and persisted; returns the updated profile
// INVARIANT: members may only mark themselves, and only for today
func ExecuteMarkAttendance(ctx context.Context, input MarkAttendanceInput, deps AttendanceDeps) (profile.Profile, error) {
	today := attendance.Today(nowOrDefault(deps.Now))
	date := input.Date
	if date == "" {
		date = today
	}
	if !input.Actor.CanActOn(input.ProfileID) {
		return profile.Profile{}, ErrForbidden
	}
	if !input.Actor.IsAdmin() && date != today {
		return profile.Profile{}, ErrForbidden
	}

	return mutateAttendance(ctx, input.ProfileID, deps, func(p *profile.Profile) (bool, error) {
		return attendance.MarkPresent(p, date)
	}, "marked_present", date, input.Actor)
}

// ExecuteUnmarkAttendance removes a date from a profile's attendance set.
// PRE: Actor is an admin
// POST: Date is absent; removing an absent date is a no-op
func ExecuteUnmarkAttendance(ctx context.Context, input MarkAttendanceInput, deps AttendanceDeps) (profile.Profile, error) {
	if !input.Actor.IsAdmin() {
		return profile.Profile{}, ErrForbidden
	}
	date := input.Date
	if date == "" {
		date = attendance.Today(nowOrDefault(deps.Now))
	}

	return mutateAttendance(ctx, input.ProfileID, deps, func(p *profile.Profile) (bool, error) {
		return attendance.MarkAbsent(p, date)
	}, "marked_absent", date, input.Actor)
}

// mutateAttendance runs one locked read-modify-write cycle and saves only on change.
func mutateAttendance(ctx context.Context, profileID string, deps AttendanceDeps, apply func(*profile.Profile) (bool, error), event, date string, actor Actor) (profile.Profile, error) {
	unlock := lockProfile(deps.Locks, profileID)
	defer unlock()

	p, err := loadProfile(ctx, deps.ProfileStore, profileID)
	if err != nil {
		return profile.Profile{}, err
	}
	next := p
	next.Attendance = append([]string(nil), p.Attendance...)

	changed, err := apply(&next)
	if err != nil {
		return p, err
	}
	if !changed {
		return p, nil
	}
	if err := deps.ProfileStore.Save(ctx, next); err != nil {
		return p, err
	}

	slog.Info("attendance_event", "event", event, "profile_id", profileID, "date", date, "by", actor.ProfileID)
	return next, nil
}
