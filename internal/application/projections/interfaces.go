package projections

import (
	"context"

	"fitwise/internal/adapters/storage/profile"
	domainAttendance "fitwise/internal/domain/attendance"
	domainProfile "fitwise/internal/domain/profile"
)

// ProfileReader interface for single-profile queries.
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (domainProfile.Profile, bool, error)
}

// ProfileLister interface for admin list queries.
type ProfileLister interface {
	List(ctx context.Context, filter profile.ListFilter) ([]domainProfile.Profile, error)
	Count(ctx context.Context, filter profile.ListFilter) (int, error)
}

// AttendanceReader interface for attendance report queries.
type AttendanceReader interface {
	DailyCounts(ctx context.Context, from, to string) (map[string]int, error)
	CheckInHours(ctx context.Context, from, to string) (map[int]int, error)
	DailyLog(ctx context.Context, date string) ([]domainAttendance.CheckIn, error)
}
