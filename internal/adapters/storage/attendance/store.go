package attendance

import (
	"context"

	domain "fitwise/internal/domain/attendance"
)

// Store answers admin queries over the attendance table.
// Writes go through the profile store, which owns the attendance set.
type Store interface {
	DailyCounts(ctx context.Context, from, to string) (map[string]int, error)
	CheckInHours(ctx context.Context, from, to string) (map[int]int, error)
	DailyLog(ctx context.Context, date string) ([]domain.CheckIn, error)
}
