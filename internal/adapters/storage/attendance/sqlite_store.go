package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitwise/internal/adapters/storage"
	domain "fitwise/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AttendanceStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// DailyCounts returns the number of members present per date.
// PRE: from and to are YYYY-MM-DD, from <= to
// POST: Only dates with at least one visit appear in the map
func (s *SQLiteStore) DailyCounts(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, COUNT(*) FROM attendance WHERE date >= ? AND date <= ? GROUP BY date`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var n int
		if err := rows.Scan(&date, &n); err != nil {
			return nil, err
		}
		counts[date] = n
	}
	return counts, rows.Err()
}

// CheckInHours buckets timed check-ins in the range by hour of day (0-23).
// Check-in times keep the offset they were recorded with, so hours are local to the gym.
// PRE: from and to are YYYY-MM-DD
// POST: Back-dated marks without a time are excluded
func (s *SQLiteStore) CheckInHours(ctx context.Context, from, to string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT CAST(substr(checked_in_at, 12, 2) AS INTEGER) AS hour, COUNT(*)
		FROM attendance
		WHERE date >= ? AND date <= ? AND checked_in_at IS NOT NULL
		GROUP BY hour`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[int]int)
	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, err
		}
		hours[hour] = n
	}
	return hours, rows.Err()
}

// DailyLog lists who checked in on date, earliest first; untimed marks sort last by name.
// PRE: date is YYYY-MM-DD
func (s *SQLiteStore) DailyLog(ctx context.Context, date string) ([]domain.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.phone, a.date, a.checked_in_at
		FROM attendance a JOIN profile p ON p.id = a.profile_id
		WHERE a.date = ?
		ORDER BY a.checked_in_at IS NULL, a.checked_in_at, p.name COLLATE NOCASE`,
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		var at sql.NullString
		if err := rows.Scan(&c.ProfileID, &c.Name, &c.Phone, &c.Date, &at); err != nil {
			return nil, err
		}
		if at.Valid {
			t, err := time.Parse(time.RFC3339, at.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse checked_in_at: %w", err)
			}
			c.CheckedInAt = t
		}
		log = append(log, c)
	}
	return log, rows.Err()
}
