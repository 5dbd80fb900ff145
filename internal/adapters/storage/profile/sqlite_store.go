package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitwise/internal/adapters/storage"
	"fitwise/internal/domain/attendance"
	domain "fitwise/internal/domain/profile"
)

const profileColumns = "id, name, phone, role, height, weight, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  storage.SQLDB
	now func() time.Time
}

// NewSQLiteStore creates a new ProfileStore.
// now stamps check-in times for dates added on the current day; nil means time.Now.
func NewSQLiteStore(db storage.SQLDB, now func() time.Time) *SQLiteStore {
	if now == nil {
		now = time.Now
	}
	return &SQLiteStore{db: db, now: now}
}

// GetByID retrieves a Profile by its ID.
// PRE: none
// POST: Returns the profile with its attendance set, or false when absent
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Profile, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profile WHERE id = ?", id)
	return s.load(ctx, row)
}

// FindByPhone retrieves a Profile by phone, ignoring formatting characters.
// PRE: none
// POST: Returns the profile or false when no profile holds the number
func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) (domain.Profile, bool, error) {
	key := domain.NormalizePhone(phone)
	if key == "" {
		return domain.Profile{}, false, nil
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profile WHERE phone_key = ?", key)
	return s.load(ctx, row)
}

func (s *SQLiteStore) load(ctx context.Context, row *sql.Row) (domain.Profile, bool, error) {
	p, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, err
	}
	dates, err := s.attendanceFor(ctx, []string{p.ID})
	if err != nil {
		return domain.Profile{}, false, err
	}
	p.Attendance = dates[p.ID]
	return p, true, nil
}

// Save persists a Profile and reconciles its attendance set in one transaction.
// PRE: entity has been validated
// POST: Profile row upserted; stored dates equal entity.Attendance
// INVARIANT: a phone number belongs to at most one profile
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	key := domain.NormalizePhone(entity.Phone)
	var owner string
	err = tx.QueryRowContext(ctx, "SELECT id FROM profile WHERE phone_key = ? AND id != ?", key, entity.ID).Scan(&owner)
	if err == nil {
		return fmt.Errorf("%w: %s", domain.ErrPhoneTaken, entity.Phone)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	createdAt := entity.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO profile (id, name, phone, phone_key, role, height, weight, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, phone=excluded.phone, phone_key=excluded.phone_key,
			role=excluded.role, height=excluded.height, weight=excluded.weight`,
		entity.ID, entity.Name, entity.Phone, key, entity.Role,
		entity.HeightCm, entity.WeightKg, createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if err := s.syncAttendance(ctx, tx, entity); err != nil {
		return err
	}
	return tx.Commit()
}

// syncAttendance removes dropped dates and inserts new ones.
// New dates for today carry the current time; back-dated ones have no check-in time.
func (s *SQLiteStore) syncAttendance(ctx context.Context, tx *sql.Tx, entity domain.Profile) error {
	want := make(map[string]bool, len(entity.Attendance))
	for _, d := range entity.Attendance {
		want[d] = true
	}

	rows, err := tx.QueryContext(ctx, "SELECT date FROM attendance WHERE profile_id = ?", entity.ID)
	if err != nil {
		return err
	}
	have := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			return err
		}
		have[d] = true
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for d := range have {
		if want[d] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE profile_id = ? AND date = ?", entity.ID, d); err != nil {
			return err
		}
	}

	now := s.now()
	today := attendance.Today(now)
	for _, d := range entity.Attendance {
		if have[d] {
			continue
		}
		var checkedInAt any
		if d == today {
			checkedInAt = now.Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO attendance (profile_id, date, checked_in_at) VALUES (?, ?, ?) ON CONFLICT(profile_id, date) DO NOTHING",
			entity.ID, d, checkedInAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// List retrieves profiles ordered by name, with their attendance sets.
// PRE: filter.Limit > 0
// POST: Returns at most filter.Limit matching profiles
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Profile, error) {
	where, args := searchClause(filter.Search)
	query := "SELECT " + profileColumns + " FROM profile" + where + " ORDER BY name COLLATE NOCASE, id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var results []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return results, nil
	}

	ids := make([]string, len(results))
	for i, p := range results {
		ids[i] = p.ID
	}
	dates, err := s.attendanceFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Attendance = dates[results[i].ID]
	}
	return results, nil
}

// Count returns the number of profiles matching the filter's search.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := searchClause(filter.Search)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profile"+where, args...).Scan(&n)
	return n, err
}

func searchClause(search string) (string, []any) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", nil
	}
	return " WHERE instr(lower(name), lower(?)) > 0 OR instr(phone, ?) > 0", []any{search, search}
}

// attendanceFor loads attendance dates for the given profiles in insertion order.
// rowid only grows, and syncAttendance inserts in the profile's own order.
func (s *SQLiteStore) attendanceFor(ctx context.Context, ids []string) (map[string][]string, error) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		"SELECT profile_id, date FROM attendance WHERE profile_id IN (%s) ORDER BY rowid",
		strings.Join(placeholders, ","),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string, len(ids))
	for _, id := range ids {
		out[id] = []string{}
	}
	for rows.Next() {
		var id, date string
		if err := rows.Scan(&id, &date); err != nil {
			return nil, err
		}
		out[id] = append(out[id], date)
	}
	return out, rows.Err()
}

func scanProfile(scan func(dest ...any) error) (domain.Profile, error) {
	var p domain.Profile
	var createdAt string
	if err := scan(&p.ID, &p.Name, &p.Phone, &p.Role, &p.HeightCm, &p.WeightKg, &createdAt); err != nil {
		return domain.Profile{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.CreatedAt = t
	return p, nil
}
