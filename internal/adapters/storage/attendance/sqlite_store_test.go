package attendance

import (
	"context"
	"database/sql"
	"testing"

	"fitwise/internal/adapters/storage"
)

func newTestStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stmts := []string{
		`INSERT INTO profile (id, name, phone, phone_key, role, created_at) VALUES
			('1', 'John Doe', '1234567890', '1234567890', 'admin', '2023-09-01T00:00:00Z'),
			('2', 'Jane Smith', '2345678901', '2345678901', 'member', '2023-09-01T00:00:00Z'),
			('3', 'Mike Johnson', '3456789012', '3456789012', 'member', '2023-09-01T00:00:00Z')`,
		`INSERT INTO attendance (profile_id, date, checked_in_at) VALUES
			('1', '2023-09-14', '2023-09-14T07:30:00+05:30'),
			('2', '2023-09-14', '2023-09-14T06:15:00+05:30'),
			('3', '2023-09-14', NULL),
			('1', '2023-09-13', '2023-09-13T18:05:00+05:30'),
			('2', '2023-09-01', NULL)`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewSQLiteStore(db), db
}

// TestDailyCounts tests per-date counts within a range.
func TestDailyCounts(t *testing.T) {
	s, _ := newTestStore(t)
	counts, err := s.DailyCounts(context.Background(), "2023-09-10", "2023-09-14")
	if err != nil {
		t.Fatalf("DailyCounts: %v", err)
	}
	if counts["2023-09-14"] != 3 || counts["2023-09-13"] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts["2023-09-01"]; ok {
		t.Error("date outside range counted")
	}
}

// TestCheckInHours tests hour bucketing of timed check-ins.
func TestCheckInHours(t *testing.T) {
	s, _ := newTestStore(t)
	hours, err := s.CheckInHours(context.Background(), "2023-09-01", "2023-09-14")
	if err != nil {
		t.Fatalf("CheckInHours: %v", err)
	}
	want := map[int]int{6: 1, 7: 1, 18: 1}
	if len(hours) != len(want) {
		t.Fatalf("hours = %v, want %v", hours, want)
	}
	for h, n := range want {
		if hours[h] != n {
			t.Errorf("hours[%d] = %d, want %d", h, hours[h], n)
		}
	}
}

// TestDailyLog tests ordering and untimed entries.
func TestDailyLog(t *testing.T) {
	s, _ := newTestStore(t)
	log, err := s.DailyLog(context.Background(), "2023-09-14")
	if err != nil {
		t.Fatalf("DailyLog: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("len = %d, want 3", len(log))
	}
	if log[0].Name != "Jane Smith" || log[1].Name != "John Doe" || log[2].Name != "Mike Johnson" {
		t.Errorf("order = %s, %s, %s", log[0].Name, log[1].Name, log[2].Name)
	}
	if log[0].CheckedInAt.Hour() != 6 || !log[2].CheckedInAt.IsZero() {
		t.Errorf("times = %v, %v", log[0].CheckedInAt, log[2].CheckedInAt)
	}
	if log[1].Phone != "1234567890" {
		t.Errorf("phone = %q", log[1].Phone)
	}

	empty, err := s.DailyLog(context.Background(), "2020-01-01")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty day: %v, %v", empty, err)
	}
}
