package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"fitwise/internal/domain/attendance"
)

func attendanceDeps(store *mockProfileStore) AttendanceDeps {
	return AttendanceDeps{ProfileStore: store, Locks: &ProfileLocks{}, Now: fixedClock}
}

// TestExecuteMarkAttendance_SelfToday tests a member's own check-in and its idempotence.
func TestExecuteMarkAttendance_SelfToday(t *testing.T) {
	store := newMockProfileStore(seedProfiles()...)
	deps := attendanceDeps(store)
	input := MarkAttendanceInput{Actor: memberActor, ProfileID: "member-1"}

	p, err := ExecuteMarkAttendance(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !attendance.IsPresent(p, "2023-09-14") {
		t.Errorf("expected today to be marked, got %v", p.Attendance)
	}

	if _, err := ExecuteMarkAttendance(context.Background(), input, deps); err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if store.saveCount() != 1 {
		t.Errorf("expected a single save, got %d", store.saveCount())
	}
	if got := attendance.TotalCount(store.get("member-1")); got != 3 {
		t.Errorf("TotalCount = %d, want 3", got)
	}
}

// TestExecuteMarkAttendance_Authorization tests the member and admin rules.
func TestExecuteMarkAttendance_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		input   MarkAttendanceInput
		wantErr error
	}{
		{"member marks someone else", MarkAttendanceInput{Actor: memberActor, ProfileID: "member-2"}, ErrForbidden},
		{"member back-dates", MarkAttendanceInput{Actor: memberActor, ProfileID: "member-1", Date: "2023-09-10"}, ErrForbidden},
		{"anonymous", MarkAttendanceInput{ProfileID: "member-1"}, ErrForbidden},
		{"admin back-dates", MarkAttendanceInput{Actor: adminActor, ProfileID: "member-2", Date: "2023-09-10"}, nil},
		{"admin marks today", MarkAttendanceInput{Actor: adminActor, ProfileID: "member-2"}, nil},
		{"admin bad date", MarkAttendanceInput{Actor: adminActor, ProfileID: "member-2", Date: "2023-02-30"}, attendance.ErrInvalidDate},
		{"unknown profile", MarkAttendanceInput{Actor: adminActor, ProfileID: "ghost"}, ErrProfileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockProfileStore(seedProfiles()...)
			_, err := ExecuteMarkAttendance(context.Background(), tt.input, attendanceDeps(store))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if store.saveCount() != 0 {
				t.Error("failed mark must not save")
			}
		})
	}
}

// TestExecuteMarkAttendance_SaveFailure tests that a storage error surfaces and nothing changes.
func TestExecuteMarkAttendance_SaveFailure(t *testing.T) {
	store := newMockProfileStore(seedProfiles()...)
	store.saveErr = errors.New("disk full")

	_, err := ExecuteMarkAttendance(context.Background(), MarkAttendanceInput{Actor: memberActor, ProfileID: "member-1"}, attendanceDeps(store))
	if err == nil {
		t.Fatal("expected error")
	}
	if attendance.IsPresent(store.get("member-1"), "2023-09-14") {
		t.Error("store changed despite save failure")
	}
}

// TestExecuteUnmarkAttendance tests admin-only removal and the absent no-op.
func TestExecuteUnmarkAttendance(t *testing.T) {
	t.Run("member is forbidden", func(t *testing.T) {
		store := newMockProfileStore(seedProfiles()...)
		_, err := ExecuteUnmarkAttendance(context.Background(), MarkAttendanceInput{Actor: memberActor, ProfileID: "member-1", Date: "2023-09-01"}, attendanceDeps(store))
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("absent date is a no-op", func(t *testing.T) {
		store := newMockProfileStore(seedProfiles()...)
		p, err := ExecuteUnmarkAttendance(context.Background(), MarkAttendanceInput{Actor: adminActor, ProfileID: "member-1"}, attendanceDeps(store))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.saveCount() != 0 || attendance.TotalCount(p) != 2 {
			t.Errorf("expected no change, saves=%d attendance=%v", store.saveCount(), p.Attendance)
		}
	})

	t.Run("present date is removed", func(t *testing.T) {
		store := newMockProfileStore(seedProfiles()...)
		_, err := ExecuteUnmarkAttendance(context.Background(), MarkAttendanceInput{Actor: adminActor, ProfileID: "member-1", Date: "2023-09-01"}, attendanceDeps(store))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := store.get("member-1")
		if attendance.IsPresent(got, "2023-09-01") || !attendance.IsPresent(got, "2023-09-03") {
			t.Errorf("unexpected attendance: %v", got.Attendance)
		}
	})
}

// TestExecuteMarkAttendance_Concurrent tests that parallel marks on one profile are not lost.
func TestExecuteMarkAttendance_Concurrent(t *testing.T) {
	store := newMockProfileStore(seedProfiles()...)
	deps := attendanceDeps(store)

	var wg sync.WaitGroup
	for day := 1; day <= 20; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			date := fmt.Sprintf("2023-08-%02d", day)
			if _, err := ExecuteMarkAttendance(context.Background(), MarkAttendanceInput{Actor: adminActor, ProfileID: "member-2", Date: date}, deps); err != nil {
				t.Errorf("mark %s: %v", date, err)
			}
		}(day)
	}
	wg.Wait()

	if got := attendance.TotalCount(store.get("member-2")); got != 20 {
		t.Errorf("TotalCount = %d, want 20", got)
	}
	if deps.Locks.Len() != 0 {
		t.Errorf("expected no held locks, got %d", deps.Locks.Len())
	}
}
