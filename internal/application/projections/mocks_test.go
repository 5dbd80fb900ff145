package projections

import (
	"context"
	"strings"
	"time"

	"fitwise/internal/adapters/storage/profile"
	domainAttendance "fitwise/internal/domain/attendance"
	domainProfile "fitwise/internal/domain/profile"
)

// mockProfileStore serves profiles from a slice in name order.
type mockProfileStore struct {
	profiles []domainProfile.Profile
}

// GetByID returns the seeded profile by ID.
// PRE: none
// POST: ok is false when absent
func (m *mockProfileStore) GetByID(_ context.Context, id string) (domainProfile.Profile, bool, error) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domainProfile.Profile{}, false, nil
}

// List applies the search and the page window.
// PRE: filter is valid
// POST: Returns the matching window
func (m *mockProfileStore) List(_ context.Context, filter profile.ListFilter) ([]domainProfile.Profile, error) {
	matched := m.match(filter.Search)
	if filter.Offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

// Count returns the number of matching profiles.
// PRE: filter is valid
// POST: Returns count >= 0
func (m *mockProfileStore) Count(_ context.Context, filter profile.ListFilter) (int, error) {
	return len(m.match(filter.Search)), nil
}

func (m *mockProfileStore) match(search string) []domainProfile.Profile {
	var out []domainProfile.Profile
	for _, p := range m.profiles {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) || strings.Contains(p.Phone, search) {
			out = append(out, p)
		}
	}
	return out
}

// mockAttendanceReader serves fixed aggregates and records the requested windows.
type mockAttendanceReader struct {
	counts    map[string]int
	hours     map[int]int
	log       []domainAttendance.CheckIn
	countFrom string
	hourFrom  string
	logDate   string
}

// DailyCounts returns the fixed counts.
// PRE: from <= to
// POST: returns counts unchanged
func (m *mockAttendanceReader) DailyCounts(_ context.Context, from, _ string) (map[string]int, error) {
	m.countFrom = from
	return m.counts, nil
}

// CheckInHours returns the fixed histogram.
// PRE: from <= to
// POST: returns hours unchanged
func (m *mockAttendanceReader) CheckInHours(_ context.Context, from, _ string) (map[int]int, error) {
	m.hourFrom = from
	return m.hours, nil
}

// DailyLog returns the fixed log.
// PRE: date is valid
// POST: returns log unchanged
func (m *mockAttendanceReader) DailyLog(_ context.Context, date string) ([]domainAttendance.CheckIn, error) {
	m.logDate = date
	return m.log, nil
}

var reportClock = time.Date(2023, 9, 14, 20, 0, 0, 0, time.UTC)

func reportNow() time.Time { return reportClock }
