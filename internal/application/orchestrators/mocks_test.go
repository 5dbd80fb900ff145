package orchestrators

import (
	"context"
	"sync"
	"time"

	"fitwise/internal/domain/profile"
)

// mockProfileStore is an in-memory profile store keyed by ID.
type mockProfileStore struct {
	mu       sync.Mutex
	profiles map[string]profile.Profile
	saves    int
	saveErr  error
}

func newMockProfileStore(seed ...profile.Profile) *mockProfileStore {
	m := &mockProfileStore{profiles: make(map[string]profile.Profile)}
	for _, p := range seed {
		m.profiles[p.ID] = clone(p)
	}
	return m
}

// GetByID returns a copy of the stored profile.
// PRE: none
// POST: ok is false when absent
func (m *mockProfileStore) GetByID(_ context.Context, id string) (profile.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	return clone(p), ok, nil
}

// FindByPhone matches on the normalized phone number.
// PRE: none
// POST: ok is false when no profile owns the number
func (m *mockProfileStore) FindByPhone(_ context.Context, phone string) (profile.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profile.NormalizePhone(phone)
	for _, p := range m.profiles {
		if profile.NormalizePhone(p.Phone) == key {
			return clone(p), true, nil
		}
	}
	return profile.Profile{}, false, nil
}

// Save stores a copy, failing with saveErr when set.
// PRE: p is valid
// POST: p is persisted unless saveErr is set
func (m *mockProfileStore) Save(_ context.Context, p profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.profiles[p.ID] = clone(p)
	return nil
}

func (m *mockProfileStore) get(id string) profile.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.profiles[id])
}

func (m *mockProfileStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func clone(p profile.Profile) profile.Profile {
	p.Attendance = append([]string(nil), p.Attendance...)
	return p
}

var clockTime = time.Date(2023, 9, 14, 18, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return clockTime }

var (
	adminActor  = Actor{ProfileID: "admin-1", Role: profile.RoleAdmin}
	memberActor = Actor{ProfileID: "member-1", Role: profile.RoleMember}
)

func seedProfiles() []profile.Profile {
	return []profile.Profile{
		{ID: "admin-1", Name: "John Doe", Phone: "1234567890", Role: profile.RoleAdmin, HeightCm: 175, WeightKg: 70},
		{ID: "member-1", Name: "Jane Smith", Phone: "2345678901", Role: profile.RoleMember, HeightCm: 165, WeightKg: 60, Attendance: []string{"2023-09-01", "2023-09-03"}},
		{ID: "member-2", Name: "Fitness Enthusiast", Phone: "3456789012", Role: profile.RoleMember},
	}
}
