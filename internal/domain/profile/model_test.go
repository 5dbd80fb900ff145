package profile_test

import (
	"errors"
	"strings"
	"testing"

	"fitwise/internal/domain/profile"
)

func ptr[T any](v T) *T { return &v }

// TestProfileValidation tests validation of Profile.
func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		wantErr bool
	}{
		{
			name:    "valid member",
			profile: profile.Profile{ID: "p1", Name: "John Doe", Phone: "2345678901", Role: profile.RoleMember, HeightCm: 175, WeightKg: 70},
		},
		{
			name:    "measurements not recorded yet",
			profile: profile.Profile{ID: "p1", Name: profile.DefaultName, Phone: "2345678901", Role: profile.RoleMember},
		},
		{
			name:    "empty name",
			profile: profile.Profile{ID: "p1", Name: "  ", Phone: "2345678901", Role: profile.RoleMember},
			wantErr: true,
		},
		{
			name:    "name too long",
			profile: profile.Profile{ID: "p1", Name: strings.Repeat("a", profile.MaxNameLength+1), Phone: "2345678901", Role: profile.RoleMember},
			wantErr: true,
		},
		{
			name:    "missing phone",
			profile: profile.Profile{ID: "p1", Name: "Jane", Role: profile.RoleMember},
			wantErr: true,
		},
		{
			name:    "unknown role",
			profile: profile.Profile{ID: "p1", Name: "Jane", Phone: "2345678901", Role: "coach"},
			wantErr: true,
		},
		{
			name:    "negative height",
			profile: profile.Profile{ID: "p1", Name: "Jane", Phone: "2345678901", Role: profile.RoleMember, HeightCm: -1},
			wantErr: true,
		},
		{
			name:    "weight beyond limit",
			profile: profile.Profile{ID: "p1", Name: "Jane", Phone: "2345678901", Role: profile.RoleMember, WeightKg: 1e308},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Profile.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCanAccessAdmin tests the admin gating predicate.
func TestCanAccessAdmin(t *testing.T) {
	if !profile.CanAccessAdmin(profile.Profile{Role: profile.RoleAdmin}) {
		t.Error("admin should access admin panel")
	}
	if profile.CanAccessAdmin(profile.Profile{Role: profile.RoleMember}) {
		t.Error("member should not access admin panel")
	}
}

// TestRoleForPhone tests the allow-list role policy.
func TestRoleForPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"1234567890", profile.RoleAdmin},
		{"+91 8309285636", profile.RoleAdmin},
		{"+918309285636", profile.RoleAdmin},
		{"123-456-7890", profile.RoleAdmin},
		{"2345678901", profile.RoleMember},
		{"", profile.RoleMember},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := profile.RoleForPhone(tt.phone, profile.DefaultAdminPhones); got != tt.want {
				t.Errorf("RoleForPhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

// TestUpdateApply tests applying field updates to a profile copy.
func TestUpdateApply(t *testing.T) {
	base := profile.Profile{
		ID: "p1", Name: "John Doe", Phone: "1234567890", Role: profile.RoleAdmin,
		HeightCm: 175, WeightKg: 70, Attendance: []string{"2023-09-01"},
	}

	t.Run("applies all fields", func(t *testing.T) {
		got, err := profile.Update{
			Name:     ptr("  Johnny  "),
			Phone:    ptr("5550001111"),
			HeightCm: ptr(180.0),
			WeightKg: ptr(72.5),
		}.Apply(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Johnny" || got.Phone != "5550001111" || got.HeightCm != 180 || got.WeightKg != 72.5 {
			t.Errorf("unexpected result: %+v", got)
		}
		if got.ID != base.ID || got.Role != base.Role {
			t.Error("immutable fields changed")
		}
	})

	t.Run("rejects non-positive weight and leaves original untouched", func(t *testing.T) {
		got, err := profile.Update{Name: ptr("Changed"), WeightKg: ptr(0.0)}.Apply(base)
		if !errors.Is(err, profile.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if got.Name != "John Doe" || got.WeightKg != 70 {
			t.Errorf("expected original profile back, got %+v", got)
		}
	})

	t.Run("rejects implausible measurements", func(t *testing.T) {
		updates := []profile.Update{
			{WeightKg: ptr(1e308)},
			{WeightKg: ptr(float64(profile.MaxWeightKg) + 1)},
			{HeightCm: ptr(float64(profile.MaxHeightCm) + 1)},
		}
		for _, u := range updates {
			got, err := u.Apply(base)
			if !errors.Is(err, profile.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if got.WeightKg != 70 || got.HeightCm != 175 {
				t.Errorf("expected original profile back, got %+v", got)
			}
		}
		if _, err := (profile.Update{WeightKg: ptr(float64(profile.MaxWeightKg))}).Apply(base); err != nil {
			t.Errorf("limit itself should be accepted: %v", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		if _, err := (profile.Update{Name: ptr("")}).Apply(base); !errors.Is(err, profile.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("copy does not share attendance", func(t *testing.T) {
		got, err := profile.Update{Name: ptr("X")}.Apply(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got.Attendance[0] = "2099-01-01"
		if base.Attendance[0] != "2023-09-01" {
			t.Error("attendance slice shared between copies")
		}
	})
}
