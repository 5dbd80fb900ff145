package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fitwise/internal/domain/profile"
)

// SeedDemoDeps holds dependencies for SeedDemo.
type SeedDemoDeps struct {
	ProfileStore ProfileStoreForLogin
	AdminPhones  []string
	Now          func() time.Time
}

type demoMember struct {
	Name       string
	Phone      string
	HeightCm   float64
	WeightKg   float64
	Attendance []string
}

// demoMembers returns the members shown by the demo admin panel.
func demoMembers() []demoMember {
	return []demoMember{
		{"John Doe", "1234567890", 175, 70, []string{"2023-09-01", "2023-09-03", "2023-09-05"}},
		{"Jane Smith", "2345678901", 165, 60, []string{"2023-09-02", "2023-09-04", "2023-09-06"}},
		{"Mike Johnson", "3456789012", 180, 85, []string{"2023-09-01", "2023-09-02"}},
		{"Sarah Williams", "4567890123", 160, 55, []string{"2023-09-03", "2023-09-05"}},
		{"David Brown", "5678901234", 185, 90, []string{"2023-09-01", "2023-09-04"}},
	}
}

// ExecuteSeedDemo creates the demo members if they don't already exist.
// It is idempotent; members are matched by phone.
// PRE: Database is migrated
// POST: Every demo member exists; returns how many were created
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) (int, error) {
	now := nowOrDefault(deps.Now)
	created := 0
	for _, def := range demoMembers() {
		_, ok, err := deps.ProfileStore.FindByPhone(ctx, def.Phone)
		if err != nil {
			return created, fmt.Errorf("seed demo lookup %s: %w", def.Name, err)
		}
		if ok {
			continue
		}

		p := profile.Profile{
			ID:         uuid.New().String(),
			Name:       def.Name,
			Phone:      def.Phone,
			Role:       profile.RoleForPhone(def.Phone, deps.AdminPhones),
			HeightCm:   def.HeightCm,
			WeightKg:   def.WeightKg,
			Attendance: append([]string(nil), def.Attendance...),
			CreatedAt:  now,
		}
		if err := deps.ProfileStore.Save(ctx, p); err != nil {
			return created, fmt.Errorf("seed demo save %s: %w", def.Name, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("seed_event", "event", "demo_members_created", "count", created)
	}
	return created, nil
}
