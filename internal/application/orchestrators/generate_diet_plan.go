package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fitwise/internal/domain/diet"
)

// GenerateDietPlanInput carries input for the diet plan orchestrator.
// Nil measurements fall back to the caller's recorded profile values.
// An empty Goal means maintain, the option the diet form starts on.
type GenerateDietPlanInput struct {
	Actor    Actor
	Goal     string
	WeightKg *float64
	HeightCm *float64
}

// GenerateDietPlanDeps holds dependencies for GenerateDietPlan.
type GenerateDietPlanDeps struct {
	ProfileStore ProfileReader
}

// ExecuteGenerateDietPlan builds a plan for the caller.
// PRE: Actor is authenticated
// POST: Returns a plan, or diet.ErrInvalidInput when goal or measurements are unusable
// INVARIANT: nothing is persisted
func ExecuteGenerateDietPlan(ctx context.Context, input GenerateDietPlanInput, deps GenerateDietPlanDeps) (diet.Plan, error) {
	goal := diet.GoalMaintain
	if input.Goal != "" {
		g, ok := diet.ParseGoal(input.Goal)
		if !ok {
			return diet.Plan{}, fmt.Errorf("%w: unknown goal %q", diet.ErrInvalidInput, input.Goal)
		}
		goal = g
	}

	req := diet.Request{Goal: goal}
	if input.WeightKg != nil {
		req.WeightKg = *input.WeightKg
	}
	if input.HeightCm != nil {
		req.HeightCm = *input.HeightCm
	}
	if input.WeightKg == nil || input.HeightCm == nil {
		p, err := loadProfile(ctx, deps.ProfileStore, input.Actor.ProfileID)
		if err != nil {
			return diet.Plan{}, err
		}
		if input.WeightKg == nil {
			req.WeightKg = p.WeightKg
		}
		if input.HeightCm == nil {
			req.HeightCm = p.HeightCm
		}
	}

	plan, err := diet.Generate(req)
	if err != nil {
		return diet.Plan{}, err
	}
	slog.Info("diet_event", "event", "plan_generated", "profile_id", input.Actor.ProfileID, "goal", goal, "calories", plan.TotalCalories)
	return plan, nil
}
