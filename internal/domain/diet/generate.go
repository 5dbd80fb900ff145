package diet

import (
	"fmt"
	"math"
)

// Validate checks the request preconditions.
// PRE: none
// POST: Returns nil, or an ErrInvalidInput-wrapped error naming the bad field
func (r Request) Validate() error {
	if _, ok := ParseGoal(string(r.Goal)); !ok {
		return fmt.Errorf("%w: goal must be gain, maintain or lose", ErrInvalidInput)
	}
	if !inRange(r.WeightKg, MaxWeightKg) {
		return fmt.Errorf("%w: weight must be greater than zero and at most %d kg", ErrInvalidInput, MaxWeightKg)
	}
	if !inRange(r.HeightCm, MaxHeightCm) {
		return fmt.Errorf("%w: height must be greater than zero and at most %d cm", ErrInvalidInput, MaxHeightCm)
	}
	return nil
}

// BMR is the Mifflin-St Jeor estimate with the fixed assumed age.
func BMR(weightKg, heightCm float64) float64 {
	return 10*weightKg + 6.25*heightCm - 5*AssumedAge + 5
}

// TargetCalories applies the goal adjustment to bmr.
// Weight loss never goes below MinimumCalories.
func TargetCalories(goal Goal, bmr float64) float64 {
	switch goal {
	case GoalGain:
		return bmr + SurplusCalories
	case GoalLose:
		return math.Max(MinimumCalories, bmr-DeficitCalories)
	default:
		return bmr
	}
}

// Generate maps a validated request onto a plan.
// PRE: none; the request is validated here
// POST: Returns a fresh Plan, or ErrInvalidInput without a plan
// INVARIANT: pure, deterministic, safe for concurrent use
func Generate(r Request) (Plan, error) {
	if err := r.Validate(); err != nil {
		return Plan{}, err
	}

	total := TargetCalories(r.Goal, BMR(r.WeightKg, r.HeightCm))

	meals := make([]Meal, 0, len(mealSlots))
	for _, slot := range mealSlots {
		meals = append(meals, Meal{
			Time:        slot.time,
			Description: slot.description,
			Calories:    round(total * slot.share),
		})
	}

	return Plan{
		Meals:         meals,
		TotalCalories: total,
		ProteinGrams:  round(r.WeightKg * ProteinGramsPerKg),
		CarbsGrams:    round(total * CarbsShare / CaloriesPerGramCarbs),
		FatsGrams:     round(total * FatsShare / CaloriesPerGramFat),
		Tips:          Tips(),
	}, nil
}

// round takes halves upward, so -32.5 becomes -32.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// inRange rejects NaN along with anything outside (0, limit].
func inRange(v float64, limit int) bool {
	return v > 0 && v <= float64(limit)
}
