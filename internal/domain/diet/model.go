package diet

import "errors"

// Goal selects the calorie adjustment applied to the baseline estimate.
type Goal string

// Goal constants
const (
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
	GoalLose     Goal = "lose"
)

// Engine constants
const (
	// AssumedAge is used in the BMR formula since age is never collected.
	// This is a fixed approximation, not a bug.
	AssumedAge = 30

	SurplusCalories = 500
	DeficitCalories = 500
	MinimumCalories = 1500

	ProteinGramsPerKg    = 2
	CarbsShare           = 0.5
	FatsShare            = 0.25
	CaloriesPerGramCarbs = 4
	CaloriesPerGramFat   = 9

	// Measurements above these are rejected before any arithmetic.
	MaxWeightKg = 500
	MaxHeightCm = 300
)

// ErrInvalidInput is returned when a request cannot produce a plan.
var ErrInvalidInput = errors.New("invalid diet request")

// Request is constructed fresh per generation and never persisted.
type Request struct {
	Goal     Goal    `json:"goal"`
	WeightKg float64 `json:"weight"`
	HeightCm float64 `json:"height"`
}

// Meal is one slot of the daily plan.
type Meal struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
}

// Plan is the generated nutrition plan. It is owned by the caller.
type Plan struct {
	Meals         []Meal   `json:"meals"`
	TotalCalories float64  `json:"totalCalories"`
	ProteinGrams  int      `json:"proteinGrams"`
	CarbsGrams    int      `json:"carbsGrams"`
	FatsGrams     int      `json:"fatsGrams"`
	Tips          []string `json:"tips"`
}

// MealCaloriesSum totals the rounded meal calories.
func (p Plan) MealCaloriesSum() int {
	sum := 0
	for _, m := range p.Meals {
		sum += m.Calories
	}
	return sum
}

// ParseGoal maps a string onto a known goal.
func ParseGoal(s string) (Goal, bool) {
	switch g := Goal(s); g {
	case GoalGain, GoalMaintain, GoalLose:
		return g, true
	}
	return "", false
}

type mealSlot struct {
	time        string
	description string
	share       float64
}

// mealSlots partitions the day; shares sum to 1.00.
var mealSlots = []mealSlot{
	{"7:00 AM", "Oatmeal with berries and a protein shake", 0.25},
	{"10:00 AM", "Greek yogurt with honey and almonds", 0.15},
	{"1:00 PM", "Grilled chicken salad with olive oil dressing", 0.30},
	{"4:00 PM", "Protein bar and a banana", 0.10},
	{"7:00 PM", "Salmon with sweet potatoes and steamed vegetables", 0.20},
}

var nutritionTips = []string{
	"Stay hydrated by drinking at least 3 liters of water daily",
	"Eat slowly and chew food thoroughly to aid digestion",
	"Try to eat every 3-4 hours to keep metabolism active",
	"Prioritize whole foods over processed options",
	"Adjust portions based on how your body responds",
}

// Tips returns a copy of the static nutrition tips.
func Tips() []string {
	return append([]string(nil), nutritionTips...)
}
