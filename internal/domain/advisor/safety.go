package advisor

// TipCategory groups safety tips under a heading.
type TipCategory struct {
	Category string   `json:"category"`
	Tips     []string `json:"tips"`
}

var safetyTips = []TipCategory{
	{
		Category: "Muscle Recovery",
		Tips: []string{
			"Allow 48 hours before training the same muscle group again",
			"Ensure adequate protein intake post-workout",
			"Prioritize 7-9 hours of quality sleep",
			"Consider contrast therapy (alternating hot and cold)",
			"Stay hydrated to support tissue repair",
		},
	},
	{
		Category: "Cravings Management",
		Tips: []string{
			"Eat regular, balanced meals to prevent hunger spikes",
			"Drink water when cravings hit - you might just be thirsty",
			"Keep healthy snacks readily available",
			"Practice mindful eating to recognize actual hunger",
			"Identify emotional triggers for unhealthy cravings",
		},
	},
	{
		Category: "Injury Prevention",
		Tips: []string{
			"Always perform proper warm-up before intense exercise",
			"Master proper form before increasing weights",
			"Increase intensity gradually (10% rule)",
			"Listen to your body and distinguish between discomfort and pain",
			"Incorporate mobility work and stretching into your routine",
		},
	},
}

// SafetyTips returns the static tip table. The result is a deep copy.
func SafetyTips() []TipCategory {
	out := make([]TipCategory, len(safetyTips))
	for i, c := range safetyTips {
		out[i] = TipCategory{Category: c.Category, Tips: append([]string(nil), c.Tips...)}
	}
	return out
}
