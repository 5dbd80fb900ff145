package workout

// Exercise is one movement in a plan.
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Rest        string `json:"rest"`
	Description string `json:"description,omitempty"`
}

// Plan is a named list of exercises.
type Plan struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

var splits = []Plan{
	{
		Key: "push", Name: "Push Day", Description: "Focus on chest, shoulders, and triceps",
		Exercises: []Exercise{
			{Name: "Bench Press", Sets: 4, Reps: "8-10", Rest: "90 sec", Description: "Keep your feet flat on the floor and maintain a natural arch in your lower back."},
			{Name: "Overhead Press", Sets: 3, Reps: "10-12", Rest: "60 sec", Description: "Keep your core tight and avoid arching your back during the movement."},
			{Name: "Incline Dumbbell Press", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Lateral Raises", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Tricep Pushdowns", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Overhead Tricep Extension", Sets: 3, Reps: "12-15", Rest: "45 sec"},
		},
	},
	{
		Key: "pull", Name: "Pull Day", Description: "Focus on back and biceps",
		Exercises: []Exercise{
			{Name: "Deadlift", Sets: 4, Reps: "6-8", Rest: "120 sec", Description: "Keep your back straight and push through your heels."},
			{Name: "Pull-ups", Sets: 3, Reps: "8-10", Rest: "90 sec"},
			{Name: "Barbell Rows", Sets: 3, Reps: "8-12", Rest: "60 sec"},
			{Name: "Face Pulls", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Bicep Curls", Sets: 3, Reps: "10-12", Rest: "45 sec"},
			{Name: "Hammer Curls", Sets: 3, Reps: "10-12", Rest: "45 sec"},
		},
	},
	{
		Key: "legs", Name: "Leg Day", Description: "Focus on quadriceps, hamstrings, and calves",
		Exercises: []Exercise{
			{Name: "Squats", Sets: 4, Reps: "8-10", Rest: "120 sec", Description: "Keep your knees in line with your toes and go as deep as comfortably possible."},
			{Name: "Romanian Deadlift", Sets: 3, Reps: "10-12", Rest: "90 sec"},
			{Name: "Leg Press", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Leg Extensions", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Leg Curls", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Calf Raises", Sets: 4, Reps: "15-20", Rest: "30 sec"},
		},
	},
}

var muscleGroups = []Plan{
	{
		Key: "chest", Name: "Chest Workout", Description: "Comprehensive chest development",
		Exercises: []Exercise{
			{Name: "Flat Bench Press", Sets: 4, Reps: "8-10", Rest: "90 sec"},
			{Name: "Incline Dumbbell Press", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Decline Push-ups", Sets: 3, Reps: "12-15", Rest: "60 sec"},
			{Name: "Cable Flyes", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Chest Dips", Sets: 3, Reps: "10-12", Rest: "60 sec"},
		},
	},
	{
		Key: "back", Name: "Back Workout", Description: "Build a stronger, wider back",
		Exercises: []Exercise{
			{Name: "Deadlifts", Sets: 4, Reps: "6-8", Rest: "120 sec"},
			{Name: "Pull-ups", Sets: 3, Reps: "8-10", Rest: "90 sec"},
			{Name: "Barbell Rows", Sets: 3, Reps: "8-12", Rest: "60 sec"},
			{Name: "Lat Pulldowns", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Seated Rows", Sets: 3, Reps: "10-12", Rest: "60 sec"},
		},
	},
	{
		Key: "legs", Name: "Legs Workout", Description: "Complete leg development",
		Exercises: []Exercise{
			{Name: "Squats", Sets: 4, Reps: "8-10", Rest: "120 sec"},
			{Name: "Leg Press", Sets: 3, Reps: "10-12", Rest: "90 sec"},
			{Name: "Romanian Deadlifts", Sets: 3, Reps: "10-12", Rest: "90 sec"},
			{Name: "Walking Lunges", Sets: 3, Reps: "12 per leg", Rest: "60 sec"},
			{Name: "Calf Raises", Sets: 4, Reps: "15-20", Rest: "30 sec"},
		},
	},
	{
		Key: "arms", Name: "Arms Workout", Description: "Focus on biceps and triceps",
		Exercises: []Exercise{
			{Name: "Barbell Curls", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Skull Crushers", Sets: 3, Reps: "10-12", Rest: "60 sec"},
			{Name: "Hammer Curls", Sets: 3, Reps: "10-12", Rest: "45 sec"},
			{Name: "Tricep Pushdowns", Sets: 3, Reps: "12-15", Rest: "45 sec"},
			{Name: "Preacher Curls", Sets: 3, Reps: "10-12", Rest: "45 sec"},
			{Name: "Overhead Tricep Extensions", Sets: 3, Reps: "12-15", Rest: "45 sec"},
		},
	},
}

// Split returns the split-routine plan for key (push, pull, legs).
func Split(key string) (Plan, bool) {
	return find(splits, key)
}

// MuscleGroup returns the muscle-group plan for key (chest, back, legs, arms).
func MuscleGroup(key string) (Plan, bool) {
	return find(muscleGroups, key)
}

// Splits lists all split plans in display order.
func Splits() []Plan {
	return copyPlans(splits)
}

// MuscleGroups lists all muscle-group plans in display order.
func MuscleGroups() []Plan {
	return copyPlans(muscleGroups)
}

func find(plans []Plan, key string) (Plan, bool) {
	for _, p := range plans {
		if p.Key == key {
			return copyPlan(p), true
		}
	}
	return Plan{}, false
}

func copyPlans(plans []Plan) []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		out[i] = copyPlan(p)
	}
	return out
}

func copyPlan(p Plan) Plan {
	p.Exercises = append([]Exercise(nil), p.Exercises...)
	return p
}
