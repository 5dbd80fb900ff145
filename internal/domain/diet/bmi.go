package diet

import "fmt"

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if !inRange(heightCm, MaxHeightCm) || !inRange(weightKg, MaxWeightKg) {
		return 0, fmt.Errorf("%w: height and weight must be positive and plausible", ErrInvalidInput)
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory buckets a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}
