package domain

import "strconv"

// Category is a BMI health classification.
type Category int

const (
	Underweight Category = iota
	Normal
	Overweight
	Obese
)

var categoryNames = [...]string{"Underweight", "Normal", "Overweight", "Obese"}

// Severity tags shown alongside each category.
var categorySeverity = [...]string{"blue", "green", "orange", "red"}

func (c Category) String() string {
	if c < Underweight || c > Obese {
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// Severity returns the display tag associated with the category.
func (c Category) Severity() string {
	if c < Underweight || c > Obese {
		return ""
	}
	return categorySeverity[c]
}

// ComputeBMI returns weight divided by the square of height in metres.
// The result is not rounded.
func ComputeBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100.0
	return weightKg / (heightM * heightM)
}

// Classify maps a BMI value to its category and severity tag. Each band
// includes its lower bound and excludes its upper bound.
func Classify(bmi float64) (Category, string) {
	var c Category
	switch {
	case bmi < 18.5:
		c = Underweight
	case bmi < 25:
		c = Normal
	case bmi < 30:
		c = Overweight
	default:
		c = Obese
	}
	return c, c.Severity()
}

// FormatBMI renders a BMI with two decimals for display.
func FormatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', 2, 64)
}
