package evaluation

import "math"

type Grade string

const (
	GradeGood Grade = "good"
	GradeFair Grade = "fair"
	GradePoor Grade = "poor"
)

const (
	goodThreshold = 7
	fairThreshold = 5
)

var gradeLabels = map[Grade]string{
	GradeGood: "خوب",
	GradeFair: "متوسط",
	GradePoor: "ضعیف",
}

func (g Grade) Label() string {
	return gradeLabels[g]
}

// Average is the integer mean of scores, rounded half away from zero. An
// empty set averages to zero.
func Average(scores ...int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

func Classify(avg int) Grade {
	switch {
	case avg >= goodThreshold:
		return GradeGood
	case avg >= fairThreshold:
		return GradeFair
	default:
		return GradePoor
	}
}
