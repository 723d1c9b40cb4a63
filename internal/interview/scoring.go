package interview

// Classification buckets an evaluator score.
type Classification int

const (
	ClassFail Classification = iota
	ClassPartial
	ClassFull
)

// Evaluator score thresholds.
const (
	FullThreshold    = 0.75
	PartialThreshold = 0.3
)

func (c Classification) String() string {
	switch c {
	case ClassFull:
		return "full"
	case ClassPartial:
		return "partial"
	default:
		return "fail"
	}
}

// Classify maps an evaluator score in [0,1] to a classification.
func Classify(score float64) Classification {
	switch {
	case score >= FullThreshold:
		return ClassFull
	case score >= PartialThreshold:
		return ClassPartial
	default:
		return ClassFail
	}
}

// complexityPoints is the point value of a question at each level.
var complexityPoints = map[int]float64{1: 5, 2: 10, 3: 15}

// PointsFor returns the full point value for a question at the given
// complexity.
func PointsFor(complexity int) float64 {
	return complexityPoints[complexity]
}

// AwardFor returns the base points awarded for a classification at the
// given complexity: full value, half value, or nothing.
func AwardFor(c Classification, complexity int) float64 {
	switch c {
	case ClassFull:
		return PointsFor(complexity)
	case ClassPartial:
		return PointsFor(complexity) / 2
	default:
		return 0
	}
}

// FollowUpBonus returns the additional points for a follow-up answer,
// worth up to half the primary question's value, scaled by the evaluator
// score.
func FollowUpBonus(score float64, complexity int) float64 {
	return score * PointsFor(complexity) / 2
}

// raiseComplexity bumps the level after a full-credit answer, capped at the
// maximum.
func raiseComplexity(c int) int {
	if c >= maxComplexity {
		return maxComplexity
	}
	return c + 1
}

// lowerComplexity drops the level after a failed, partial-without-follow-up,
// or expired cycle, floored at the minimum.
func lowerComplexity(c int) int {
	if c <= minComplexity {
		return minComplexity
	}
	return c - 1
}
