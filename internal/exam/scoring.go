package exam

import (
	"fmt"
	"math"
)

// ScoringPolicy converts a tally of correct answers into a final score.
// Two policies exist in the product; which one is active is a deployment
// decision (EXAM_SCORING_POLICY), never mixed within a session.
type ScoringPolicy interface {
	Name() string
	Score(correct, total int) int
}

const (
	PolicyFixedPoints = "fixed_points"
	PolicyPercentage  = "percentage"
)

// FixedPoints awards a flat number of points per correct answer with no
// upper bound. The product default is 5 points per correct.
type FixedPoints struct {
	PerCorrect int
}

func (p FixedPoints) Name() string { return PolicyFixedPoints }

func (p FixedPoints) Score(correct, _ int) int {
	return correct * p.PerCorrect
}

// Percentage normalizes the tally to 0-100, rounded half away from zero.
type Percentage struct{}

func (Percentage) Name() string { return PolicyPercentage }

func (Percentage) Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// PolicyFromName resolves a configured policy name. pointsPerCorrect is only
// meaningful for the fixed_points policy.
func PolicyFromName(name string, pointsPerCorrect int) (ScoringPolicy, error) {
	switch name {
	case PolicyFixedPoints:
		if pointsPerCorrect <= 0 {
			pointsPerCorrect = 5
		}
		return FixedPoints{PerCorrect: pointsPerCorrect}, nil
	case PolicyPercentage:
		return Percentage{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}
