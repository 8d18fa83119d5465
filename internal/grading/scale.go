package grading

import (
	"fmt"
	"sort"
)

// Step maps every percentage at or above MinPercent to Grade.
type Step struct {
	MinPercent float64 `json:"min_percent"`
	Grade      float64 `json:"grade"`
}

// Scale is a descending threshold ladder used to transmute percentages into final grades.
type Scale struct {
	steps []Step
	floor float64
}

// DefaultScale returns the institutional 1.00 - 5.00 transmutation table.
func DefaultScale() Scale {
	return Scale{
		steps: []Step{
			{MinPercent: 98, Grade: 1.00},
			{MinPercent: 95, Grade: 1.25},
			{MinPercent: 92, Grade: 1.50},
			{MinPercent: 89, Grade: 1.75},
			{MinPercent: 86, Grade: 2.00},
			{MinPercent: 83, Grade: 2.25},
			{MinPercent: 80, Grade: 2.50},
			{MinPercent: 77, Grade: 2.75},
			{MinPercent: 75, Grade: 3.00},
		},
		floor: 5.00,
	}
}

// NewScale builds a scale from arbitrary steps. Steps are ordered highest threshold first,
// and floor is returned for percentages below every threshold.
func NewScale(steps []Step, floor float64) (Scale, error) {
	if len(steps) == 0 {
		return Scale{}, fmt.Errorf("scale requires at least one step")
	}
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].MinPercent > ordered[j].MinPercent })
	for i := 1; i < len(ordered); i++ {
		if ordered[i].MinPercent == ordered[i-1].MinPercent {
			return Scale{}, fmt.Errorf("duplicate threshold %v", ordered[i].MinPercent)
		}
	}
	return Scale{steps: ordered, floor: floor}, nil
}

// Steps returns a copy of the thresholds, highest first.
func (s Scale) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Floor returns the grade given below the lowest threshold.
func (s Scale) Floor() float64 {
	return s.floor
}

// Transmute maps a percentage onto the scale. Input is not clamped.
func (s Scale) Transmute(percent float64) float64 {
	for _, step := range s.steps {
		if percent >= step.MinPercent {
			return step.Grade
		}
	}
	return s.floor
}

// TransmuteScore maps an optional raw score. An absent score yields an absent grade.
func (s Scale) TransmuteScore(raw RawScore) FinalGrade {
	if !raw.Valid {
		return FinalGrade{}
	}
	return SomeGrade(s.Transmute(raw.Value))
}
