package grading

import (
	"fmt"
	"strings"
)

// Quarter is one of the four academic grading periods.
type Quarter string

const (
	QuarterPreliminary Quarter = "preliminary"
	QuarterMidterm     Quarter = "midterm"
	QuarterPreFinal    Quarter = "pre_final"
	QuarterFinal       Quarter = "final"
)

var quarters = [...]Quarter{QuarterPreliminary, QuarterMidterm, QuarterPreFinal, QuarterFinal}

// Quarters returns the grading periods in academic order.
func Quarters() []Quarter {
	out := make([]Quarter, len(quarters))
	copy(out, quarters[:])
	return out
}

// Valid reports whether q is a known quarter.
func (q Quarter) Valid() bool {
	for _, known := range quarters {
		if q == known {
			return true
		}
	}
	return false
}

// ParseQuarter normalises raw input into a Quarter.
func ParseQuarter(raw string) (Quarter, error) {
	q := Quarter(strings.ToLower(strings.TrimSpace(raw)))
	if !q.Valid() {
		return "", fmt.Errorf("unknown quarter %q", raw)
	}
	return q, nil
}

// ActivityType is a category of assessable work.
type ActivityType string

const (
	ActivityQuiz       ActivityType = "quiz"
	ActivityExam       ActivityType = "exam"
	ActivityAssignment ActivityType = "assignment"
	ActivityProject    ActivityType = "project"
)

var activityTypes = [...]ActivityType{ActivityQuiz, ActivityExam, ActivityAssignment, ActivityProject}

// ActivityTypes returns every activity type. Mode averages always divide by its length.
func ActivityTypes() []ActivityType {
	out := make([]ActivityType, len(activityTypes))
	copy(out, activityTypes[:])
	return out
}

// Valid reports whether a is a known activity type.
func (a ActivityType) Valid() bool {
	for _, known := range activityTypes {
		if a == known {
			return true
		}
	}
	return false
}

// ParseActivityType normalises raw input into an ActivityType.
func ParseActivityType(raw string) (ActivityType, error) {
	a := ActivityType(strings.ToLower(strings.TrimSpace(raw)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown activity type %q", raw)
	}
	return a, nil
}

// Mode is the delivery channel of an assessment.
type Mode string

const (
	ModeF2F    Mode = "f2f"
	ModeOnline Mode = "online"
)

var modes = [...]Mode{ModeF2F, ModeOnline}

// Modes returns both delivery modes, face-to-face first.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes[:])
	return out
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeF2F || m == ModeOnline
}

// ParseMode normalises raw input into a Mode.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q", raw)
	}
	return m, nil
}
