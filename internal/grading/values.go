package grading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	// NoDataLabel is emitted in place of a raw score for scopes without recorded items.
	NoDataLabel = "No Data"
	// NoGradeLabel is emitted in place of a final grade for scopes without recorded items.
	NoGradeLabel = "No Grade"
)

// RawScore is a percentage that may be absent because nothing was recorded.
type RawScore struct {
	Value float64
	Valid bool
}

// SomeScore wraps a present raw score.
func SomeScore(v float64) RawScore { return RawScore{Value: v, Valid: true} }

// MarshalJSON encodes the score as a number or the "No Data" label.
func (s RawScore) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return json.Marshal(NoDataLabel)
	}
	return marshalNumber(s.Value)
}

// UnmarshalJSON accepts a number, null or the "No Data" label.
func (s *RawScore) UnmarshalJSON(data []byte) error {
	v, ok, err := unmarshalOptional(data, NoDataLabel)
	if err != nil {
		return fmt.Errorf("raw score: %w", err)
	}
	*s = RawScore{Value: v, Valid: ok}
	return nil
}

// FinalGrade is a transmuted grade that may be absent.
type FinalGrade struct {
	Value float64
	Valid bool
}

// SomeGrade wraps a present final grade.
func SomeGrade(v float64) FinalGrade { return FinalGrade{Value: v, Valid: true} }

// MarshalJSON encodes the grade as a number or the "No Grade" label.
func (g FinalGrade) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return json.Marshal(NoGradeLabel)
	}
	return marshalNumber(g.Value)
}

// UnmarshalJSON accepts a number, null or the "No Grade" label.
func (g *FinalGrade) UnmarshalJSON(data []byte) error {
	v, ok, err := unmarshalOptional(data, NoGradeLabel)
	if err != nil {
		return fmt.Errorf("final grade: %w", err)
	}
	*g = FinalGrade{Value: v, Valid: ok}
	return nil
}

// String renders the grade for tabular exports.
func (g FinalGrade) String() string {
	if !g.Valid {
		return NoGradeLabel
	}
	return strconv.FormatFloat(g.Value, 'f', 2, 64)
}

// String renders the score for tabular exports.
func (s RawScore) String() string {
	if !s.Valid {
		return NoDataLabel
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// Average is a mean over graded scopes; absent when no scope was graded.
type Average struct {
	Value float64
	Valid bool
}

// MarshalJSON encodes the average as a number or null.
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return marshalNumber(a.Value)
}

// UnmarshalJSON accepts a number or null.
func (a *Average) UnmarshalJSON(data []byte) error {
	v, ok, err := unmarshalOptional(data, "")
	if err != nil {
		return fmt.Errorf("average: %w", err)
	}
	*a = Average{Value: v, Valid: ok}
	return nil
}

// String renders the average for tabular exports.
func (a Average) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

func marshalNumber(v float64) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported value %v", v)
	}
	return json.Marshal(v)
}

func unmarshalOptional(data []byte, label string) (float64, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return 0, false, nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false, err
		}
		if s == label {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("unexpected label %q", s)
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// round mirrors half-away-from-zero rounding at the given number of decimals.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
