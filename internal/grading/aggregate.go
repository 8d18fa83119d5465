package grading

import "time"

// Record is a single assessment entry as seen by the engine.
type Record struct {
	SubjectID    string
	Quarter      Quarter
	ActivityType ActivityType
	Mode         Mode
	Score        float64
	TotalItems   float64
	DateTaken    *time.Time
}

// ModeTotals holds the sums for one activity in one delivery mode.
type ModeTotals struct {
	ScoreObtained float64 `json:"score_obtained"`
	TotalPossible float64 `json:"total_possible"`
	Percentage    float64 `json:"percentage"`
}

// HasItems reports whether anything was recorded. A zero Percentage alone is ambiguous.
func (t ModeTotals) HasItems() bool {
	return t.TotalPossible > 0
}

// ActivityTotals is the per-mode aggregate of one activity type.
type ActivityTotals struct {
	Activity ActivityType
	F2F      ModeTotals
	Online   ModeTotals
}

// HasItems reports whether either mode recorded items.
func (t ActivityTotals) HasItems() bool {
	return t.F2F.HasItems() || t.Online.HasItems()
}

// Mode returns the totals for the given mode.
func (t ActivityTotals) Mode(m Mode) ModeTotals {
	if m == ModeOnline {
		return t.Online
	}
	return t.F2F
}

// AggregateActivity sums scores and items for one activity type across records already
// scoped to a subject and quarter. Percentages are unrounded.
func AggregateActivity(records []Record, activity ActivityType) ActivityTotals {
	totals := ActivityTotals{Activity: activity}
	for _, rec := range records {
		if rec.ActivityType != activity {
			continue
		}
		switch rec.Mode {
		case ModeF2F:
			totals.F2F.ScoreObtained += rec.Score
			totals.F2F.TotalPossible += rec.TotalItems
		case ModeOnline:
			totals.Online.ScoreObtained += rec.Score
			totals.Online.TotalPossible += rec.TotalItems
		}
	}
	totals.F2F.Percentage = percentage(totals.F2F.ScoreObtained, totals.F2F.TotalPossible)
	totals.Online.Percentage = percentage(totals.Online.ScoreObtained, totals.Online.TotalPossible)
	return totals
}

func percentage(score, items float64) float64 {
	if items <= 0 {
		return 0
	}
	return score / items * 100
}

func groupBySubject(records []Record) map[string][]Record {
	grouped := make(map[string][]Record)
	for _, rec := range records {
		grouped[rec.SubjectID] = append(grouped[rec.SubjectID], rec)
	}
	return grouped
}

func groupByQuarter(records []Record) map[Quarter][]Record {
	grouped := make(map[Quarter][]Record, len(quarters))
	for _, rec := range records {
		grouped[rec.Quarter] = append(grouped[rec.Quarter], rec)
	}
	return grouped
}
