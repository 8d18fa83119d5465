package grading

import "fmt"

const (
	defaultF2FWeight    = 0.60
	defaultOnlineWeight = 0.40
	defaultPassingGrade = 3.00

	rawScorePlaces   = 4
	percentagePlaces = 2
)

// ModeWeights controls how face-to-face and online averages blend into the overall score.
type ModeWeights struct {
	F2F    float64 `json:"f2f"`
	Online float64 `json:"online"`
}

// Engine builds grade reports from assessment records. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	scale   Scale
	weights ModeWeights
	passing float64
}

// Option customises an Engine.
type Option func(*Engine)

// WithScale overrides the transmutation table.
func WithScale(s Scale) Option {
	return func(e *Engine) {
		if len(s.steps) > 0 {
			e.scale = s
		}
	}
}

// WithModeWeights overrides the 60/40 face-to-face/online blend.
func WithModeWeights(w ModeWeights) Option {
	return func(e *Engine) {
		if w.F2F >= 0 && w.Online >= 0 && w.F2F+w.Online > 0 {
			e.weights = w
		}
	}
}

// WithPassingGrade overrides the highest grade still considered passing.
func WithPassingGrade(g float64) Option {
	return func(e *Engine) {
		if g > 0 {
			e.passing = g
		}
	}
}

// NewEngine constructs an Engine using the institutional defaults unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scale:   DefaultScale(),
		weights: ModeWeights{F2F: defaultF2FWeight, Online: defaultOnlineWeight},
		passing: defaultPassingGrade,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scale exposes the transmutation table in use.
func (e *Engine) Scale() Scale { return e.scale }

// Weights exposes the mode blend in use.
func (e *Engine) Weights() ModeWeights { return e.weights }

// PassingGrade exposes the passing threshold in use.
func (e *Engine) PassingGrade() float64 { return e.passing }

// PartialGrades is the per-mode breakdown of one activity.
type PartialGrades struct {
	FaceToFace ModeTotals `json:"face_to_face"`
	Online     ModeTotals `json:"online"`
}

// ActivityReport wraps the partial grades of one activity type.
type ActivityReport struct {
	PartialGrades PartialGrades `json:"partial_grades"`
}

// ModeBreakdown is the single-mode result of a scope.
type ModeBreakdown struct {
	AvgPercent float64    `json:"avg_percent"`
	RawScore   RawScore   `json:"raw_score"`
	FinalGrade FinalGrade `json:"final_grade"`
}

// OverallBreakdown is the blended result of a scope.
type OverallBreakdown struct {
	AvgF2FPercent    float64    `json:"avg_f2f_percent"`
	AvgOnlinePercent float64    `json:"avg_online_percent"`
	RawScore         RawScore   `json:"raw_score"`
	FinalGrade       FinalGrade `json:"final_grade"`
}

// GradeResult pairs a raw score with its transmuted grade.
type GradeResult struct {
	RawScore   RawScore   `json:"raw_score"`
	FinalGrade FinalGrade `json:"final_grade"`
}

// ScopeReport is the grade report for one subject in one quarter.
type ScopeReport struct {
	SubjectID  string                          `json:"subject_id"`
	Quarter    Quarter                         `json:"quarter"`
	HasData    bool                            `json:"has_data"`
	Activities map[ActivityType]ActivityReport `json:"activities"`
	F2F        ModeBreakdown                   `json:"f2f_breakdown"`
	Online     ModeBreakdown                   `json:"online_breakdown"`
	Overall    OverallBreakdown                `json:"overall_breakdown"`
}

// F2FResult returns the face-to-face-only grade.
func (r ScopeReport) F2FResult() GradeResult {
	return GradeResult{RawScore: r.F2F.RawScore, FinalGrade: r.F2F.FinalGrade}
}

// OnlineResult returns the online-only grade.
func (r ScopeReport) OnlineResult() GradeResult {
	return GradeResult{RawScore: r.Online.RawScore, FinalGrade: r.Online.FinalGrade}
}

// OverallResult returns the blended grade.
func (r ScopeReport) OverallResult() GradeResult {
	return GradeResult{RawScore: r.Overall.RawScore, FinalGrade: r.Overall.FinalGrade}
}

// Activity returns the breakdown for a single activity type.
func (r ScopeReport) Activity(a ActivityType) (ActivityReport, error) {
	report, ok := r.Activities[a]
	if !ok {
		return ActivityReport{}, fmt.Errorf("unknown activity type %q", a)
	}
	return report, nil
}

// ScopeReport builds the report for records already scoped to one subject and quarter.
// Missing activities contribute 0% to the mode averages.
func (e *Engine) ScopeReport(subjectID string, quarter Quarter, records []Record) ScopeReport {
	report := ScopeReport{
		SubjectID:  subjectID,
		Quarter:    quarter,
		Activities: make(map[ActivityType]ActivityReport, len(activityTypes)),
	}

	var sumF2F, sumOnline float64
	for _, activity := range activityTypes {
		totals := AggregateActivity(records, activity)
		report.Activities[activity] = ActivityReport{PartialGrades: PartialGrades{
			FaceToFace: roundTotals(totals.F2F),
			Online:     roundTotals(totals.Online),
		}}
		sumF2F += totals.F2F.Percentage
		sumOnline += totals.Online.Percentage
		if totals.HasItems() {
			report.HasData = true
		}
	}

	if !report.HasData {
		return report
	}

	count := float64(len(activityTypes))
	avgF2F := sumF2F / count
	avgOnline := sumOnline / count
	overall := e.blend(avgF2F, avgOnline)

	report.F2F = e.modeBreakdown(avgF2F)
	report.Online = e.modeBreakdown(avgOnline)
	report.Overall = OverallBreakdown{
		AvgF2FPercent:    round(avgF2F, rawScorePlaces),
		AvgOnlinePercent: round(avgOnline, rawScorePlaces),
		RawScore:         SomeScore(round(overall, rawScorePlaces)),
		FinalGrade:       SomeGrade(e.scale.Transmute(overall)),
	}
	return report
}

// Blend combines mode averages using the engine weights.
func (e *Engine) Blend(avgF2F, avgOnline float64) float64 {
	return e.blend(avgF2F, avgOnline)
}

func (e *Engine) blend(avgF2F, avgOnline float64) float64 {
	// weights that do not sum to 1 are normalised
	total := e.weights.F2F + e.weights.Online
	return (avgF2F*e.weights.F2F + avgOnline*e.weights.Online) / total
}

func (e *Engine) modeBreakdown(avg float64) ModeBreakdown {
	return ModeBreakdown{
		AvgPercent: round(avg, rawScorePlaces),
		RawScore:   SomeScore(round(avg, rawScorePlaces)),
		FinalGrade: SomeGrade(e.scale.Transmute(avg)),
	}
}

func roundTotals(t ModeTotals) ModeTotals {
	t.Percentage = round(t.Percentage, percentagePlaces)
	return t
}
