package grading

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(subject string, q Quarter, a ActivityType, m Mode, score, items float64) Record {
	return Record{SubjectID: subject, Quarter: q, ActivityType: a, Mode: m, Score: score, TotalItems: items}
}

func TestAggregateActivity(t *testing.T) {
	records := []Record{
		rec("s", QuarterMidterm, ActivityQuiz, ModeF2F, 8, 10),
		rec("s", QuarterMidterm, ActivityQuiz, ModeF2F, 10, 10),
		rec("s", QuarterMidterm, ActivityQuiz, ModeOnline, 3, 4),
		rec("s", QuarterMidterm, ActivityExam, ModeF2F, 40, 50),
	}

	totals := AggregateActivity(records, ActivityQuiz)
	assert.Equal(t, 18.0, totals.F2F.ScoreObtained)
	assert.Equal(t, 20.0, totals.F2F.TotalPossible)
	assert.Equal(t, 90.0, totals.F2F.Percentage)
	assert.Equal(t, 75.0, totals.Online.Percentage)
	assert.True(t, totals.HasItems())
}

func TestAggregateActivityEmpty(t *testing.T) {
	totals := AggregateActivity(nil, ActivityProject)
	assert.Zero(t, totals.F2F.TotalPossible)
	assert.Zero(t, totals.F2F.Percentage)
	assert.Zero(t, totals.Online.Percentage)
	assert.False(t, math.IsNaN(totals.Online.Percentage))
	assert.False(t, totals.HasItems())
}

func TestAggregateActivityZeroItems(t *testing.T) {
	records := []Record{rec("s", QuarterFinal, ActivityAssignment, ModeOnline, 5, 0)}

	totals := AggregateActivity(records, ActivityAssignment)
	assert.Equal(t, 5.0, totals.Online.ScoreObtained)
	assert.Zero(t, totals.Online.Percentage)
	assert.False(t, totals.Online.HasItems())
}

func TestAggregateActivityScoreAboveItems(t *testing.T) {
	records := []Record{rec("s", QuarterFinal, ActivityExam, ModeF2F, 60, 50)}

	totals := AggregateActivity(records, ActivityExam)
	assert.Equal(t, 120.0, totals.F2F.Percentage)
}

func TestScopeReportMidtermScenario(t *testing.T) {
	engine := NewEngine()
	records := []Record{
		rec("S", QuarterMidterm, ActivityQuiz, ModeF2F, 18, 20),
		rec("S", QuarterMidterm, ActivityExam, ModeF2F, 40, 50),
		rec("S", QuarterMidterm, ActivityQuiz, ModeOnline, 9, 10),
	}

	report := engine.ScopeReport("S", QuarterMidterm, records)
	require.True(t, report.HasData)

	quiz := report.Activities[ActivityQuiz].PartialGrades
	assert.Equal(t, 90.0, quiz.FaceToFace.Percentage)
	assert.Equal(t, 90.0, quiz.Online.Percentage)
	assert.Equal(t, 80.0, report.Activities[ActivityExam].PartialGrades.FaceToFace.Percentage)
	assert.Zero(t, report.Activities[ActivityAssignment].PartialGrades.FaceToFace.Percentage)
	assert.Zero(t, report.Activities[ActivityProject].PartialGrades.Online.Percentage)

	assert.Equal(t, 42.5, report.Overall.AvgF2FPercent)
	assert.Equal(t, 22.5, report.Overall.AvgOnlinePercent)
	assert.Equal(t, SomeScore(34.5), report.Overall.RawScore)
	assert.Equal(t, SomeGrade(5.00), report.Overall.FinalGrade)

	assert.Equal(t, SomeScore(42.5), report.F2F.RawScore)
	assert.Equal(t, SomeGrade(5.00), report.F2F.FinalGrade)
	assert.Equal(t, SomeScore(22.5), report.Online.RawScore)
}

func TestScopeReportEmpty(t *testing.T) {
	report := NewEngine().ScopeReport("S", QuarterFinal, nil)

	assert.False(t, report.HasData)
	assert.Len(t, report.Activities, 4)
	assert.False(t, report.F2F.FinalGrade.Valid)
	assert.False(t, report.Online.FinalGrade.Valid)
	assert.False(t, report.Overall.FinalGrade.Valid)
	assert.False(t, report.Overall.RawScore.Valid)

	payload, err := json.Marshal(report.Overall)
	require.NoError(t, err)
	assert.JSONEq(t, `{"avg_f2f_percent":0,"avg_online_percent":0,"raw_score":"No Data","final_grade":"No Grade"}`, string(payload))
}

func TestScopeReportEmptyBreakdownPercentages(t *testing.T) {
	report := NewEngine().ScopeReport("S", QuarterPreliminary, nil)

	for _, breakdown := range []ModeBreakdown{report.F2F, report.Online} {
		assert.Zero(t, breakdown.AvgPercent)
		assert.False(t, breakdown.RawScore.Valid)
		assert.False(t, breakdown.FinalGrade.Valid)

		payload, err := json.Marshal(breakdown)
		require.NoError(t, err)
		assert.JSONEq(t, `{"avg_percent":0,"raw_score":"No Data","final_grade":"No Grade"}`, string(payload))
	}

	graded := NewEngine().ScopeReport("S", QuarterPreliminary, []Record{rec("S", QuarterPreliminary, ActivityQuiz, ModeF2F, 0, 10)})
	assert.True(t, graded.HasData)
	assert.Zero(t, graded.F2F.AvgPercent)
	assert.Equal(t, SomeScore(0), graded.F2F.RawScore)
	assert.Equal(t, SomeGrade(5.00), graded.F2F.FinalGrade)
}

func TestScopeReportBlend(t *testing.T) {
	engine := NewEngine()
	var f2fOnly, onlineOnly []Record
	for _, a := range ActivityTypes() {
		f2fOnly = append(f2fOnly, rec("S", QuarterFinal, a, ModeF2F, 10, 10))
		onlineOnly = append(onlineOnly, rec("S", QuarterFinal, a, ModeOnline, 10, 10))
	}

	report := engine.ScopeReport("S", QuarterFinal, f2fOnly)
	assert.Equal(t, SomeScore(60.0), report.Overall.RawScore)
	assert.Equal(t, SomeGrade(1.00), report.F2F.FinalGrade)
	assert.Equal(t, SomeGrade(5.00), report.Online.FinalGrade)

	report = engine.ScopeReport("S", QuarterFinal, onlineOnly)
	assert.Equal(t, SomeScore(40.0), report.Overall.RawScore)
}

func TestScopeReportIdempotent(t *testing.T) {
	engine := NewEngine()
	records := []Record{
		rec("S", QuarterPreliminary, ActivityQuiz, ModeF2F, 7, 9),
		rec("S", QuarterPreliminary, ActivityProject, ModeOnline, 33, 40),
	}

	first, err := json.Marshal(engine.ScopeReport("S", QuarterPreliminary, records))
	require.NoError(t, err)
	second, err := json.Marshal(engine.ScopeReport("S", QuarterPreliminary, records))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScopeReportRounding(t *testing.T) {
	records := []Record{rec("S", QuarterMidterm, ActivityQuiz, ModeF2F, 1, 3)}

	report := NewEngine().ScopeReport("S", QuarterMidterm, records)
	assert.Equal(t, 33.33, report.Activities[ActivityQuiz].PartialGrades.FaceToFace.Percentage)
	assert.Equal(t, 8.3333, report.F2F.RawScore.Value)
	assert.Equal(t, 5.0, report.Overall.RawScore.Value)
}

func TestEngineOptions(t *testing.T) {
	scale, err := NewScale([]Step{{MinPercent: 50, Grade: 1}}, 2)
	require.NoError(t, err)
	engine := NewEngine(WithScale(scale), WithModeWeights(ModeWeights{F2F: 1, Online: 1}), WithPassingGrade(1.5))

	assert.Equal(t, 50.0, engine.Blend(100, 0))
	assert.Equal(t, 1.5, engine.PassingGrade())

	var records []Record
	for _, a := range ActivityTypes() {
		records = append(records, rec("S", QuarterFinal, a, ModeF2F, 10, 10))
	}
	report := engine.ScopeReport("S", QuarterFinal, records)
	assert.Equal(t, SomeScore(50.0), report.Overall.RawScore)
	assert.Equal(t, SomeGrade(1), report.Overall.FinalGrade)
}

func TestEngineIgnoresInvalidOptions(t *testing.T) {
	engine := NewEngine(WithScale(Scale{}), WithModeWeights(ModeWeights{}), WithPassingGrade(-1))

	assert.Equal(t, DefaultScale().Steps(), engine.Scale().Steps())
	assert.Equal(t, ModeWeights{F2F: 0.60, Online: 0.40}, engine.Weights())
	assert.Equal(t, 3.0, engine.PassingGrade())
}

func TestScopeReportActivityLookup(t *testing.T) {
	report := NewEngine().ScopeReport("S", QuarterFinal, nil)

	_, err := report.Activity(ActivityExam)
	assert.NoError(t, err)
	_, err = report.Activity(ActivityType("lab"))
	assert.Error(t, err)
}
