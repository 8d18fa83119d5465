package grading

import "fmt"

// Status summarises whether a subject is passing.
type Status string

const (
	StatusPassing     Status = "Passing"
	StatusFailed      Status = "Failed"
	StatusNoGrade     Status = "No Grade"
	StatusNoGradesYet Status = "No Grades Yet"
)

// Subject identifies a subject owned by the user being reported on.
type Subject struct {
	ID   string
	Name string
}

// SubjectQuarterSummary is one subject's line in a quarter-wide report.
type SubjectQuarterSummary struct {
	SubjectID string      `json:"subject_id"`
	Status    Status      `json:"status"`
	F2F       GradeResult `json:"f2f_breakdown"`
	Online    GradeResult `json:"online_breakdown"`
	Overall   GradeResult `json:"overall_breakdown"`
}

// QuarterReport covers every subject of a user within one quarter.
type QuarterReport struct {
	Quarter        Quarter                          `json:"quarter"`
	Subjects       map[string]SubjectQuarterSummary `json:"subjects"`
	OverallAverage Average                          `json:"overall_average"`
}

// QuarterGrades is the mode breakdown of one subject in one quarter.
type QuarterGrades struct {
	F2F     GradeResult `json:"f2f"`
	Online  GradeResult `json:"online"`
	Overall GradeResult `json:"overall"`
}

// SubjectReport covers one subject across every quarter.
type SubjectReport struct {
	SubjectID           string                    `json:"subject_id"`
	SubjectName         string                    `json:"subject_name"`
	Quarters            map[Quarter]QuarterGrades `json:"quarters"`
	SubjectFinalAverage Average                   `json:"subject_final_average"`
	Status              Status                    `json:"status"`
}

// SubjectTermSummary is one subject's line in the all-quarters report.
type SubjectTermSummary struct {
	SubjectID           string                    `json:"subject_id"`
	Quarters            map[Quarter]QuarterGrades `json:"quarters"`
	SubjectFinalAverage Average                   `json:"subject_final_average"`
	Status              Status                    `json:"status"`
}

// OverallReport covers every subject of a user across every quarter.
type OverallReport struct {
	Quarters       []Quarter                     `json:"quarters"`
	Subjects       map[string]SubjectTermSummary `json:"subjects"`
	OverallAverage Average                       `json:"overall_average"`
}

// QuarterReport builds the cross-subject report for one quarter. Subjects without records
// are listed with StatusNoGrade and excluded from the overall average.
func (e *Engine) QuarterReport(quarter Quarter, subjects []Subject, records []Record) QuarterReport {
	bySubject := groupBySubject(filterQuarter(records, quarter))

	report := QuarterReport{
		Quarter:  quarter,
		Subjects: make(map[string]SubjectQuarterSummary, len(subjects)),
	}
	graded := make([]FinalGrade, 0, len(subjects))
	for _, subject := range subjects {
		scope := e.ScopeReport(subject.ID, quarter, bySubject[subject.ID])
		status := StatusNoGrade
		if scope.HasData {
			status = e.status(scope.Overall.FinalGrade.Value)
		}
		graded = append(graded, scope.Overall.FinalGrade)
		report.Subjects[subjectKey(report.Subjects, subject)] = SubjectQuarterSummary{
			SubjectID: subject.ID,
			Status:    status,
			F2F:       scope.F2FResult(),
			Online:    scope.OnlineResult(),
			Overall:   scope.OverallResult(),
		}
	}
	report.OverallAverage = averageGraded(graded)
	return report
}

// SubjectReport builds the longitudinal report of one subject. Records of other subjects are
// ignored. Quarters without records do not count towards the subject final average.
func (e *Engine) SubjectReport(subject Subject, records []Record) SubjectReport {
	quartersMap, average := e.subjectTerm(subject, filterSubject(records, subject.ID))
	return SubjectReport{
		SubjectID:           subject.ID,
		SubjectName:         subject.Name,
		Quarters:            quartersMap,
		SubjectFinalAverage: average,
		Status:              e.termStatus(average),
	}
}

// OverallReport builds the all-subjects, all-quarters report. The overall average is taken
// over subjects with at least one graded quarter.
func (e *Engine) OverallReport(subjects []Subject, records []Record) OverallReport {
	bySubject := groupBySubject(records)

	report := OverallReport{
		Quarters: Quarters(),
		Subjects: make(map[string]SubjectTermSummary, len(subjects)),
	}
	averages := make([]FinalGrade, 0, len(subjects))
	for _, subject := range subjects {
		quartersMap, average := e.subjectTerm(subject, bySubject[subject.ID])
		averages = append(averages, FinalGrade(average))
		report.Subjects[subjectKey(report.Subjects, subject)] = SubjectTermSummary{
			SubjectID:           subject.ID,
			Quarters:            quartersMap,
			SubjectFinalAverage: average,
			Status:              e.termStatus(average),
		}
	}
	report.OverallAverage = averageGraded(averages)
	return report
}

func (e *Engine) subjectTerm(subject Subject, records []Record) (map[Quarter]QuarterGrades, Average) {
	byQuarter := groupByQuarter(records)
	out := make(map[Quarter]QuarterGrades, len(quarters))
	graded := make([]FinalGrade, 0, len(quarters))
	for _, quarter := range quarters {
		scope := e.ScopeReport(subject.ID, quarter, byQuarter[quarter])
		out[quarter] = QuarterGrades{
			F2F:     scope.F2FResult(),
			Online:  scope.OnlineResult(),
			Overall: scope.OverallResult(),
		}
		graded = append(graded, scope.Overall.FinalGrade)
	}
	return out, averageGraded(graded)
}

func (e *Engine) status(grade float64) Status {
	if grade <= e.passing {
		return StatusPassing
	}
	return StatusFailed
}

func (e *Engine) termStatus(average Average) Status {
	if !average.Valid {
		return StatusNoGradesYet
	}
	return e.status(average.Value)
}

// averageGraded is the shared exclusion policy: absent grades leave the denominator.
func averageGraded(grades []FinalGrade) Average {
	var sum float64
	var n int
	for _, g := range grades {
		if !g.Valid {
			continue
		}
		sum += g.Value
		n++
	}
	if n == 0 {
		return Average{}
	}
	return Average{Value: round(sum/float64(n), rawScorePlaces), Valid: true}
}

func filterSubject(records []Record, subjectID string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.SubjectID == subjectID {
			out = append(out, rec)
		}
	}
	return out
}

func filterQuarter(records []Record, quarter Quarter) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Quarter == quarter {
			out = append(out, rec)
		}
	}
	return out
}

// subjectKey keys reports by subject name, falling back to name plus id when two subjects
// share a name.
func subjectKey[V any](existing map[string]V, subject Subject) string {
	key := subject.Name
	if key == "" {
		key = subject.ID
	}
	if _, taken := existing[key]; taken {
		key = fmt.Sprintf("%s (%s)", key, subject.ID)
	}
	return key
}
