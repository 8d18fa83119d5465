package models

import (
	"time"

	"github.com/noah-isme/gradetrack-api/internal/grading"
)

// Assessment is one graded activity. Score may exceed TotalItems.
type Assessment struct {
	ID             string               `db:"id" json:"id"`
	UserID         string               `db:"user_id" json:"user_id"`
	SubjectID      string               `db:"subject_id" json:"subject_id"`
	NameAssessment string               `db:"name_assessment" json:"name_assessment"`
	TypeQuarter    grading.Quarter      `db:"type_quarter" json:"type_quarter"`
	TypeActivity   grading.ActivityType `db:"type_activity" json:"type_activity"`
	Mode           grading.Mode         `db:"mode" json:"mode"`
	Score          float64              `db:"score" json:"score"`
	TotalItems     float64              `db:"total_items" json:"total_items"`
	DateTaken      *time.Time           `db:"date_taken" json:"date_taken"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `db:"updated_at" json:"updated_at"`
}

// Record converts the row into the grading engine's input form.
func (a Assessment) Record() grading.Record {
	return grading.Record{
		SubjectID:    a.SubjectID,
		Quarter:      a.TypeQuarter,
		ActivityType: a.TypeActivity,
		Mode:         a.Mode,
		Score:        a.Score,
		TotalItems:   a.TotalItems,
		DateTaken:    a.DateTaken,
	}
}

// Records converts a batch of assessments.
func Records(assessments []Assessment) []grading.Record {
	out := make([]grading.Record, len(assessments))
	for i, a := range assessments {
		out[i] = a.Record()
	}
	return out
}

// AssessmentFilter narrows assessment listings. Empty fields do not filter.
type AssessmentFilter struct {
	UserID       string
	SubjectID    string
	Quarter      grading.Quarter
	ActivityType grading.ActivityType
	Mode         grading.Mode
}

// CreateAssessmentRequest is the payload for recording an assessment.
type CreateAssessmentRequest struct {
	SubjectID      string     `json:"subject_id" validate:"required"`
	NameAssessment string     `json:"name_assessment" validate:"required,max=255"`
	TypeQuarter    string     `json:"type_quarter" validate:"required,oneof=preliminary midterm pre_final final"`
	TypeActivity   string     `json:"type_activity" validate:"required,oneof=quiz exam assignment project"`
	Mode           string     `json:"mode" validate:"required,oneof=f2f online"`
	Score          *float64   `json:"score" validate:"required,gte=0"`
	TotalItems     *float64   `json:"total_items" validate:"required,gte=0"`
	DateTaken      *time.Time `json:"date_taken"`
}

// UpdateAssessmentRequest applies a partial update; nil fields are left unchanged.
type UpdateAssessmentRequest struct {
	SubjectID      *string    `json:"subject_id" validate:"omitempty,min=1"`
	NameAssessment *string    `json:"name_assessment" validate:"omitempty,min=1,max=255"`
	TypeQuarter    *string    `json:"type_quarter" validate:"omitempty,oneof=preliminary midterm pre_final final"`
	TypeActivity   *string    `json:"type_activity" validate:"omitempty,oneof=quiz exam assignment project"`
	Mode           *string    `json:"mode" validate:"omitempty,oneof=f2f online"`
	Score          *float64   `json:"score" validate:"omitempty,gte=0"`
	TotalItems     *float64   `json:"total_items" validate:"omitempty,gte=0"`
	DateTaken      *time.Time `json:"date_taken"`
}
