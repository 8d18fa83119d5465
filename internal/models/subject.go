package models

import "time"

// Subject is a course tracked by one user.
type Subject struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Name            string    `db:"name" json:"name"`
	Color           *string   `db:"color" json:"color"`
	TargetGrade     *float64  `db:"target_grade" json:"target_grade"`
	AssessmentCount int       `db:"assessment_count" json:"assessment_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	UserID   string
	Search   string
	Page     int
	PageSize int
}

// CreateSubjectRequest is the payload for adding a subject.
type CreateSubjectRequest struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Color       *string  `json:"color" validate:"omitempty,max=50"`
	TargetGrade *float64 `json:"target_grade" validate:"omitempty,gte=1,lte=5"`
}

// UpdateSubjectRequest applies a partial update; nil fields are left unchanged.
type UpdateSubjectRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=50"`
	Color       *string  `json:"color" validate:"omitempty,max=50"`
	TargetGrade *float64 `json:"target_grade" validate:"omitempty,gte=1,lte=5"`
}
