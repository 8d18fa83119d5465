package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gradetrack-api/internal/models"
)

const assessmentColumns = `id, user_id, subject_id, name_assessment, type_quarter, type_activity, mode, score, total_items, date_taken, created_at, updated_at`

// AssessmentRepository handles persistence for assessments.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new repository instance.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// List returns the user's assessments matching filter, newest first.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.Quarter != "" {
		conditions = append(conditions, fmt.Sprintf("type_quarter = $%d", len(args)+1))
		args = append(args, filter.Quarter)
	}
	if filter.ActivityType != "" {
		conditions = append(conditions, fmt.Sprintf("type_activity = $%d", len(args)+1))
		args = append(args, filter.ActivityType)
	}
	if filter.Mode != "" {
		conditions = append(conditions, fmt.Sprintf("mode = $%d", len(args)+1))
		args = append(args, filter.Mode)
	}

	query := fmt.Sprintf("SELECT %s FROM assessments WHERE %s ORDER BY date_taken DESC NULLS LAST, created_at DESC",
		assessmentColumns, strings.Join(conditions, " AND "))
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		if errors.Is(notFoundOnBadID(err), sql.ErrNoRows) {
			return []models.Assessment{}, nil
		}
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// FindByUser returns the assessment only when it belongs to userID.
func (r *AssessmentRepository) FindByUser(ctx context.Context, userID, id string) (*models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = $1 AND user_id = $2 LIMIT 1`
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id, userID); err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find assessment: %w", err)
	}
	return &assessment, nil
}

// Create inserts an assessment, assigning its id and timestamps.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	const query = `INSERT INTO assessments (id, user_id, subject_id, name_assessment, type_quarter, type_activity, mode, score, total_items, date_taken, created_at, updated_at)
VALUES (:id, :user_id, :subject_id, :name_assessment, :type_quarter, :type_activity, :mode, :score, :total_items, :date_taken, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields. It returns sql.ErrNoRows when the assessment is not the user's.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assessments SET subject_id = :subject_id, name_assessment = :name_assessment, type_quarter = :type_quarter,
type_activity = :type_activity, mode = :mode, score = :score, total_items = :total_items, date_taken = :date_taken, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, assessment)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update assessment: %w", err)
	}
	return requireAffected(res, "update assessment")
}

// Delete removes the user's assessment.
func (r *AssessmentRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM assessments WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("delete assessment: %w", err)
	}
	return requireAffected(res, "delete assessment")
}
