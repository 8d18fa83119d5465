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

const subjectSelect = `SELECT s.id, s.user_id, s.name, s.color, s.target_grade, COUNT(a.id) AS assessment_count, s.created_at, s.updated_at
FROM subjects s
LEFT JOIN assessments a ON a.subject_id = s.id`

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns one page of the user's subjects ordered by name, optionally filtered by a
// case-insensitive name fragment, together with the total match count.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	where := "WHERE s.user_id = $1"
	args := []interface{}{filter.UserID}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND LOWER(s.name) LIKE $%d", len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("%s %s GROUP BY s.id ORDER BY s.name ASC LIMIT %d OFFSET %d", subjectSelect, where, size, offset)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM subjects s %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}
	return subjects, total, nil
}

// ListAll returns every subject of the user ordered by name.
func (r *SubjectRepository) ListAll(ctx context.Context, userID string) ([]models.Subject, error) {
	query := subjectSelect + ` WHERE s.user_id = $1 GROUP BY s.id ORDER BY s.name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, userID); err != nil {
		return nil, fmt.Errorf("list all subjects: %w", err)
	}
	return subjects, nil
}

// FindByUser returns the subject only when it belongs to userID.
func (r *SubjectRepository) FindByUser(ctx context.Context, userID, id string) (*models.Subject, error) {
	query := subjectSelect + ` WHERE s.id = $1 AND s.user_id = $2 GROUP BY s.id`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id, userID); err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Create inserts a subject, assigning its id and timestamps.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (id, user_id, name, color, target_grade, created_at, updated_at) VALUES (:id, :user_id, :name, :color, :target_grade, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields. It returns sql.ErrNoRows when the subject is not the user's.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, color = :color, target_grade = :target_grade, updated_at = :updated_at WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, subject)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update subject: %w", err)
	}
	return requireAffected(res, "update subject")
}

// Delete removes the subject; assessments cascade.
func (r *SubjectRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM subjects WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("delete subject: %w", err)
	}
	return requireAffected(res, "delete subject")
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
