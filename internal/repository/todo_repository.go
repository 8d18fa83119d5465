package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gradetrack-api/internal/models"
)

const todoColumns = `id, user_id, subject_id, title, description, due_date, priority, completed, created_at, updated_at`

// TodoRepository handles persistence for todos.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new repository instance.
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// ListByUser returns open todos first, then by due date.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY completed ASC, due_date ASC NULLS LAST, created_at DESC`
	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// FindByUser returns the todo only when it belongs to userID.
func (r *TodoRepository) FindByUser(ctx context.Context, userID, id string) (*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2 LIMIT 1`
	var todo models.Todo
	if err := r.db.GetContext(ctx, &todo, query, id, userID); err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	const query = `INSERT INTO todos (id, user_id, subject_id, title, description, due_date, priority, completed, created_at, updated_at)
VALUES (:id, :user_id, :subject_id, :title, :description, :due_date, :priority, :completed, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	const query = `UPDATE todos SET subject_id = :subject_id, title = :title, description = :description, due_date = :due_date,
priority = :priority, completed = :completed, updated_at = :updated_at WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update todo: %w", err)
	}
	return requireAffected(res, "update todo")
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM todos WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if err = notFoundOnBadID(err); errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireAffected(res, "delete todo")
}
