package models

import "time"

// TodoPriority ranks a todo item.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Todo is a study task, optionally tied to one of the user's subjects.
type Todo struct {
	ID          string       `db:"id" json:"id"`
	UserID      string       `db:"user_id" json:"user_id"`
	SubjectID   *string      `db:"subject_id" json:"subject_id"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description"`
	DueDate     *time.Time   `db:"due_date" json:"due_date"`
	Priority    TodoPriority `db:"priority" json:"priority"`
	Completed   bool         `db:"completed" json:"completed"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// CreateTodoRequest is the payload for adding a todo.
type CreateTodoRequest struct {
	SubjectID   *string    `json:"subject_id"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   bool       `json:"completed"`
}

// UpdateTodoRequest applies a partial update; nil fields are left unchanged.
type UpdateTodoRequest struct {
	SubjectID   *string    `json:"subject_id"`
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *bool      `json:"completed"`
}
