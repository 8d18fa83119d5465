package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

type todoRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	FindByUser(ctx context.Context, userID, id string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, userID, id string) error
}

// TodoService manages study tasks.
type TodoService struct {
	repo      todoRepository
	subjects  subjectLookup
	validator *validator.Validate
	logger    *zap.Logger
}

func NewTodoService(repo todoRepository, subjects subjectLookup, validate *validator.Validate, logger *zap.Logger) *TodoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

func (s *TodoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list todos")
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	todo, err := s.repo.FindByUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load todo")
	}
	return todo, nil
}

// Create adds a todo. Priority defaults to medium.
func (s *TodoService) Create(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error) {
	req.Title = strings.TrimSpace(req.Title)
	normaliseEnum(&req.Priority)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid todo payload")
	}
	if req.SubjectID != nil && *req.SubjectID == "" {
		req.SubjectID = nil
	}
	if err := s.ensureSubject(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	priority := models.TodoPriority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	todo := &models.Todo{
		UserID:      userID,
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Completed:   req.Completed,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create todo")
	}
	return todo, nil
}

// Update applies the non-nil fields of req.
func (s *TodoService) Update(ctx context.Context, userID, id string, req models.UpdateTodoRequest) (*models.Todo, error) {
	normaliseEnum(req.Priority)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid todo payload")
	}

	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	switch {
	case req.SubjectID == nil:
	case *req.SubjectID == "":
		todo.SubjectID = nil
	default:
		if err := s.ensureSubject(ctx, userID, req.SubjectID); err != nil {
			return nil, err
		}
		todo.SubjectID = req.SubjectID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title must not be blank")
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = req.Description
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Priority != nil {
		todo.Priority = models.TodoPriority(*req.Priority)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update todo")
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete todo")
	}
	return nil
}

func (s *TodoService) ensureSubject(ctx context.Context, userID string, subjectID *string) error {
	if subjectID == nil || *subjectID == "" {
		return nil
	}
	if _, err := s.subjects.FindByUser(ctx, userID, *subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return nil
}
