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

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByUser(ctx context.Context, userID, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, userID, id string) error
}

// reportInvalidator drops cached grade reports after writes that change them.
type reportInvalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// SubjectService handles subject domain workflows.
type SubjectService struct {
	repo        subjectRepository
	invalidator reportInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSubjectService creates a new subject service. invalidator may be nil.
func NewSubjectService(repo subjectRepository, invalidator reportInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, invalidator: invalidator, validator: validate, logger: logger}
}

// List returns paginated subjects of the user.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return subjects, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Search lists subjects whose name contains the fragment. An empty fragment is a validation error.
func (s *SubjectService) Search(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Search == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "name query parameter is required")
	}
	return s.List(ctx, filter)
}

// Get returns the user's subject.
func (s *SubjectService) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject for the user.
func (s *SubjectService) Create(ctx context.Context, userID string, req models.CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject := &models.Subject{UserID: userID, Name: req.Name, Color: req.Color, TargetGrade: req.TargetGrade}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.invalidate(ctx, userID)
	return subject, nil
}

// Update applies the non-nil fields of req.
func (s *SubjectService) Update(ctx context.Context, userID, id string, req models.UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be blank")
		}
		subject.Name = name
	}
	if req.Color != nil {
		subject.Color = req.Color
	}
	if req.TargetGrade != nil {
		subject.TargetGrade = req.TargetGrade
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	s.invalidate(ctx, userID)
	return subject, nil
}

// Delete removes the subject together with its assessments.
func (s *SubjectService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.logger.Info("subject deleted", zap.String("user_id", userID), zap.String("subject_id", id))
	s.invalidate(ctx, userID)
	return nil
}

func (s *SubjectService) invalidate(ctx context.Context, userID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(ctx, userID)
	}
}
