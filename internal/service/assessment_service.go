package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

type assessmentRepository interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error)
	FindByUser(ctx context.Context, userID, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, userID, id string) error
}

// subjectLookup confirms subject ownership.
type subjectLookup interface {
	FindByUser(ctx context.Context, userID, id string) (*models.Subject, error)
}

// AssessmentService handles recording and listing assessments.
type AssessmentService struct {
	repo        assessmentRepository
	subjects    subjectLookup
	invalidator reportInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssessmentService constructs an AssessmentService. invalidator may be nil.
func NewAssessmentService(repo assessmentRepository, subjects subjectLookup, invalidator reportInvalidator, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, subjects: subjects, invalidator: invalidator, validator: validate, logger: logger}
}

// List returns every assessment of the user, optionally narrowed by filter.
func (s *AssessmentService) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	assessments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	if assessments == nil {
		assessments = []models.Assessment{}
	}
	return assessments, nil
}

// ListByQuarter returns the user's assessments of one quarter. An empty result is a not-found error.
func (s *AssessmentService) ListByQuarter(ctx context.Context, userID, rawQuarter string) ([]models.Assessment, error) {
	quarter, err := parseQuarter(rawQuarter)
	if err != nil {
		return nil, err
	}
	assessments, err := s.List(ctx, models.AssessmentFilter{UserID: userID, Quarter: quarter})
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no assessments found for quarter %s", quarter))
	}
	return assessments, nil
}

// ListActivities returns the assessments of one subject in one quarter. An empty result is a not-found error.
func (s *AssessmentService) ListActivities(ctx context.Context, userID, rawQuarter, subjectID string) ([]models.Assessment, error) {
	quarter, err := parseQuarter(rawQuarter)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	assessments, err := s.List(ctx, models.AssessmentFilter{UserID: userID, SubjectID: subjectID, Quarter: quarter})
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no activities found for this subject and quarter")
	}
	return assessments, nil
}

// Get returns the user's assessment.
func (s *AssessmentService) Get(ctx context.Context, userID, id string) (*models.Assessment, error) {
	assessment, err := s.repo.FindByUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessment")
	}
	return assessment, nil
}

// Create records an assessment against one of the user's subjects.
func (s *AssessmentService) Create(ctx context.Context, userID string, req models.CreateAssessmentRequest) (*models.Assessment, error) {
	normaliseEnum(&req.TypeQuarter, &req.TypeActivity, &req.Mode)
	req.NameAssessment = strings.TrimSpace(req.NameAssessment)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	if err := s.ensureSubject(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	assessment := &models.Assessment{
		UserID:         userID,
		SubjectID:      req.SubjectID,
		NameAssessment: req.NameAssessment,
		TypeQuarter:    grading.Quarter(req.TypeQuarter),
		TypeActivity:   grading.ActivityType(req.TypeActivity),
		Mode:           grading.Mode(req.Mode),
		Score:          *req.Score,
		TotalItems:     *req.TotalItems,
		DateTaken:      req.DateTaken,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}
	s.invalidate(ctx, userID)
	return assessment, nil
}

// Update applies the non-nil fields of req.
func (s *AssessmentService) Update(ctx context.Context, userID, id string, req models.UpdateAssessmentRequest) (*models.Assessment, error) {
	normaliseEnum(req.TypeQuarter, req.TypeActivity, req.Mode)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	assessment, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.SubjectID != nil && *req.SubjectID != assessment.SubjectID {
		if err := s.ensureSubject(ctx, userID, *req.SubjectID); err != nil {
			return nil, err
		}
		assessment.SubjectID = *req.SubjectID
	}
	if req.NameAssessment != nil {
		name := strings.TrimSpace(*req.NameAssessment)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name_assessment must not be blank")
		}
		assessment.NameAssessment = name
	}
	if req.TypeQuarter != nil {
		assessment.TypeQuarter = grading.Quarter(*req.TypeQuarter)
	}
	if req.TypeActivity != nil {
		assessment.TypeActivity = grading.ActivityType(*req.TypeActivity)
	}
	if req.Mode != nil {
		assessment.Mode = grading.Mode(*req.Mode)
	}
	if req.Score != nil {
		assessment.Score = *req.Score
	}
	if req.TotalItems != nil {
		assessment.TotalItems = *req.TotalItems
	}
	if req.DateTaken != nil {
		assessment.DateTaken = req.DateTaken
	}

	if err := s.repo.Update(ctx, assessment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assessment")
	}
	s.invalidate(ctx, userID)
	return assessment, nil
}

// Delete removes the user's assessment.
func (s *AssessmentService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assessment")
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *AssessmentService) ensureSubject(ctx context.Context, userID, subjectID string) error {
	if _, err := s.subjects.FindByUser(ctx, userID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return nil
}

func (s *AssessmentService) invalidate(ctx context.Context, userID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(ctx, userID)
	}
}

// normaliseEnum lowercases and trims enum inputs in place, skipping nil pointers.
func normaliseEnum(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = strings.ToLower(strings.TrimSpace(*v))
		}
	}
}

func parseQuarter(raw string) (grading.Quarter, error) {
	quarter, err := grading.ParseQuarter(raw)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return quarter, nil
}

func parseActivity(raw string) (grading.ActivityType, error) {
	activity, err := grading.ParseActivityType(raw)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return activity, nil
}
