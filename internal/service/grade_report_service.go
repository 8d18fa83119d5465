package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

const (
	reportKindScope   = "scope"
	reportKindQuarter = "quarter"
	reportKindSubject = "subject"
	reportKindOverall = "overall"

	noSubjectsMessage = "No subjects found"
)

type reportSubjectRepository interface {
	ListAll(ctx context.Context, userID string) ([]models.Subject, error)
	FindByUser(ctx context.Context, userID, id string) (*models.Subject, error)
}

type reportAssessmentRepository interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) (int, error)
}

// ActivityBreakdown is the single-activity slice of a scope report.
type ActivityBreakdown struct {
	SubjectID     string                `json:"subject_id"`
	Quarter       grading.Quarter       `json:"quarter"`
	Activity      grading.ActivityType  `json:"activity"`
	PartialGrades grading.PartialGrades `json:"partial_grades"`
}

// OverallReportResult carries an explanatory message when the user has no subjects.
type OverallReportResult struct {
	grading.OverallReport
	Message string `json:"message,omitempty"`
}

// GradeReportService loads a user's assessments and runs them through the grading engine.
// Reports are cached per user when a cache is configured and dropped on every write.
type GradeReportService struct {
	subjects    reportSubjectRepository
	assessments reportAssessmentRepository
	engine      *grading.Engine
	cache       reportCache
	metrics     *MetricsService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewGradeReportService wires the report service. cache and metrics may be nil.
func NewGradeReportService(subjects reportSubjectRepository, assessments reportAssessmentRepository, engine *grading.Engine,
	cache reportCache, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *GradeReportService {
	if engine == nil {
		engine = grading.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeReportService{
		subjects:    subjects,
		assessments: assessments,
		engine:      engine,
		cache:       cache,
		metrics:     metrics,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ScopeReport computes the per-activity and per-mode breakdown of one subject in one quarter.
func (s *GradeReportService) ScopeReport(ctx context.Context, userID, rawQuarter, subjectID string) (*grading.ScopeReport, error) {
	quarter, err := parseQuarter(rawQuarter)
	if err != nil {
		return nil, err
	}

	var report grading.ScopeReport
	key := cacheKey(userID, reportKindScope, string(quarter), subjectID)
	err = s.cached(ctx, key, reportKindScope, &report, func() error {
		if _, err := s.subject(ctx, userID, subjectID); err != nil {
			return err
		}
		records, err := s.records(ctx, models.AssessmentFilter{UserID: userID, SubjectID: subjectID, Quarter: quarter})
		if err != nil {
			return err
		}
		report = s.engine.ScopeReport(subjectID, quarter, records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ActivityBreakdown returns the face-to-face and online partials of one activity type.
func (s *GradeReportService) ActivityBreakdown(ctx context.Context, userID, rawQuarter, subjectID, rawActivity string) (*ActivityBreakdown, error) {
	activity, err := parseActivity(rawActivity)
	if err != nil {
		return nil, err
	}
	scope, err := s.ScopeReport(ctx, userID, rawQuarter, subjectID)
	if err != nil {
		return nil, err
	}
	entry, err := scope.Activity(activity)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return &ActivityBreakdown{
		SubjectID:     subjectID,
		Quarter:       scope.Quarter,
		Activity:      activity,
		PartialGrades: entry.PartialGrades,
	}, nil
}

// QuarterReport grades every subject of the user within one quarter.
func (s *GradeReportService) QuarterReport(ctx context.Context, userID, rawQuarter string) (*grading.QuarterReport, error) {
	quarter, err := parseQuarter(rawQuarter)
	if err != nil {
		return nil, err
	}

	var report grading.QuarterReport
	err = s.cached(ctx, cacheKey(userID, reportKindQuarter, string(quarter)), reportKindQuarter, &report, func() error {
		subjects, err := s.allSubjects(ctx, userID)
		if err != nil {
			return err
		}
		records, err := s.records(ctx, models.AssessmentFilter{UserID: userID, Quarter: quarter})
		if err != nil {
			return err
		}
		report = s.engine.QuarterReport(quarter, subjects, records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// SubjectReport grades one subject across all four quarters.
func (s *GradeReportService) SubjectReport(ctx context.Context, userID, subjectID string) (*grading.SubjectReport, error) {
	var report grading.SubjectReport
	err := s.cached(ctx, cacheKey(userID, reportKindSubject, subjectID), reportKindSubject, &report, func() error {
		subject, err := s.subject(ctx, userID, subjectID)
		if err != nil {
			return err
		}
		records, err := s.records(ctx, models.AssessmentFilter{UserID: userID, SubjectID: subjectID})
		if err != nil {
			return err
		}
		report = s.engine.SubjectReport(grading.Subject{ID: subject.ID, Name: subject.Name}, records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// OverallReport grades every subject across every quarter.
func (s *GradeReportService) OverallReport(ctx context.Context, userID string) (*OverallReportResult, error) {
	var result OverallReportResult
	err := s.cached(ctx, cacheKey(userID, reportKindOverall), reportKindOverall, &result, func() error {
		subjects, err := s.allSubjects(ctx, userID)
		if err != nil {
			return err
		}
		var records []grading.Record
		if len(subjects) > 0 {
			records, err = s.records(ctx, models.AssessmentFilter{UserID: userID})
			if err != nil {
				return err
			}
		}
		result = OverallReportResult{OverallReport: s.engine.OverallReport(subjects, records)}
		if len(subjects) == 0 {
			result.Message = noSubjectsMessage
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// InvalidateUser drops every cached report of the user. Failures are logged only.
func (s *GradeReportService) InvalidateUser(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	removed, err := s.cache.Invalidate(ctx, cacheKey(userID, "*"))
	if err != nil {
		s.logger.Warn("failed to invalidate grade reports", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Debug("grade reports invalidated", zap.String("user_id", userID), zap.Int("removed", removed))
	}
}

// cached serves dest from the cache or runs build and stores the result. Cache failures never fail the request.
func (s *GradeReportService) cached(ctx context.Context, key, kind string, dest interface{}, build func() error) error {
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, dest)
		if err == nil && hit {
			return nil
		}
	}

	start := time.Now()
	if err := build(); err != nil {
		return err
	}
	s.metrics.ObserveReportBuild(kind, time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dest, s.cacheTTL); err != nil {
			s.logger.Debug("grade report not cached", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *GradeReportService) subject(ctx context.Context, userID, subjectID string) (*models.Subject, error) {
	subject, err := s.subjects.FindByUser(ctx, userID, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

func (s *GradeReportService) allSubjects(ctx context.Context, userID string) ([]grading.Subject, error) {
	rows, err := s.subjects.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	out := make([]grading.Subject, len(rows))
	for i, row := range rows {
		out[i] = grading.Subject{ID: row.ID, Name: row.Name}
	}
	return out, nil
}

func (s *GradeReportService) records(ctx context.Context, filter models.AssessmentFilter) ([]grading.Record, error) {
	rows, err := s.assessments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	return models.Records(rows), nil
}

func cacheKey(userID string, parts ...string) string {
	key := fmt.Sprintf("grades:%s", userID)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
