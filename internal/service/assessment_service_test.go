package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

type mockAssessmentRepo struct {
	items   map[string]*models.Assessment
	order   []string
	nextID  int
	filters []models.AssessmentFilter
}

func newMockAssessmentRepo(items ...models.Assessment) *mockAssessmentRepo {
	repo := &mockAssessmentRepo{items: map[string]*models.Assessment{}}
	for i := range items {
		a := items[i]
		repo.items[a.ID] = &a
		repo.order = append(repo.order, a.ID)
	}
	return repo
}

func (m *mockAssessmentRepo) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	m.filters = append(m.filters, filter)
	var out []models.Assessment
	for _, id := range m.order {
		a, ok := m.items[id]
		if !ok || a.UserID != filter.UserID {
			continue
		}
		if filter.SubjectID != "" && a.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Quarter != "" && a.TypeQuarter != filter.Quarter {
			continue
		}
		if filter.ActivityType != "" && a.TypeActivity != filter.ActivityType {
			continue
		}
		if filter.Mode != "" && a.Mode != filter.Mode {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAssessmentRepo) FindByUser(ctx context.Context, userID, id string) (*models.Assessment, error) {
	a, ok := m.items[id]
	if !ok || a.UserID != userID {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (m *mockAssessmentRepo) Create(ctx context.Context, assessment *models.Assessment) error {
	m.nextID++
	assessment.ID = fmt.Sprintf("assessment-%d", m.nextID)
	copied := *assessment
	m.items[assessment.ID] = &copied
	m.order = append(m.order, assessment.ID)
	return nil
}

func (m *mockAssessmentRepo) Update(ctx context.Context, assessment *models.Assessment) error {
	if _, ok := m.items[assessment.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *assessment
	m.items[assessment.ID] = &copied
	return nil
}

func (m *mockAssessmentRepo) Delete(ctx context.Context, userID, id string) error {
	a, ok := m.items[id]
	if !ok || a.UserID != userID {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func assessmentFixture(id, subjectID string, q grading.Quarter, a grading.ActivityType, mode grading.Mode, score, items float64) models.Assessment {
	return models.Assessment{
		ID: id, UserID: "user-1", SubjectID: subjectID, NameAssessment: id,
		TypeQuarter: q, TypeActivity: a, Mode: mode, Score: score, TotalItems: items,
	}
}

func newAssessmentServiceForTest(items ...models.Assessment) (*AssessmentService, *mockAssessmentRepo, *recordingInvalidator) {
	subjects := newMockSubjectRepo(
		models.Subject{ID: "s1", UserID: "user-1", Name: "Algebra"},
		models.Subject{ID: "s2", UserID: "user-2", Name: "Foreign"},
	)
	repo := newMockAssessmentRepo(items...)
	inv := &recordingInvalidator{}
	return NewAssessmentService(repo, subjects, inv, nil, nil), repo, inv
}

func TestAssessmentServiceCreate(t *testing.T) {
	svc, repo, inv := newAssessmentServiceForTest()

	assessment, err := svc.Create(context.Background(), "user-1", models.CreateAssessmentRequest{
		SubjectID:      "s1",
		NameAssessment: " Quiz 1 ",
		TypeQuarter:    "Midterm",
		TypeActivity:   " QUIZ",
		Mode:           "f2f",
		Score:          floatPtr(18),
		TotalItems:     floatPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "Quiz 1", assessment.NameAssessment)
	assert.Equal(t, grading.QuarterMidterm, assessment.TypeQuarter)
	assert.Equal(t, grading.ActivityQuiz, assessment.TypeActivity)
	assert.Equal(t, 18.0, repo.items[assessment.ID].Score)
	assert.Equal(t, []string{"user-1"}, inv.users)
}

func TestAssessmentServiceCreateValidation(t *testing.T) {
	svc, _, inv := newAssessmentServiceForTest()
	base := models.CreateAssessmentRequest{
		SubjectID: "s1", NameAssessment: "Quiz", TypeQuarter: "final", TypeActivity: "quiz", Mode: "online",
		Score: floatPtr(1), TotalItems: floatPtr(2),
	}

	bad := base
	bad.TypeQuarter = "summer"
	_, err := svc.Create(context.Background(), "user-1", bad)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	bad = base
	bad.Mode = "hybrid"
	_, err = svc.Create(context.Background(), "user-1", bad)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	bad = base
	bad.Score = floatPtr(-1)
	_, err = svc.Create(context.Background(), "user-1", bad)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	bad = base
	bad.TotalItems = nil
	_, err = svc.Create(context.Background(), "user-1", bad)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	assert.Empty(t, inv.users)
}

func TestAssessmentServiceCreateAllowsZeroItemsAndOverflow(t *testing.T) {
	svc, _, _ := newAssessmentServiceForTest()

	assessment, err := svc.Create(context.Background(), "user-1", models.CreateAssessmentRequest{
		SubjectID: "s1", NameAssessment: "Bonus", TypeQuarter: "final", TypeActivity: "exam", Mode: "f2f",
		Score: floatPtr(60), TotalItems: floatPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, assessment.Score)

	_, err = svc.Create(context.Background(), "user-1", models.CreateAssessmentRequest{
		SubjectID: "s1", NameAssessment: "Empty", TypeQuarter: "final", TypeActivity: "exam", Mode: "f2f",
		Score: floatPtr(0), TotalItems: floatPtr(0),
	})
	assert.NoError(t, err)
}

func TestAssessmentServiceCreateForeignSubject(t *testing.T) {
	svc, _, _ := newAssessmentServiceForTest()

	_, err := svc.Create(context.Background(), "user-1", models.CreateAssessmentRequest{
		SubjectID: "s2", NameAssessment: "Quiz", TypeQuarter: "final", TypeActivity: "quiz", Mode: "f2f",
		Score: floatPtr(1), TotalItems: floatPtr(1),
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAssessmentServiceListByQuarter(t *testing.T) {
	svc, repo, _ := newAssessmentServiceForTest(
		assessmentFixture("a1", "s1", grading.QuarterMidterm, grading.ActivityQuiz, grading.ModeF2F, 5, 10),
		assessmentFixture("a2", "s1", grading.QuarterFinal, grading.ActivityExam, grading.ModeOnline, 7, 10),
	)

	items, err := svc.ListByQuarter(context.Background(), "user-1", "MIDTERM")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, grading.QuarterMidterm, repo.filters[0].Quarter)

	_, err = svc.ListByQuarter(context.Background(), "user-1", "pre_final")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.ListByQuarter(context.Background(), "user-1", "fifth")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAssessmentServiceListActivities(t *testing.T) {
	svc, _, _ := newAssessmentServiceForTest(
		assessmentFixture("a1", "s1", grading.QuarterMidterm, grading.ActivityQuiz, grading.ModeF2F, 5, 10),
	)

	items, err := svc.ListActivities(context.Background(), "user-1", "midterm", "s1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListActivities(context.Background(), "user-1", "final", "s1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.ListActivities(context.Background(), "user-1", "midterm", "s2")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAssessmentServiceListEmpty(t *testing.T) {
	svc, _, _ := newAssessmentServiceForTest()

	items, err := svc.List(context.Background(), models.AssessmentFilter{UserID: "user-1"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAssessmentServiceUpdate(t *testing.T) {
	svc, repo, inv := newAssessmentServiceForTest(
		assessmentFixture("a1", "s1", grading.QuarterMidterm, grading.ActivityQuiz, grading.ModeF2F, 5, 10),
	)

	updated, err := svc.Update(context.Background(), "user-1", "a1", models.UpdateAssessmentRequest{
		Score: floatPtr(9), Mode: strPtr("ONLINE"),
	})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.Score)
	assert.Equal(t, grading.ModeOnline, repo.items["a1"].Mode)
	assert.Equal(t, 10.0, repo.items["a1"].TotalItems)
	assert.Equal(t, []string{"user-1"}, inv.users)

	_, err = svc.Update(context.Background(), "user-1", "a1", models.UpdateAssessmentRequest{SubjectID: strPtr("s2")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Update(context.Background(), "user-1", "a1", models.UpdateAssessmentRequest{TypeActivity: strPtr("lab")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Update(context.Background(), "user-2", "a1", models.UpdateAssessmentRequest{Score: floatPtr(1)})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAssessmentServiceDelete(t *testing.T) {
	svc, repo, inv := newAssessmentServiceForTest(
		assessmentFixture("a1", "s1", grading.QuarterMidterm, grading.ActivityQuiz, grading.ModeF2F, 5, 10),
	)

	assert.ErrorIs(t, svc.Delete(context.Background(), "user-1", "missing"), appErrors.ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), "user-1", "a1"))
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{"user-1"}, inv.users)
}
