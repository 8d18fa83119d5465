package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

type subjectServiceMock struct {
	lastFilter models.SubjectFilter
	lastCreate models.CreateSubjectRequest
	lastUpdate models.UpdateSubjectRequest
	deleted    string
	err        error
}

func (m *subjectServiceMock) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, nil, m.err
	}
	return []models.Subject{{ID: "s1", UserID: filter.UserID, Name: "Algebra", AssessmentCount: 3}},
		&models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: 1}, nil
}

func (m *subjectServiceMock) Search(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	if filter.Search == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "name query parameter is required")
	}
	return m.List(ctx, filter)
}

func (m *subjectServiceMock) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	if id != "s1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &models.Subject{ID: id, UserID: userID, Name: "Algebra"}, nil
}

func (m *subjectServiceMock) Create(ctx context.Context, userID string, req models.CreateSubjectRequest) (*models.Subject, error) {
	m.lastCreate = req
	return &models.Subject{ID: "s2", UserID: userID, Name: req.Name}, m.err
}

func (m *subjectServiceMock) Update(ctx context.Context, userID, id string, req models.UpdateSubjectRequest) (*models.Subject, error) {
	m.lastUpdate = req
	return &models.Subject{ID: id, UserID: userID, Name: *req.Name}, m.err
}

func (m *subjectServiceMock) Delete(ctx context.Context, userID, id string) error {
	m.deleted = id
	return m.err
}

func subjectRouter(svc *subjectServiceMock) *gin.Engine {
	h := NewSubjectHandler(svc)
	r := newTestRouter("user-1")
	r.GET("/subjects", h.List)
	r.GET("/subjects/search", h.Search)
	r.GET("/subjects/:id", h.Get)
	r.POST("/subjects", h.Create)
	r.PUT("/subjects/:id", h.Update)
	r.DELETE("/subjects/:id", h.Delete)
	return r
}

func TestSubjectHandlerList(t *testing.T) {
	svc := &subjectServiceMock{}
	w, env := perform(t, subjectRouter(svc), http.MethodGet, "/subjects?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.lastFilter.UserID)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 5, svc.lastFilter.PageSize)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)
	assert.Contains(t, string(env.Data), `"assessment_count":3`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestSubjectHandlerSearch(t *testing.T) {
	svc := &subjectServiceMock{}
	w, _ := perform(t, subjectRouter(svc), http.MethodGet, "/subjects/search?name=alg", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alg", svc.lastFilter.Search)

	w, _ = perform(t, subjectRouter(svc), http.MethodGet, "/subjects/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubjectHandlerGetNotFound(t *testing.T) {
	w, env := perform(t, subjectRouter(&subjectServiceMock{}), http.MethodGet, "/subjects/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "subject not found", env.Error.Message)
}

func TestSubjectHandlerCreateAndUpdate(t *testing.T) {
	svc := &subjectServiceMock{}
	w, env := perform(t, subjectRouter(svc), http.MethodPost, "/subjects", map[string]interface{}{"name": "Physics", "target_grade": 1.75})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1.75, *svc.lastCreate.TargetGrade)
	assert.Contains(t, string(env.Data), `"name":"Physics"`)

	w, _ = perform(t, subjectRouter(svc), http.MethodPut, "/subjects/s1", map[string]string{"name": "Physics II"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Physics II", *svc.lastUpdate.Name)
	assert.Nil(t, svc.lastUpdate.Color)

	w, _ = perform(t, subjectRouter(svc), http.MethodPost, "/subjects", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubjectHandlerDelete(t *testing.T) {
	svc := &subjectServiceMock{}
	w, _ := perform(t, subjectRouter(svc), http.MethodDelete, "/subjects/s1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "s1", svc.deleted)
}
