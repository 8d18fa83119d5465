package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/models"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

type assessmentService interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error)
	ListByQuarter(ctx context.Context, userID, quarter string) ([]models.Assessment, error)
	ListActivities(ctx context.Context, userID, quarter, subjectID string) ([]models.Assessment, error)
	Get(ctx context.Context, userID, id string) (*models.Assessment, error)
	Create(ctx context.Context, userID string, req models.CreateAssessmentRequest) (*models.Assessment, error)
	Update(ctx context.Context, userID, id string, req models.UpdateAssessmentRequest) (*models.Assessment, error)
	Delete(ctx context.Context, userID, id string) error
}

// AssessmentHandler handles assessment endpoints.
type AssessmentHandler struct {
	service assessmentService
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(svc assessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// List godoc
// @Summary List assessments
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param subject_id query string false "Filter by subject"
// @Param quarter query string false "Filter by quarter"
// @Param activity query string false "Filter by activity type"
// @Param mode query string false "Filter by mode (f2f or online)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, err := assessmentFilter(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	assessments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments, nil)
}

// ListByQuarter godoc
// @Summary List assessments of one quarter
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param quarter path string true "Quarter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments/quarter/{quarter} [get]
func (h *AssessmentHandler) ListByQuarter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessments, err := h.service.ListByQuarter(c.Request.Context(), userID, c.Param("quarter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assessments)
}

// ListActivities godoc
// @Summary List the activities of one subject in one quarter
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param quarter path string true "Quarter"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments/activities/{quarter}/{subjectId} [get]
func (h *AssessmentHandler) ListActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessments, err := h.service.ListActivities(c.Request.Context(), userID, c.Param("quarter"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assessments)
}

// Get godoc
// @Summary Get assessment
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assessment, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assessment)
}

// Create godoc
// @Summary Record assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid assessment payload"))
		return
	}
	assessment, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// Update godoc
// @Summary Update assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Param payload body models.UpdateAssessmentRequest true "Assessment payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid assessment payload"))
		return
	}
	assessment, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assessment)
}

// Delete godoc
// @Summary Delete assessment
// @Tags Assessments
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func assessmentFilter(c *gin.Context, userID string) (models.AssessmentFilter, error) {
	filter := models.AssessmentFilter{UserID: userID, SubjectID: c.Query("subject_id")}
	if raw := c.Query("quarter"); raw != "" {
		q, err := grading.ParseQuarter(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.Quarter = q
	}
	if raw := c.Query("activity"); raw != "" {
		a, err := grading.ParseActivityType(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.ActivityType = a
	}
	if raw := c.Query("mode"); raw != "" {
		m, err := grading.ParseMode(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.Mode = m
	}
	return filter, nil
}
