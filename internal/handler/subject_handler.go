package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/models"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error)
	Search(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error)
	Get(ctx context.Context, userID, id string) (*models.Subject, error)
	Create(ctx context.Context, userID string, req models.CreateSubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, userID, id string, req models.UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, userID, id string) error
}

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjects, pagination, err := h.service.List(c.Request.Context(), subjectFilter(c, userID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Search godoc
// @Summary Search subjects by name
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param name query string true "Name fragment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects/search [get]
func (h *SubjectHandler) Search(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter := subjectFilter(c, userID)
	filter.Search = c.Query("name")
	subjects, pagination, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Get godoc
// @Summary Get subject by id
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subject, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subject)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid subject payload"))
		return
	}
	subject, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Update godoc
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Param payload body models.UpdateSubjectRequest true "Subject payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid subject payload"))
		return
	}
	subject, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subject)
}

// Delete godoc
// @Summary Delete subject and its assessments
// @Tags Subjects
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
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

func subjectFilter(c *gin.Context, userID string) models.SubjectFilter {
	filter := models.SubjectFilter{UserID: userID}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	return filter
}
