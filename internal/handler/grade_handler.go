package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/service"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

type gradeReportService interface {
	ScopeReport(ctx context.Context, userID, quarter, subjectID string) (*grading.ScopeReport, error)
	ActivityBreakdown(ctx context.Context, userID, quarter, subjectID, activity string) (*service.ActivityBreakdown, error)
	QuarterReport(ctx context.Context, userID, quarter string) (*grading.QuarterReport, error)
	SubjectReport(ctx context.Context, userID, subjectID string) (*grading.SubjectReport, error)
	OverallReport(ctx context.Context, userID string) (*service.OverallReportResult, error)
}

// GradeHandler exposes computed grade reports.
type GradeHandler struct {
	reports gradeReportService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(reports gradeReportService) *GradeHandler {
	return &GradeHandler{reports: reports}
}

// Scope godoc
// @Summary Grade report of one subject in one quarter
// @Description Per-activity percentages, face-to-face and online grades and the blended overall grade
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param quarter path string true "preliminary, midterm, pre_final or final"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{quarter}/{subjectId} [get]
func (h *GradeHandler) Scope(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.reports.ScopeReport(c.Request.Context(), userID, c.Param("quarter"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Activity godoc
// @Summary Partial grades of one activity type
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param quarter path string true "Quarter"
// @Param subjectId path string true "Subject ID"
// @Param activity path string true "quiz, exam, assignment or project"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{quarter}/{subjectId}/{activity} [get]
func (h *GradeHandler) Activity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	breakdown, err := h.reports.ActivityBreakdown(c.Request.Context(), userID, c.Param("quarter"), c.Param("subjectId"), c.Param("activity"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, breakdown)
}

// Quarter godoc
// @Summary Grades of every subject in one quarter
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param quarter path string true "Quarter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/quarter/{quarter} [get]
func (h *GradeHandler) Quarter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.reports.QuarterReport(c.Request.Context(), userID, c.Param("quarter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Subject godoc
// @Summary Grades of one subject across every quarter
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/subject/{subjectId} [get]
func (h *GradeHandler) Subject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.reports.SubjectReport(c.Request.Context(), userID, c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Overall godoc
// @Summary Grades of every subject across every quarter
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /grades/overall [get]
func (h *GradeHandler) Overall(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.reports.OverallReport(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
