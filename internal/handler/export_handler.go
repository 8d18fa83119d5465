package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/service"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, userID, format string) (*service.ExportFile, error)
	Share(ctx context.Context, userID, format string) (*service.ShareLink, error)
	Download(ctx context.Context, token string) (*service.ExportFile, error)
}

// ExportHandler serves grade sheet downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download the grade sheet
// @Description Overall report as one row per subject and quarter
// @Tags Exports
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /grades/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), userID, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Share godoc
// @Summary Create a signed grade sheet download link
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /grades/export/share [post]
func (h *ExportHandler) Share(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	link, err := h.service.Share(c.Request.Context(), userID, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Download godoc
// @Summary Download a shared grade sheet
// @Tags Exports
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
