package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradetrack-api/internal/service"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
)

type exportServiceMock struct {
	lastFormat string
	err        error
}

func (m *exportServiceMock) Export(ctx context.Context, userID, format string) (*service.ExportFile, error) {
	m.lastFormat = format
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{Filename: "grades.csv", ContentType: "text/csv", Payload: []byte("Subject\n")}, nil
}

func (m *exportServiceMock) Share(ctx context.Context, userID, format string) (*service.ShareLink, error) {
	m.lastFormat = format
	return &service.ShareLink{Token: "tok", URL: "/api/v1/exports/tok", Format: format, ExpiresAt: time.Unix(0, 0).UTC()}, m.err
}

func (m *exportServiceMock) Download(ctx context.Context, token string) (*service.ExportFile, error) {
	if token != "tok" {
		return nil, appErrors.ErrLinkExpired
	}
	return &service.ExportFile{Filename: "grades.pdf", ContentType: "application/pdf", Payload: []byte("%PDF")}, nil
}

func exportRouter(svc *exportServiceMock, userID string) *gin.Engine {
	h := NewExportHandler(svc)
	r := newTestRouter(userID)
	r.GET("/grades/export", h.Export)
	r.POST("/grades/export/share", h.Share)
	r.GET("/exports/:token", h.Download)
	return r
}

func TestExportHandlerAttachment(t *testing.T) {
	svc := &exportServiceMock{}
	w, _ := perform(t, exportRouter(svc, "user-1"), http.MethodGet, "/grades/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Subject\n", w.Body.String())
}

func TestExportHandlerDisabled(t *testing.T) {
	svc := &exportServiceMock{err: appErrors.ErrExportDisabled}
	w, env := perform(t, exportRouter(svc, "user-1"), http.MethodGet, "/grades/export?format=pdf", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "EXPORT_DISABLED", env.Error.Code)
	assert.Equal(t, "pdf", svc.lastFormat)
}

func TestExportHandlerShare(t *testing.T) {
	svc := &exportServiceMock{}
	w, env := perform(t, exportRouter(svc, "user-1"), http.MethodPost, "/grades/export/share?format=xlsx", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"url":"/api/v1/exports/tok"`)
	assert.Contains(t, string(env.Data), `"format":"xlsx"`)
}

func TestExportHandlerDownloadIsPublic(t *testing.T) {
	r := exportRouter(&exportServiceMock{}, "")

	w, _ := perform(t, r, http.MethodGet, "/exports/tok", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w, env := perform(t, r, http.MethodGet, "/exports/old", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "LINK_EXPIRED", env.Error.Code)

	w, _ = perform(t, r, http.MethodGet, "/grades/export", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
