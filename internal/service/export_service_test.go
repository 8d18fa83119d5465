package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/gradetrack-api/internal/grading"
	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
	"github.com/noah-isme/gradetrack-api/pkg/storage"
)

type reporterStub struct {
	result *OverallReportResult
	err    error
}

func (r reporterStub) OverallReport(ctx context.Context, userID string) (*OverallReportResult, error) {
	return r.result, r.err
}

func sampleOverall() *OverallReportResult {
	engine := grading.NewEngine()
	subjects := []grading.Subject{{ID: "b", Name: "Biology"}, {ID: "a", Name: "Algebra"}}
	var records []grading.Record
	for _, activity := range grading.ActivityTypes() {
		for _, mode := range grading.Modes() {
			records = append(records, grading.Record{
				SubjectID: "a", Quarter: grading.QuarterMidterm, ActivityType: activity, Mode: mode,
				Score: 93, TotalItems: 100,
			})
		}
	}
	return &OverallReportResult{OverallReport: engine.OverallReport(subjects, records)}
}

func newExportServiceForTest(t *testing.T, enabled bool) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{Enabled: enabled, APIPrefix: "/api/v1"}
	return NewExportService(reporterStub{result: sampleOverall()}, store, signer, cfg, zap.NewNop())
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportServiceForTest(t, true)

	file, err := svc.Export(context.Background(), "user-1", "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 1+2*4)
	assert.Equal(t, strings.Join(exportHeaders, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Algebra,preliminary,No Data,No Grade"))
	assert.Contains(t, lines[2], "Algebra,midterm,")
	assert.Contains(t, lines[2], ",1.50,1.5,Passing")
	assert.True(t, strings.HasPrefix(lines[5], "Biology,"))
	assert.True(t, strings.HasSuffix(lines[5], ",No Grades Yet"))
}

func TestExportServicePDFAndXLSX(t *testing.T) {
	svc := newExportServiceForTest(t, true)

	pdf, err := svc.Export(context.Background(), "user-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, strings.HasPrefix(string(pdf.Payload), "%PDF"))

	xlsx, err := svc.Export(context.Background(), "user-1", "xlsx")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(xlsx.Filename, ".xlsx"))
	assert.NotEmpty(t, xlsx.Payload)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t, true)

	_, err := svc.Export(context.Background(), "user-1", "docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportServiceDisabled(t *testing.T) {
	svc := newExportServiceForTest(t, false)

	_, err := svc.Export(context.Background(), "user-1", "csv")
	assert.ErrorIs(t, err, appErrors.ErrExportDisabled)
}

func TestExportServicePropagatesReportErrors(t *testing.T) {
	svc := NewExportService(reporterStub{err: appErrors.ErrInternal}, nil, nil, ExportConfig{Enabled: true}, nil)

	_, err := svc.Export(context.Background(), "user-1", "csv")
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	_, err = svc.Share(context.Background(), "user-1", "csv")
	assert.ErrorIs(t, err, appErrors.ErrExportDisabled)
}

func TestExportServiceShareAndDownload(t *testing.T) {
	svc := newExportServiceForTest(t, true)

	link, err := svc.Share(context.Background(), "user-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", link.Format)
	assert.Equal(t, "/api/v1/exports/"+link.Token, link.URL)
	assert.WithinDuration(t, time.Now().Add(time.Hour), link.ExpiresAt, 5*time.Second)

	file, err := svc.Download(context.Background(), link.Token)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "grades.csv", file.Filename)
	assert.Contains(t, string(file.Payload), "Algebra")
}

func TestExportServiceDownloadRejectsBadTokens(t *testing.T) {
	svc := newExportServiceForTest(t, true)

	_, err := svc.Download(context.Background(), "garbage")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	signer := storage.NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("user-2", "user-1/stolen.csv")
	require.NoError(t, err)
	_, err = svc.Download(context.Background(), token)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	token, _, err = signer.Generate("user-1", "user-1/missing.csv")
	require.NoError(t, err)
	_, err = svc.Download(context.Background(), token)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

type expiredSigner struct{ linkSigner }

func (expiredSigner) Parse(token string) (storage.DownloadClaim, error) {
	return storage.DownloadClaim{}, storage.ErrTokenExpired
}

func TestExportServiceDownloadExpired(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewExportService(reporterStub{}, store, expiredSigner{}, ExportConfig{Enabled: true}, nil)

	_, err = svc.Download(context.Background(), "anything")
	assert.ErrorIs(t, err, appErrors.ErrLinkExpired)
}
