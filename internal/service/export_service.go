package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/gradetrack-api/pkg/errors"
	"github.com/noah-isme/gradetrack-api/pkg/export"
	"github.com/noah-isme/gradetrack-api/pkg/storage"
)

var exportHeaders = []string{
	"Subject", "Quarter",
	"F2F Raw", "F2F Grade",
	"Online Raw", "Online Grade",
	"Overall Raw", "Overall Grade",
	"Subject Final Average", "Status",
}

type overallReporter interface {
	OverallReport(ctx context.Context, userID string) (*OverallReportResult, error)
}

type exportStorage interface {
	Save(relPath string, data []byte) (string, error)
	Read(relPath string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type linkSigner interface {
	Generate(ownerID, relPath string) (string, time.Time, error)
	Parse(token string) (storage.DownloadClaim, error)
	TTL() time.Duration
}

// ExportConfig tunes grade sheet exports.
type ExportConfig struct {
	Enabled   bool
	Title     string
	APIPrefix string
}

// ExportFile is a rendered grade sheet ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ShareLink points at a stored grade sheet through a signed token.
type ShareLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders the overall grade report as CSV, PDF or XLSX sheets.
type ExportService struct {
	reports overallReporter
	storage exportStorage
	signer  linkSigner
	cfg     ExportConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. storage and signer may be nil, which disables share links.
func NewExportService(reports overallReporter, store exportStorage, signer linkSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Grade Summary"
	}
	return &ExportService{
		reports: reports,
		storage: store,
		signer:  signer,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Export renders the user's grade sheet in the requested format.
func (s *ExportService) Export(ctx context.Context, userID, format string) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.ErrExportDisabled
	}
	exporter, err := export.ForFormat(export.Format(strings.ToLower(strings.TrimSpace(format))))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	report, err := s.reports.OverallReport(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := exporter.Render(s.table(report))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade sheet")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("grades-%s.%s", s.now().Format("20060102-150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Payload:     payload,
	}, nil
}

// Share renders the grade sheet, stores it and returns a signed download link.
func (s *ExportService) Share(ctx context.Context, userID, format string) (*ShareLink, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.ErrExportDisabled
	}
	file, err := s.Export(ctx, userID, format)
	if err != nil {
		return nil, err
	}

	relPath := path.Join(userID, uuid.NewString()+path.Ext(file.Filename))
	if _, err := s.storage.Save(relPath, file.Payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store grade sheet")
	}
	token, expiresAt, err := s.signer.Generate(userID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	s.logger.Info("grade sheet shared", zap.String("user_id", userID), zap.String("path", relPath))
	return &ShareLink{
		Token:     token,
		URL:       fmt.Sprintf("%s/exports/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token),
		Format:    strings.TrimPrefix(path.Ext(relPath), "."),
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to the stored grade sheet.
func (s *ExportService) Download(ctx context.Context, token string) (*ExportFile, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.ErrExportDisabled
	}
	claim, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.ErrLinkExpired
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	if !strings.HasPrefix(claim.Path, claim.OwnerID+"/") {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}

	payload, err := s.storage.Read(claim.Path)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grade sheet not found")
	}

	ext := strings.TrimPrefix(path.Ext(claim.Path), ".")
	contentType := "application/octet-stream"
	if exporter, err := export.ForFormat(export.Format(ext)); err == nil {
		contentType = exporter.ContentType()
	}
	return &ExportFile{
		Filename:    "grades." + ext,
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// Cleanup removes stored sheets whose links can no longer be valid.
func (s *ExportService) Cleanup() {
	if s.storage == nil || s.signer == nil {
		return
	}
	removed, err := s.storage.CleanupOlderThan(s.signer.TTL())
	if err != nil {
		s.logger.Warn("failed to clean up grade sheets", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("expired grade sheets removed", zap.Int("count", len(removed)))
	}
}

// RunCleanup calls Cleanup every interval until ctx is cancelled.
func (s *ExportService) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// table flattens the overall report into one row per subject and quarter.
func (s *ExportService) table(report *OverallReportResult) export.Table {
	names := make([]string, 0, len(report.Subjects))
	for name := range report.Subjects {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names)*len(report.Quarters))
	for _, name := range names {
		summary := report.Subjects[name]
		for _, quarter := range report.Quarters {
			grades := summary.Quarters[quarter]
			rows = append(rows, []string{
				name,
				string(quarter),
				grades.F2F.RawScore.String(),
				grades.F2F.FinalGrade.String(),
				grades.Online.RawScore.String(),
				grades.Online.FinalGrade.String(),
				grades.Overall.RawScore.String(),
				grades.Overall.FinalGrade.String(),
				summary.SubjectFinalAverage.String(),
				string(summary.Status),
			})
		}
	}

	title := s.cfg.Title
	if report.OverallAverage.Valid {
		title = fmt.Sprintf("%s (overall average %s)", title, report.OverallAverage.String())
	}
	return export.Table{Title: title, Headers: exportHeaders, Rows: rows}
}
