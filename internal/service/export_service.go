package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/export"
	"github.com/noah-isme/class-scheduler-api/pkg/storage"
)

var scheduleExportHeaders = []string{
	"Timeslot", "Day", "Period", "Time", "Group", "Group Name", "Advisor",
	"Subject", "Subject Name", "Type", "Teacher", "Room",
}

type scheduleGenerator interface {
	Generate(ctx context.Context, filter dto.ScheduleFilter) (*dto.GeneratedSchedule, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string) (exportID, relPath string, err error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService renders schedules to files and hands out signed download links.
type ExportService struct {
	schedules scheduleGenerator
	storage   fileStorage
	signer    urlSigner
	renderers map[dto.ExportFormat]export.Renderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(schedules scheduleGenerator, store fileStorage, signer urlSigner, validate *validator.Validate, logger *zap.Logger, cfg ExportConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		schedules: schedules,
		storage:   store,
		signer:    signer,
		renderers: map[dto.ExportFormat]export.Renderer{
			dto.ExportFormatCSV: export.NewCSVExporter(),
			dto.ExportFormatPDF: export.NewPDFExporter(),
		},
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Export renders the filtered schedule and returns a signed link to it.
func (s *ExportService) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	renderer := s.renderers[req.Format]

	schedule, err := s.schedules.Generate(ctx, req.Filters)
	if err != nil {
		return nil, err
	}

	payload, err := renderer.Render(ScheduleTable(schedule.Sessions))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("schedule_%s_%s.%s", s.now().UTC().Format("20060102_150405"), id[:8], renderer.Extension())
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	s.logger.Info("schedule exported",
		zap.String("export_id", id),
		zap.String("format", string(req.Format)),
		zap.Int("sessions", len(schedule.Sessions)),
		zap.Int("bytes", len(payload)),
	)
	return &dto.ExportResponse{
		ID:          id,
		Format:      req.Format,
		Sessions:    len(schedule.Sessions),
		DownloadURL: fmt.Sprintf("%s/schedules/exports/%s", prefix, token),
		ExpiresAt:   expiresAt,
	}, nil
}

// Download resolves a signed token to the stored file.
func (s *ExportService) Download(token string) (*dto.ExportFile, error) {
	_, relPath, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "download link invalid")
	}

	body, err := s.storage.Read(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file not found")
	}

	contentType := "application/octet-stream"
	ext := strings.TrimPrefix(path.Ext(relPath), ".")
	if renderer, ok := s.renderers[dto.ExportFormat(ext)]; ok {
		contentType = renderer.ContentType()
	}
	return &dto.ExportFile{Filename: path.Base(relPath), ContentType: contentType, Body: body}, nil
}

// Cleanup removes files older than ttl, or the configured retention when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

// ScheduleTable lays sessions out as an export table, one row per occupied timeslot.
func ScheduleTable(sessions []models.ScheduledSession) export.Table {
	table := export.Table{
		Title:   "Class Schedule",
		Headers: scheduleExportHeaders,
		Rows:    make([]map[string]string, 0, len(sessions)),
	}
	for _, session := range sessions {
		table.Rows = append(table.Rows, map[string]string{
			"Timeslot":     strconv.Itoa(session.TimeslotID),
			"Day":          session.Day,
			"Period":       strconv.Itoa(session.Period),
			"Time":         session.Time,
			"Group":        session.GroupID,
			"Group Name":   session.GroupName,
			"Advisor":      session.Advisor,
			"Subject":      session.SubjectID,
			"Subject Name": session.SubjectName,
			"Type":         string(session.SubjectType),
			"Teacher":      session.TeacherName,
			"Room":         session.RoomName,
		})
	}
	return table
}
