package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/dto"
	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
	"github.com/noah-isme/admission-planner-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type checklistBuilder interface {
	Checklist(ctx context.Context, programID string, profile models.StudentProfile) (*models.DocumentChecklist, error)
}

type timelineBuilder interface {
	Build(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string) (*models.Timeline, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
}

// ExportService renders checklists and timelines as downloadable files.
type ExportService struct {
	documents checklistBuilder
	timelines timelineBuilder
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(documents checklistBuilder, timelines timelineBuilder, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		documents: documents,
		timelines: timelines,
		csv:       csv,
		pdf:       pdf,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ParseExportFormat validates a requested file format; empty defaults to CSV.
func ParseExportFormat(raw string) (dto.ExportFormat, error) {
	switch dto.ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", dto.ExportFormatCSV:
		return dto.ExportFormatCSV, nil
	case dto.ExportFormatPDF:
		return dto.ExportFormatPDF, nil
	default:
		return "", appErrors.Localize(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw), fmt.Sprintf("desteklenmeyen dışa aktarma biçimi %q", raw))
	}
}

// Checklist renders the document checklist of a program.
func (s *ExportService) Checklist(ctx context.Context, programID string, profile models.StudentProfile, format dto.ExportFormat) (*dto.ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Localize(appErrors.ErrDisabled, "exports are disabled", "dışa aktarma devre dışı")
	}
	checklist, err := s.documents.Checklist(ctx, programID, profile)
	if err != nil {
		return nil, err
	}
	dataset := checklistDataset(checklist)
	return s.render(dataset, fmt.Sprintf("Document checklist %s", checklist.ProgramID), "checklist", checklist.ProgramID, format)
}

// Timeline renders the preparation timeline of a program.
func (s *ExportService) Timeline(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string, format dto.ExportFormat) (*dto.ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Localize(appErrors.ErrDisabled, "exports are disabled", "dışa aktarma devre dışı")
	}
	timeline, err := s.timelines.Build(ctx, programID, profile, intakeTarget)
	if err != nil {
		return nil, err
	}
	dataset := timelineDataset(timeline)
	title := fmt.Sprintf("Preparation timeline %s (%s intake)", timeline.ProgramID, timeline.TargetIntake)
	return s.render(dataset, title, "timeline", timeline.ProgramID, format)
}

func (s *ExportService) render(dataset export.Dataset, title, kind, programID string, format dto.ExportFormat) (*dto.ExportFile, error) {
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case dto.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case dto.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Localize(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format), fmt.Sprintf("desteklenmeyen dışa aktarma biçimi %q", format))
	}
	if err != nil {
		s.logger.Error("render export", zap.String("kind", kind), zap.String("program_id", programID), zap.Error(err))
		return nil, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to render export", "dışa aktarma oluşturulamadı")
	}
	return &dto.ExportFile{
		Filename:    s.buildFilename(kind, programID, format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func (s *ExportService) buildFilename(kind, programID string, format dto.ExportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", kind, sanitizeFilename(programID), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func checklistDataset(checklist *models.DocumentChecklist) export.Dataset {
	headers := []string{"Document", "Belge", "Required", "Translation", "Notarization", "Estimated Days", "Why Needed", "Notes"}
	rows := make([]map[string]string, 0, len(checklist.Items))
	for _, item := range checklist.Items {
		days := ""
		if item.EstimatedDays != nil {
			days = strconv.Itoa(*item.EstimatedDays)
		}
		rows = append(rows, map[string]string{
			"Document":       item.Name.EN,
			"Belge":          item.Name.TR,
			"Required":       yesNo(item.Required),
			"Translation":    yesNo(item.TranslationRequired),
			"Notarization":   yesNo(item.NotarizationRequired),
			"Estimated Days": days,
			"Why Needed":     item.WhyNeeded.EN,
			"Notes":          item.Notes,
		})
	}
	notes := []string{checklist.AttestationNote.EN}
	notes = append(notes, englishLines("Unknown", checklist.Unknowns)...)
	notes = append(notes, englishLines("Assumption", checklist.Assumptions)...)
	return export.Dataset{Headers: headers, Rows: rows, Notes: notes}
}

func timelineDataset(timeline *models.Timeline) export.Dataset {
	headers := []string{"Week", "Task", "Görev", "Document", "Critical", "Days"}
	var rows []map[string]string
	for _, week := range timeline.Weeks {
		for _, task := range week.Tasks {
			days := ""
			if task.DurationDays > 0 {
				days = strconv.Itoa(task.DurationDays)
			}
			rows = append(rows, map[string]string{
				"Week":     strconv.Itoa(week.Week),
				"Task":     task.Title.EN,
				"Görev":    task.Title.TR,
				"Document": task.DocumentKey,
				"Critical": yesNo(task.Critical),
				"Days":     days,
			})
		}
	}
	notes := []string{"Critical path: " + strings.Join(timeline.CriticalPathItems, ", ")}
	notes = append(notes, englishLines("Assumption", timeline.Assumptions)...)
	return export.Dataset{Headers: headers, Rows: rows, Notes: notes}
}

func englishLines(prefix string, texts []models.LocalizedText) []string {
	lines := make([]string, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, prefix+": "+t.EN)
	}
	return lines
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
