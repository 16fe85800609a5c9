package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

type documentRepository interface {
	ListByProgram(ctx context.Context, programID string) ([]models.ProgramDocument, error)
}

// DocumentService resolves the document checklist of a program.
type DocumentService struct {
	programs  programReader
	documents documentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentService constructs the document service.
func NewDocumentService(programs programReader, documents documentRepository, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{programs: programs, documents: documents, validator: validate, logger: logger}
}

// Checklist validates the profile and resolves the applicable documents.
func (s *DocumentService) Checklist(ctx context.Context, programID string, profile models.StudentProfile) (*models.DocumentChecklist, error) {
	if err := validateProfile(s.validator, profile); err != nil {
		return nil, err
	}
	program, err := loadProgram(ctx, s.programs, programID)
	if err != nil {
		return nil, err
	}
	checklist, err := s.resolve(ctx, program, profile)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// resolve assumes the program exists and the profile is valid.
func (s *DocumentService) resolve(ctx context.Context, program *models.Program, profile models.StudentProfile) (models.DocumentChecklist, error) {
	docs, err := s.documents.ListByProgram(ctx, program.ID)
	if err != nil {
		return models.DocumentChecklist{}, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to load program documents", "program belgeleri yüklenemedi")
	}
	for _, doc := range docs {
		if doc.Template == nil {
			s.logger.Warn("document rule without template",
				zap.String("program_id", program.ID),
				zap.String("rule_id", doc.Rule.ID),
				zap.String("document_key", doc.Rule.DocumentKey),
			)
		}
	}
	return ResolveDocuments(program.ID, profile, docs), nil
}
