package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

// TimelineService schedules a program's resolved checklist into weeks.
type TimelineService struct {
	programs  programReader
	documents *DocumentService
	validator *validator.Validate
	policy    TimelinePolicy
	logger    *zap.Logger
}

// NewTimelineService constructs the timeline service.
func NewTimelineService(programs programReader, documents *DocumentService, validate *validator.Validate, policy TimelinePolicy, logger *zap.Logger) *TimelineService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimelineService{programs: programs, documents: documents, validator: validate, policy: policy, logger: logger}
}

// Build resolves documents for the program and schedules them. A missing program stops the
// pipeline with NOT_FOUND before any scheduling happens.
func (s *TimelineService) Build(ctx context.Context, programID string, profile models.StudentProfile, intakeTarget string) (*models.Timeline, error) {
	if err := validateProfile(s.validator, profile); err != nil {
		return nil, err
	}
	if len(intakeTarget) > 64 {
		return nil, failure(appErrors.ErrValidation, models.Text("intake_target is too long", "intake_target çok uzun"))
	}
	program, err := loadProgram(ctx, s.programs, programID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.plan(ctx, program, profile, intakeTarget)
	if err != nil {
		return nil, err
	}
	return &timeline, nil
}

func (s *TimelineService) plan(ctx context.Context, program *models.Program, profile models.StudentProfile, intakeTarget string) (models.Timeline, error) {
	checklist, err := s.documents.resolve(ctx, program, profile)
	if err != nil {
		return models.Timeline{}, err
	}
	timeline := BuildTimeline(*program, checklist, intakeTarget, s.policy)
	s.logger.Debug("timeline built",
		zap.String("program_id", program.ID),
		zap.String("intake", timeline.TargetIntake),
		zap.Strings("critical", timeline.CriticalPathItems),
	)
	return timeline, nil
}
