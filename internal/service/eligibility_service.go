package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

type requirementRepository interface {
	ListByProgram(ctx context.Context, programID string) ([]models.RequirementRule, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]models.RequirementRule, error)
}

// EligibilityService fetches a program's rules and evaluates a profile against them.
type EligibilityService struct {
	programs  programReader
	rules     requirementRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEligibilityService constructs the eligibility service.
func NewEligibilityService(programs programReader, rules requirementRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EligibilityService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityService{programs: programs, rules: rules, metrics: metrics, validator: validate, logger: logger}
}

// Evaluate validates the profile, loads the program and classifies the profile.
func (s *EligibilityService) Evaluate(ctx context.Context, programID string, profile models.StudentProfile) (*models.EligibilityResult, error) {
	if err := validateProfile(s.validator, profile); err != nil {
		return nil, err
	}
	program, err := loadProgram(ctx, s.programs, programID)
	if err != nil {
		return nil, err
	}

	programRules, err := s.rules.ListByProgram(ctx, program.ID)
	if err != nil {
		return nil, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to load program requirements", "program şartları yüklenemedi")
	}
	var institutionRules []models.RequirementRule
	if program.InstitutionID != "" {
		institutionRules, err = s.rules.ListByInstitution(ctx, program.InstitutionID)
		if err != nil {
			return nil, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to load institution requirements", "kurum şartları yüklenemedi")
		}
	}

	rules, misfiled := MergeRequirementRules(programRules, institutionRules)
	if len(misfiled) > 0 {
		s.logger.Warn("requirement rules stored under the wrong scope were skipped",
			zap.String("program_id", program.ID), zap.Strings("rule_ids", misfiled))
	}
	result, defects := EvaluateEligibility(*program, profile, rules)
	for _, d := range defects {
		s.logger.Warn("unparsable requirement rule",
			zap.String("program_id", program.ID),
			zap.String("rule_id", d.RuleID),
			zap.String("kind", string(d.Kind)),
			zap.Error(d.Err),
		)
	}
	s.metrics.RecordRuleDefects(len(defects))
	s.metrics.RecordEvaluation(result.Status)
	return &result, nil
}
