package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// RequirementRepository reads stored eligibility rules.
type RequirementRepository struct {
	db *sqlx.DB
}

// NewRequirementRepository constructs a RequirementRepository.
func NewRequirementRepository(db *sqlx.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// ListByProgram returns the rules attached directly to a program.
func (r *RequirementRepository) ListByProgram(ctx context.Context, programID string) ([]models.RequirementRule, error) {
	const query = `SELECT id, program_id, institution_id, kind, value, is_required
        FROM requirement_rules WHERE program_id = $1 ORDER BY kind ASC, id ASC`
	var rules []models.RequirementRule
	if err := r.db.SelectContext(ctx, &rules, query, programID); err != nil {
		return nil, fmt.Errorf("list program rules: %w", err)
	}
	return rules, nil
}

// ListByInstitution returns institution-wide rules that are not tied to a program.
func (r *RequirementRepository) ListByInstitution(ctx context.Context, institutionID string) ([]models.RequirementRule, error) {
	const query = `SELECT id, program_id, institution_id, kind, value, is_required
        FROM requirement_rules WHERE institution_id = $1 AND program_id IS NULL ORDER BY kind ASC, id ASC`
	var rules []models.RequirementRule
	if err := r.db.SelectContext(ctx, &rules, query, institutionID); err != nil {
		return nil, fmt.Errorf("list institution rules: %w", err)
	}
	return rules, nil
}
