package models

import "github.com/jmoiron/sqlx/types"

// RuleKind is the closed set of stored requirement kinds.
type RuleKind string

const (
	RuleGPAMinimum          RuleKind = "gpa_minimum"
	RuleExamScore           RuleKind = "exam_score"
	RuleLanguageProficiency RuleKind = "language_proficiency"
	RulePortfolioRequired   RuleKind = "portfolio_required"
	RuleInterviewRequired   RuleKind = "interview_required"
	RuleWorkExperience      RuleKind = "work_experience"
	RuleOther               RuleKind = "other"
)

// RuleEducationLevel tags the built-in education prerequisite reason. It is not a stored kind.
const RuleEducationLevel RuleKind = "education_level"

// Known reports whether the kind belongs to the stored closed set.
func (k RuleKind) Known() bool {
	switch k {
	case RuleGPAMinimum, RuleExamScore, RuleLanguageProficiency, RulePortfolioRequired,
		RuleInterviewRequired, RuleWorkExperience, RuleOther:
		return true
	}
	return false
}

// RequirementRule is a stored eligibility condition scoped to a program or, as a fallback,
// to every program of an institution.
type RequirementRule struct {
	ID            string         `db:"id" json:"id"`
	ProgramID     *string        `db:"program_id" json:"program_id,omitempty"`
	InstitutionID *string        `db:"institution_id" json:"institution_id,omitempty"`
	Kind          RuleKind       `db:"kind" json:"kind"`
	Value         types.JSONText `db:"value" json:"value"`
	Required      bool           `db:"is_required" json:"is_required"`
}

// ProgramScoped reports whether the rule belongs to a single program.
func (r RequirementRule) ProgramScoped() bool {
	return r.ProgramID != nil && *r.ProgramID != ""
}
