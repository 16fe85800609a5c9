package models

// EligibilityStatus is the classified outcome of an eligibility evaluation.
type EligibilityStatus string

const (
	StatusLikelyEligible EligibilityStatus = "likely_eligible"
	StatusNeedsReview    EligibilityStatus = "needs_review"
	StatusUnlikely       EligibilityStatus = "unlikely"
)

// EligibilityReason is one evaluated rule outcome. DataDriven is always true.
type EligibilityReason struct {
	RuleID     string        `json:"rule_id,omitempty"`
	Kind       RuleKind      `json:"kind"`
	Passed     bool          `json:"passed"`
	Required   bool          `json:"required"`
	Text       LocalizedText `json:"text"`
	DataDriven bool          `json:"data_driven"`
}

// MissingField names a profile field whose absence kept a rule from being scored.
type MissingField struct {
	Field string        `json:"field"`
	Label LocalizedText `json:"label"`
}

// EligibilityResult is the evaluator output for one program.
type EligibilityResult struct {
	ProgramID     string              `json:"program_id"`
	Status        EligibilityStatus   `json:"status"`
	Reasons       []EligibilityReason `json:"reasons"`
	Missing       []MissingField      `json:"missing"`
	MissingFields []string            `json:"missing_fields"`
	Assumptions   []LocalizedText     `json:"assumptions"`
	Disclaimer    LocalizedText       `json:"disclaimer"`
}
