package dto

import "github.com/noah-isme/admission-planner-api/internal/models"

// ExpandSearchRequest carries free-text field keywords.
type ExpandSearchRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=20,dive,required,max=100"`
}

// ProgramSearchRequest pairs a profile with optional narrowing filters.
type ProgramSearchRequest struct {
	Profile models.StudentProfile `json:"profile"`
	Filters models.SearchFilters  `json:"filters"`
}

// SearchFallback describes a secondary query run with near-equivalent fields.
type SearchFallback struct {
	Applied         bool                 `json:"applied"`
	SuggestedFields []string             `json:"suggested_fields"`
	Note            models.LocalizedText `json:"note"`
}

// ProgramSearchResponse is the matcher output plus the expansion that produced it.
type ProgramSearchResponse struct {
	Results   []models.ProgramSearchResult `json:"results"`
	Total     int                          `json:"total"`
	Expansion models.KeywordExpansion      `json:"expansion"`
	Fallback  *SearchFallback              `json:"fallback,omitempty"`
}

// ProfileRequest wraps a single profile for per-program evaluations.
type ProfileRequest struct {
	Profile models.StudentProfile `json:"profile"`
}

// TimelineRequest adds an optional intake label to a profile.
type TimelineRequest struct {
	Profile      models.StudentProfile `json:"profile"`
	IntakeTarget string                `json:"intake_target" validate:"max=64"`
}

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}
