package models

// EnglishTest enumerates accepted English proficiency tests.
type EnglishTest string

const (
	EnglishTestIELTS EnglishTest = "ielts"
	EnglishTestTOEFL EnglishTest = "toefl"
)

// EnglishScore is a declared English test result.
type EnglishScore struct {
	Test  EnglishTest `json:"test" validate:"required,oneof=ielts toefl"`
	Score float64     `json:"score" validate:"gte=0,lte=120"`
}

// StudentProfile is supplied per call and never persisted.
type StudentProfile struct {
	Nationality         string              `json:"nationality" validate:"max=64"`
	CurrentLevel        EducationLevel      `json:"current_level" validate:"required,oneof=high_school associate bachelor master phd"`
	DesiredLevel        EducationLevel      `json:"desired_level" validate:"required,oneof=associate bachelor master phd"`
	GPA                 *float64            `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=100"`
	EnglishScore        *EnglishScore       `json:"english_score,omitempty"`
	TurkishLevel        *string             `json:"turkish_level,omitempty" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	HasPortfolio        *bool               `json:"has_portfolio,omitempty"`
	WorkExperienceYears *float64            `json:"work_experience_years,omitempty" validate:"omitempty,gte=0,lte=60"`
	MajorKeywords       []string            `json:"major_keywords,omitempty" validate:"max=20,dive,max=100"`
	PreferredLanguage   InstructionLanguage `json:"preferred_language,omitempty" validate:"omitempty,oneof=en tr ar mixed any"`
	PreferredCity       string              `json:"preferred_city,omitempty" validate:"max=100"`
	BudgetMin           *float64            `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax           *float64            `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
}

// SearchFilters are explicit caller overrides. Every present field narrows the search.
type SearchFilters struct {
	DegreeLevel EducationLevel      `json:"degree_level,omitempty" validate:"omitempty,oneof=associate bachelor master phd"`
	Language    InstructionLanguage `json:"language,omitempty" validate:"omitempty,oneof=en tr ar mixed any"`
	City        string              `json:"city,omitempty" validate:"max=100"`
	TuitionMin  *float64            `json:"tuition_min,omitempty" validate:"omitempty,gte=0"`
	TuitionMax  *float64            `json:"tuition_max,omitempty" validate:"omitempty,gte=0"`
	Keywords    []string            `json:"keywords,omitempty" validate:"max=20,dive,max=100"`
}
