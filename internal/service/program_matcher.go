package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// minMatchTermRunes excludes short abbreviations from substring matching; "ce" would
// otherwise match every name containing "science".
const minMatchTermRunes = 3

// BuildProgramQuery translates a profile and explicit filters into catalog predicates. The
// profile selects, the filters narrow; contradicting predicates mark the query unsatisfiable.
// keywords are expected to be an expanded set from ExpandKeywords.
func BuildProgramQuery(profile models.StudentProfile, filters models.SearchFilters, keywords []string) models.ProgramQuery {
	query := models.ProgramQuery{}

	query.DegreeLevel, query.Unsatisfiable = narrowLevel(profile.DesiredLevel, filters.DegreeLevel)

	languages, ok := narrowLanguages(languagePredicate(profile.PreferredLanguage), languagePredicate(filters.Language))
	query.Languages = languages
	query.Unsatisfiable = query.Unsatisfiable || !ok

	city, ok := narrowCity(profile.PreferredCity, filters.City)
	query.City = city
	query.Unsatisfiable = query.Unsatisfiable || !ok

	query.TuitionLow = maxBound(profile.BudgetMin, filters.TuitionMin)
	query.TuitionHigh = minBound(profile.BudgetMax, filters.TuitionMax)
	if query.TuitionLow != nil && query.TuitionHigh != nil && *query.TuitionLow > *query.TuitionHigh {
		query.Unsatisfiable = true
	}

	query.Keywords = matchTerms(keywords)
	return query
}

// SearchKeywords picks the keyword source: explicit filter keywords replace the profile's
// major keywords.
func SearchKeywords(profile models.StudentProfile, filters models.SearchFilters) []string {
	if len(filters.Keywords) > 0 {
		return filters.Keywords
	}
	return profile.MajorKeywords
}

func narrowLevel(profileLevel, filterLevel models.EducationLevel) (models.EducationLevel, bool) {
	switch {
	case filterLevel == "":
		return profileLevel, false
	case profileLevel == "" || profileLevel == filterLevel:
		return filterLevel, false
	default:
		return filterLevel, true
	}
}

// languagePredicate returns the accepted program languages for a preference. A concrete
// language also accepts mixed-language programs; "any" or empty adds no predicate.
func languagePredicate(pref models.InstructionLanguage) []models.InstructionLanguage {
	switch pref {
	case "", models.LanguageAny:
		return nil
	case models.LanguageMixed:
		return []models.InstructionLanguage{models.LanguageMixed}
	default:
		return []models.InstructionLanguage{pref, models.LanguageMixed}
	}
}

func narrowLanguages(a, b []models.InstructionLanguage) ([]models.InstructionLanguage, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	allowed := make(map[models.InstructionLanguage]struct{}, len(b))
	for _, l := range b {
		allowed[l] = struct{}{}
	}
	var out []models.InstructionLanguage
	for _, l := range a {
		if _, ok := allowed[l]; ok {
			out = append(out, l)
		}
	}
	return out, len(out) > 0
}

func narrowCity(profileCity, filterCity string) (string, bool) {
	p := strings.TrimSpace(profileCity)
	f := strings.TrimSpace(filterCity)
	switch {
	case f == "":
		return p, true
	case p == "" || strings.EqualFold(p, f):
		return f, true
	default:
		return f, false
	}
}

func maxBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

func minBound(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

func matchTerms(expanded []string) []string {
	var long []string
	for _, term := range expanded {
		if utf8.RuneCountInString(term) >= minMatchTermRunes {
			long = append(long, term)
		}
	}
	if len(long) == 0 {
		return expanded
	}
	return long
}

// VerificationStatusAt derives freshness from the verification timestamp alone.
func VerificationStatusAt(verifiedAt *time.Time, now time.Time, windowMonths int) models.VerificationStatus {
	if verifiedAt == nil || verifiedAt.IsZero() {
		return models.VerificationNeeded
	}
	if windowMonths <= 0 {
		windowMonths = 6
	}
	if !verifiedAt.AddDate(0, windowMonths, 0).Before(now) {
		return models.VerificationVerified
	}
	return models.VerificationOutdated
}

// ToSearchResult maps a catalog row to the caller-facing result shape.
func ToSearchResult(p models.Program, now time.Time, windowMonths int) models.ProgramSearchResult {
	intakes := []string(p.Intakes)
	if intakes == nil {
		intakes = []string{}
	}
	return models.ProgramSearchResult{
		ID:                 p.ID,
		InstitutionID:      p.InstitutionID,
		InstitutionName:    p.InstitutionName,
		Name:               models.Text(p.NameEN, fallbackText(p.NameTR, p.NameEN)),
		DegreeLevel:        p.DegreeLevel,
		Language:           p.Language,
		City:               p.City,
		TuitionMin:         p.TuitionMin,
		TuitionMax:         p.TuitionMax,
		Currency:           p.Currency,
		Intakes:            intakes,
		VerificationStatus: VerificationStatusAt(p.VerifiedAt, now, windowMonths),
		VerifiedAt:         p.VerifiedAt,
	}
}

func fallbackText(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
