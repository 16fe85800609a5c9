package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Program is a catalog entry offered by an institution.
type Program struct {
	ID              string              `db:"id" json:"id"`
	InstitutionID   string              `db:"institution_id" json:"institution_id"`
	InstitutionName string              `db:"institution_name" json:"institution_name"`
	NameEN          string              `db:"name_en" json:"name_en"`
	NameTR          string              `db:"name_tr" json:"name_tr"`
	DegreeLevel     EducationLevel      `db:"degree_level" json:"degree_level"`
	Language        InstructionLanguage `db:"language" json:"language"`
	City            string              `db:"city" json:"city"`
	TuitionMin      float64             `db:"tuition_min" json:"tuition_min"`
	TuitionMax      float64             `db:"tuition_max" json:"tuition_max"`
	Currency        string              `db:"currency" json:"currency"`
	Intakes         pq.StringArray      `db:"intakes" json:"intakes"`
	Active          bool                `db:"active" json:"active"`
	VerifiedAt      *time.Time          `db:"verified_at" json:"verified_at,omitempty"`
}

// VerificationStatus describes how fresh a program's data is.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationOutdated VerificationStatus = "outdated"
	VerificationNeeded   VerificationStatus = "needs_verification"
)

// ProgramQuery is the conjunctive predicate set the catalog search runs.
// Nil/empty fields add no predicate. Keywords are OR-ed among themselves.
type ProgramQuery struct {
	DegreeLevel EducationLevel        `json:"degree_level,omitempty"`
	Languages   []InstructionLanguage `json:"languages,omitempty"`
	City        string                `json:"city,omitempty"`
	TuitionLow  *float64              `json:"tuition_low,omitempty"`
	TuitionHigh *float64              `json:"tuition_high,omitempty"`
	Keywords    []string              `json:"keywords,omitempty"`
	// Unsatisfiable is set when two narrowing predicates contradict each other.
	Unsatisfiable bool `json:"unsatisfiable,omitempty"`
}

// ProgramSearchResult is the caller-facing shape of a matched program.
type ProgramSearchResult struct {
	ID                 string              `json:"id"`
	InstitutionID      string              `json:"institution_id"`
	InstitutionName    string              `json:"institution_name"`
	Name               LocalizedText       `json:"name"`
	DegreeLevel        EducationLevel      `json:"degree_level"`
	Language           InstructionLanguage `json:"language"`
	City               string              `json:"city"`
	TuitionMin         float64             `json:"tuition_min"`
	TuitionMax         float64             `json:"tuition_max"`
	Currency           string              `json:"currency"`
	Intakes            []string            `json:"intakes"`
	VerificationStatus VerificationStatus  `json:"verification_status"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty"`
}

// Matches evaluates the query against a single program in memory, mirroring the SQL the
// catalog repository builds.
func (q ProgramQuery) Matches(p Program) bool {
	if q.Unsatisfiable || !p.Active {
		return false
	}
	if q.DegreeLevel != "" && p.DegreeLevel != q.DegreeLevel {
		return false
	}
	if len(q.Languages) > 0 && !containsLanguage(q.Languages, p.Language) {
		return false
	}
	if q.City != "" && !strings.EqualFold(p.City, q.City) {
		return false
	}
	if q.TuitionLow != nil && p.TuitionMax < *q.TuitionLow {
		return false
	}
	if q.TuitionHigh != nil && p.TuitionMin > *q.TuitionHigh {
		return false
	}
	if len(q.Keywords) == 0 {
		return true
	}
	nameEN := strings.ToLower(p.NameEN)
	nameTR := strings.ToLower(p.NameTR)
	for _, kw := range q.Keywords {
		if strings.Contains(nameEN, kw) || strings.Contains(nameTR, kw) {
			return true
		}
	}
	return false
}

func containsLanguage(list []InstructionLanguage, l InstructionLanguage) bool {
	for _, candidate := range list {
		if candidate == l {
			return true
		}
	}
	return false
}
