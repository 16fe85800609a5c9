package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TriState is an override flag that may be left unset to inherit a template default.
type TriState int8

const (
	TriUnset TriState = iota
	TriTrue
	TriFalse
)

// TriFrom converts a concrete bool into a set TriState.
func TriFrom(v bool) TriState {
	if v {
		return TriTrue
	}
	return TriFalse
}

// IsSet reports whether an explicit value was stored.
func (t TriState) IsSet() bool {
	return t == TriTrue || t == TriFalse
}

// Resolve returns the explicit value when set, otherwise the fallback.
func (t TriState) Resolve(fallback bool) bool {
	switch t {
	case TriTrue:
		return true
	case TriFalse:
		return false
	default:
		return fallback
	}
}

// Scan implements sql.Scanner; NULL maps to TriUnset.
func (t *TriState) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TriUnset
	case bool:
		*t = TriFrom(v)
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case int64:
		*t = TriFrom(v != 0)
	default:
		return fmt.Errorf("tristate: unsupported scan type %T", src)
	}
	return nil
}

func (t *TriState) parse(raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		*t = TriUnset
	case "t", "true", "1":
		*t = TriTrue
	case "f", "false", "0":
		*t = TriFalse
	default:
		return fmt.Errorf("tristate: invalid value %q", raw)
	}
	return nil
}

// Value implements driver.Valuer.
func (t TriState) Value() (driver.Value, error) {
	if !t.IsSet() {
		return nil, nil
	}
	return t == TriTrue, nil
}

// MarshalJSON encodes unset as null.
func (t TriState) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(t == TriTrue)
}

// UnmarshalJSON decodes null/absent as unset.
func (t *TriState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = TriUnset
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("tristate: %w", err)
	}
	*t = TriFrom(v)
	return nil
}

// DocumentTemplate is the catalog default for a document kind.
type DocumentTemplate struct {
	Key                  string `db:"key" json:"key"`
	NameEN               string `db:"name_en" json:"name_en"`
	NameTR               string `db:"name_tr" json:"name_tr"`
	TranslationRequired  bool   `db:"translation_required" json:"translation_required"`
	NotarizationRequired bool   `db:"notarization_required" json:"notarization_required"`
	EstimatedDays        *int   `db:"estimated_days" json:"estimated_days,omitempty"`
}

// ProgramDocumentRule overrides a template for one program.
type ProgramDocumentRule struct {
	ID                   string   `db:"id" json:"id"`
	ProgramID            string   `db:"program_id" json:"program_id"`
	DocumentKey          string   `db:"document_key" json:"document_key"`
	Required             *bool    `db:"is_required" json:"is_required,omitempty"`
	TranslationRequired  TriState `db:"translation_required" json:"translation_required"`
	NotarizationRequired TriState `db:"notarization_required" json:"notarization_required"`
	Notes                *string  `db:"notes" json:"notes,omitempty"`
}

// ProgramDocument pairs an override with its joined template. Template is nil when the
// rule references a key missing from the catalog.
type ProgramDocument struct {
	Rule     ProgramDocumentRule
	Template *DocumentTemplate
}

// ChecklistItem is one resolved document an applicant must or should prepare.
type ChecklistItem struct {
	DocumentKey          string        `json:"document_key"`
	Name                 LocalizedText `json:"name"`
	Required             bool          `json:"required"`
	TranslationRequired  bool          `json:"translation_required"`
	NotarizationRequired bool          `json:"notarization_required"`
	EstimatedDays        *int          `json:"estimated_days,omitempty"`
	WhyNeeded            LocalizedText `json:"why_needed"`
	Notes                string        `json:"notes,omitempty"`
}

// DocumentChecklist is the document planner output.
type DocumentChecklist struct {
	ProgramID       string          `json:"program_id"`
	Items           []ChecklistItem `json:"items"`
	AttestationNote LocalizedText   `json:"attestation_note"`
	Unknowns        []LocalizedText `json:"unknowns"`
	Assumptions     []LocalizedText `json:"assumptions"`
}
