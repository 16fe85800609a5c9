package models

// KeywordExpansion is the normalized, synonym-expanded keyword set plus the notes that
// explain which synonym groups were applied.
type KeywordExpansion struct {
	Expanded     []string        `json:"expanded"`
	SynonymNotes []LocalizedText `json:"synonym_notes"`
}
