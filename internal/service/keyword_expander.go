package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

const synonymNoteExamples = 3

var (
	synonymIndex   = buildSynonymIndex(synonymGroups)
	normalizedNear = buildNearIndex(nearEquivalentFields)
)

func buildSynonymIndex(groups [][]string) map[string]int {
	index := make(map[string]int)
	for i, group := range groups {
		for _, term := range group {
			if _, exists := index[term]; !exists {
				index[term] = i
			}
		}
	}
	return index
}

func buildNearIndex(table map[string][]string) map[string][]string {
	index := make(map[string][]string, len(table))
	for field, near := range table {
		normalized := make([]string, 0, len(near))
		for _, n := range near {
			normalized = append(normalized, NormalizeKeyword(n))
		}
		index[NormalizeKeyword(field)] = normalized
	}
	return index
}

// NormalizeKeyword lower-cases, strips punctuation and collapses whitespace. Letters and
// digits of any script are kept, as are combining marks of right-to-left scripts.
func NormalizeKeyword(raw string) string {
	folded := cases.Lower(language.Und).String(norm.NFC.String(raw))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), isRTLRune(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isRTLRune covers the Hebrew, Arabic, Syriac, Thaana and Arabic presentation-form blocks.
func isRTLRune(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x08FF:
		return true
	case r >= 0xFB1D && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}

// ExpandKeywords normalizes the keywords and adds every member of each matching synonym
// group. The result is de-duplicated and keeps first-seen order.
func ExpandKeywords(keywords []string) models.KeywordExpansion {
	expansion := models.KeywordExpansion{
		Expanded:     []string{},
		SynonymNotes: []models.LocalizedText{},
	}
	seen := make(map[string]struct{})
	noted := make(map[int]struct{})
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		expansion.Expanded = append(expansion.Expanded, term)
	}

	for _, raw := range keywords {
		keyword := NormalizeKeyword(raw)
		if keyword == "" {
			continue
		}
		add(keyword)
		groupIdx, ok := synonymIndex[keyword]
		if !ok {
			continue
		}
		group := synonymGroups[groupIdx]
		for _, term := range group {
			add(term)
		}
		if _, done := noted[groupIdx]; done {
			continue
		}
		noted[groupIdx] = struct{}{}
		expansion.SynonymNotes = append(expansion.SynonymNotes, synonymNote(keyword, group))
	}
	return expansion
}

func synonymNote(keyword string, group []string) models.LocalizedText {
	others := make([]string, 0, len(group))
	for _, term := range group {
		if term != keyword {
			others = append(others, term)
		}
	}
	examples := others
	suffix := ""
	if len(others) > synonymNoteExamples {
		examples = others[:synonymNoteExamples]
		suffix = ", …"
	}
	list := strings.Join(examples, ", ") + suffix
	return models.Text(
		fmt.Sprintf("Synonym applied: %q also searched as %s", keyword, list),
		fmt.Sprintf("Eş anlamlı uygulandı: %q için ayrıca %s arandı", keyword, list),
	)
}

// NearEquivalents proposes adjacent fields for keywords whose search returned nothing.
// Terms already covered by the expansion are excluded.
func NearEquivalents(keywords []string) []string {
	covered := make(map[string]struct{})
	for _, term := range ExpandKeywords(keywords).Expanded {
		covered[term] = struct{}{}
	}

	var result []string
	for _, raw := range keywords {
		keyword := NormalizeKeyword(raw)
		near, ok := normalizedNear[keyword]
		if !ok {
			if idx, found := synonymIndex[keyword]; found {
				near = normalizedNear[synonymGroups[idx][0]]
			}
		}
		for _, field := range near {
			if _, dup := covered[field]; dup {
				continue
			}
			covered[field] = struct{}{}
			result = append(result, field)
		}
	}
	return result
}
