package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

func intPtr(v int) *int { return &v }

func catalogTemplate(key string, translation, notarization bool, days *int) *models.DocumentTemplate {
	return &models.DocumentTemplate{
		Key:                  key,
		NameEN:               key + " en",
		NameTR:               key + " tr",
		TranslationRequired:  translation,
		NotarizationRequired: notarization,
		EstimatedDays:        days,
	}
}

func docRule(key string) models.ProgramDocumentRule {
	return models.ProgramDocumentRule{ID: "rule-" + key, ProgramID: "prog-1", DocumentKey: key}
}

func TestResolveDocumentsOverridesWin(t *testing.T) {
	override := docRule("high_school_diploma")
	override.TranslationRequired = models.TriFalse
	override.NotarizationRequired = models.TriTrue
	inherit := docRule("passport")

	docs := []models.ProgramDocument{
		{Rule: override, Template: catalogTemplate("high_school_diploma", true, false, intPtr(10))},
		{Rule: inherit, Template: catalogTemplate("passport", true, true, intPtr(3))},
	}
	checklist := ResolveDocuments("prog-1", highSchoolProfile(), docs)
	require.Len(t, checklist.Items, 2)

	byKey := map[string]models.ChecklistItem{}
	for _, item := range checklist.Items {
		byKey[item.DocumentKey] = item
	}
	diploma := byKey["high_school_diploma"]
	assert.False(t, diploma.TranslationRequired, "explicit false beats template true")
	assert.True(t, diploma.NotarizationRequired, "explicit true beats template false")

	passport := byKey["passport"]
	assert.True(t, passport.TranslationRequired)
	assert.True(t, passport.NotarizationRequired)
	assert.True(t, passport.Required, "required defaults to true")
	assert.Equal(t, "passport en", passport.Name.EN)
	assert.Equal(t, "passport tr", passport.Name.TR)
	assert.Empty(t, checklist.Unknowns)
}

func TestResolveDocumentsMissingTemplateAndDuration(t *testing.T) {
	orphan := docRule("police_record")
	orphan.NotarizationRequired = models.TriTrue
	docs := []models.ProgramDocument{
		{Rule: orphan},
		{Rule: docRule("cv"), Template: catalogTemplate("cv", false, false, nil)},
	}
	checklist := ResolveDocuments("prog-1", highSchoolProfile(), docs)
	require.Len(t, checklist.Items, 2)

	var orphanItem models.ChecklistItem
	for _, item := range checklist.Items {
		if item.DocumentKey == "police_record" {
			orphanItem = item
		}
	}
	assert.Equal(t, "police_record", orphanItem.Name.EN)
	assert.False(t, orphanItem.TranslationRequired)
	assert.True(t, orphanItem.NotarizationRequired)
	assert.Nil(t, orphanItem.EstimatedDays)
	assert.Equal(t, genericWhyNeeded, orphanItem.WhyNeeded)

	assert.Len(t, checklist.Unknowns, 3, "template gap, orphan duration, cv duration")
	for _, u := range checklist.Unknowns {
		assert.True(t, u.Complete())
	}
}

func TestResolveDocumentsLevelGate(t *testing.T) {
	docs := []models.ProgramDocument{
		{Rule: docRule("bachelor_diploma"), Template: catalogTemplate("bachelor_diploma", true, true, intPtr(14))},
		{Rule: docRule("passport"), Template: catalogTemplate("passport", false, false, intPtr(2))},
	}

	checklist := ResolveDocuments("prog-1", highSchoolProfile(), docs)
	require.Len(t, checklist.Items, 1)
	assert.Equal(t, "passport", checklist.Items[0].DocumentKey)
	require.Len(t, checklist.Assumptions, 1)
	assert.Contains(t, checklist.Assumptions[0].EN, "bachelor_diploma")

	graduate := models.StudentProfile{CurrentLevel: models.LevelBachelor, DesiredLevel: models.LevelMaster}
	checklist = ResolveDocuments("prog-1", graduate, docs)
	assert.Len(t, checklist.Items, 2)
	assert.Empty(t, checklist.Assumptions)
}

func TestResolveDocumentsOrdering(t *testing.T) {
	optional := docRule("portfolio")
	optional.Required = boolPtr(false)
	docs := []models.ProgramDocument{
		{Rule: optional, Template: catalogTemplate("portfolio", false, false, intPtr(1))},
		{Rule: docRule("high_school_transcript"), Template: catalogTemplate("high_school_transcript", true, true, intPtr(20))},
		{Rule: docRule("photo"), Template: catalogTemplate("photo", false, false, nil)},
		{Rule: docRule("passport"), Template: catalogTemplate("passport", false, false, intPtr(5))},
		{Rule: docRule("cv"), Template: catalogTemplate("cv", false, false, intPtr(5))},
	}
	checklist := ResolveDocuments("prog-1", highSchoolProfile(), docs)

	keys := make([]string, 0, len(checklist.Items))
	for _, item := range checklist.Items {
		keys = append(keys, item.DocumentKey)
	}
	assert.Equal(t, []string{"photo", "cv", "passport", "high_school_transcript", "portfolio"}, keys)
}

func TestResolveDocumentsEmpty(t *testing.T) {
	checklist := ResolveDocuments("prog-1", highSchoolProfile(), nil)
	assert.Empty(t, checklist.Items)
	assert.NotNil(t, checklist.Items)
	require.Len(t, checklist.Unknowns, 1)
	assert.Equal(t, genericAttestationNote, checklist.AttestationNote)
}

func TestAttestationNote(t *testing.T) {
	assert.Equal(t, legalizationNote, AttestationNote("Syrian"))
	assert.Equal(t, legalizationNote, AttestationNote("  IRAQ "))
	assert.Equal(t, legalizationNote, AttestationNote("سوري"))
	assert.Equal(t, genericAttestationNote, AttestationNote("German"))
	assert.Equal(t, genericAttestationNote, AttestationNote(""))
	assert.True(t, AttestationNote("Yemeni").Complete())
}

func TestWhyNeededFallsBack(t *testing.T) {
	assert.Equal(t, whyNeeded["passport"], WhyNeeded("passport"))
	assert.Equal(t, genericWhyNeeded, WhyNeeded("unknown_key"))
}
