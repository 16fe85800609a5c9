package service

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func bachelorProgram() models.Program {
	return models.Program{ID: "prog-1", InstitutionID: "inst-1", DegreeLevel: models.LevelBachelor, Active: true}
}

func highSchoolProfile() models.StudentProfile {
	return models.StudentProfile{CurrentLevel: models.LevelHighSchool, DesiredLevel: models.LevelBachelor}
}

func rule(id string, kind models.RuleKind, value string, required bool) models.RequirementRule {
	return models.RequirementRule{ID: id, ProgramID: strPtr("prog-1"), Kind: kind, Value: types.JSONText(value), Required: required}
}

func findReason(result models.EligibilityResult, kind models.RuleKind) *models.EligibilityReason {
	for i := range result.Reasons {
		if result.Reasons[i].Kind == kind {
			return &result.Reasons[i]
		}
	}
	return nil
}

func TestEvaluateEligibilityGPABelowMinimum(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(40)
	rules := []models.RequirementRule{rule("r1", models.RuleGPAMinimum, `{"minimum": 60}`, true)}

	result, defects := EvaluateEligibility(bachelorProgram(), profile, rules)
	assert.Empty(t, defects)
	assert.Equal(t, models.StatusUnlikely, result.Status)
	reason := findReason(result, models.RuleGPAMinimum)
	require.NotNil(t, reason)
	assert.False(t, reason.Passed)
	assert.Equal(t, "r1", reason.RuleID)
}

func TestEvaluateEligibilityGPAMissing(t *testing.T) {
	rules := []models.RequirementRule{rule("r1", models.RuleGPAMinimum, `60`, true)}

	result, _ := EvaluateEligibility(bachelorProgram(), highSchoolProfile(), rules)
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Contains(t, result.MissingFields, "gpa")
	require.Len(t, result.Missing, 1)
	assert.True(t, result.Missing[0].Label.Complete())
}

func TestEvaluateEligibilityGPAFailWinsOverMissingData(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(55)
	rules := []models.RequirementRule{
		rule("r1", models.RuleGPAMinimum, `"60"`, true),
		rule("r2", models.RuleLanguageProficiency, `{"language":"english","ielts":6.5,"toefl":79}`, true),
		rule("r3", models.RulePortfolioRequired, `{}`, true),
	}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, rules)
	assert.Equal(t, models.StatusUnlikely, result.Status)
	assert.ElementsMatch(t, []string{"english_score", "has_portfolio"}, result.MissingFields)
}

func TestEvaluateEligibilityAllPass(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(85)
	profile.EnglishScore = &models.EnglishScore{Test: models.EnglishTestTOEFL, Score: 90}
	profile.TurkishLevel = strPtr("c1")
	profile.HasPortfolio = boolPtr(true)
	rules := []models.RequirementRule{
		rule("r1", models.RuleGPAMinimum, `{"min_gpa": 70}`, true),
		rule("r2", models.RuleLanguageProficiency, `{"language":"english","ielts":6.5,"toefl":79}`, true),
		rule("r3", models.RuleLanguageProficiency, `{"language":"turkish","min_level":"B2"}`, true),
		rule("r4", models.RulePortfolioRequired, `{}`, true),
	}
	result, defects := EvaluateEligibility(bachelorProgram(), profile, rules)
	assert.Empty(t, defects)
	assert.Equal(t, models.StatusLikelyEligible, result.Status)
	assert.Len(t, result.Reasons, 5, "education check plus every rule")
	for _, r := range result.Reasons {
		assert.True(t, r.Passed, r.Kind)
	}
	assert.Empty(t, result.MissingFields)
	assert.True(t, result.Disclaimer.Complete())
}

func TestEvaluateEligibilityMissingDataNeverUnlikely(t *testing.T) {
	rules := []models.RequirementRule{
		rule("r1", models.RuleGPAMinimum, `70`, true),
		rule("r2", models.RuleLanguageProficiency, `{"language":"english","ielts":6.5}`, true),
		rule("r3", models.RuleLanguageProficiency, `{"language":"turkish"}`, true),
		rule("r4", models.RulePortfolioRequired, `{}`, true),
		rule("r5", models.RuleWorkExperience, `{}`, true),
	}
	result, _ := EvaluateEligibility(bachelorProgram(), highSchoolProfile(), rules)
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.ElementsMatch(t, []string{"gpa", "english_score", "turkish_level", "has_portfolio", "work_experience_years"}, result.MissingFields)
}

func TestEvaluateEligibilityEveryReasonIsDataDriven(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(65)
	profile.EnglishScore = &models.EnglishScore{Test: models.EnglishTestIELTS, Score: 5.5}
	profile.HasPortfolio = boolPtr(false)
	rules := []models.RequirementRule{
		rule("r1", models.RuleGPAMinimum, `60`, true),
		rule("r2", models.RuleLanguageProficiency, `{"language":"en","ielts":6}`, true),
		rule("r3", models.RulePortfolioRequired, `{}`, false),
		rule("r4", models.RuleInterviewRequired, `{}`, true),
		rule("r5", models.RuleOther, `{"note":"essay"}`, false),
	}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, rules)
	require.NotEmpty(t, result.Reasons)
	for _, r := range result.Reasons {
		assert.True(t, r.DataDriven)
		assert.True(t, r.Text.Complete())
	}
	for _, a := range result.Assumptions {
		assert.True(t, a.Complete())
	}
	assert.Equal(t, models.StatusNeedsReview, result.Status)
}

func TestEvaluateEligibilityEducationPrerequisite(t *testing.T) {
	cases := []struct {
		current models.EducationLevel
		desired models.EducationLevel
		want    models.EligibilityStatus
	}{
		{models.LevelHighSchool, models.LevelAssociate, models.StatusLikelyEligible},
		{models.LevelHighSchool, models.LevelBachelor, models.StatusLikelyEligible},
		{models.LevelHighSchool, models.LevelMaster, models.StatusUnlikely},
		{models.LevelAssociate, models.LevelMaster, models.StatusUnlikely},
		{models.LevelBachelor, models.LevelMaster, models.StatusLikelyEligible},
		{models.LevelBachelor, models.LevelPhD, models.StatusUnlikely},
		{models.LevelMaster, models.LevelPhD, models.StatusLikelyEligible},
	}
	for _, tc := range cases {
		profile := models.StudentProfile{CurrentLevel: tc.current, DesiredLevel: tc.desired}
		program := models.Program{ID: "p", DegreeLevel: tc.desired}
		result, _ := EvaluateEligibility(program, profile, nil)
		assert.Equal(t, tc.want, result.Status, "%s -> %s", tc.current, tc.desired)
		reason := findReason(result, models.RuleEducationLevel)
		require.NotNil(t, reason)
		assert.Equal(t, tc.want != models.StatusUnlikely, reason.Passed)
		assert.NotEmpty(t, result.Assumptions, "no stored rules is surfaced")
	}
}

func TestEvaluateEligibilityRecommendedFailureIsNotUnlikely(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(40)
	rules := []models.RequirementRule{rule("r1", models.RuleGPAMinimum, `60`, false)}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, rules)
	assert.Equal(t, models.StatusNeedsReview, result.Status)
}

func TestEvaluateEligibilityUnparsableRuleIsAssumption(t *testing.T) {
	profile := highSchoolProfile()
	profile.GPA = floatPtr(90)
	rules := []models.RequirementRule{
		rule("r1", models.RuleGPAMinimum, `{"threshold":"high"}`, true),
		rule("r2", models.RuleLanguageProficiency, `not json`, true),
		rule("r3", models.RuleLanguageProficiency, `{"language":"german"}`, true),
		rule("r4", models.RuleLanguageProficiency, `{"language":"turkish","min_level":"Z9"}`, true),
	}
	result, defects := EvaluateEligibility(bachelorProgram(), profile, rules)
	require.Len(t, defects, 4)
	assert.Equal(t, "r1", defects[0].RuleID)
	assert.ErrorIs(t, defects[1].Err, errUnparsableRule)
	assert.Equal(t, models.StatusLikelyEligible, result.Status, "defective rules contribute nothing")
	assert.Len(t, result.Assumptions, 4)
	assert.Nil(t, findReason(result, models.RuleGPAMinimum))
}

func TestEvaluateEligibilityTurkishDefaultsToB2(t *testing.T) {
	profile := highSchoolProfile()
	profile.TurkishLevel = strPtr("B1")
	rules := []models.RequirementRule{rule("r1", models.RuleLanguageProficiency, `{"language":"turkish"}`, true)}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, rules)
	reason := findReason(result, models.RuleLanguageProficiency)
	require.NotNil(t, reason)
	assert.False(t, reason.Passed)
	assert.Contains(t, reason.Text.EN, "B2")
	assert.Equal(t, models.StatusNeedsReview, result.Status, "only GPA is a hard threshold")
}

func TestEvaluateEligibilityEnglishOtherTestMissing(t *testing.T) {
	profile := highSchoolProfile()
	profile.EnglishScore = &models.EnglishScore{Test: models.EnglishTestTOEFL, Score: 100}
	rules := []models.RequirementRule{rule("r1", models.RuleLanguageProficiency, `{"language":"english","ielts":7}`, true)}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, rules)
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Contains(t, result.MissingFields, "english_score")
}

func TestEvaluateEligibilityWorkExperienceDeclaredIsUnscored(t *testing.T) {
	profile := highSchoolProfile()
	profile.WorkExperienceYears = floatPtr(3)

	required := []models.RequirementRule{rule("r1", models.RuleWorkExperience, `{"years":2}`, true)}
	result, _ := EvaluateEligibility(bachelorProgram(), profile, required)
	assert.Equal(t, models.StatusNeedsReview, result.Status)
	assert.Nil(t, findReason(result, models.RuleWorkExperience))

	recommended := []models.RequirementRule{rule("r1", models.RuleWorkExperience, `{"years":2}`, false)}
	result, _ = EvaluateEligibility(bachelorProgram(), profile, recommended)
	assert.Equal(t, models.StatusLikelyEligible, result.Status)
}

func TestMergeRequirementRules(t *testing.T) {
	programRules := []models.RequirementRule{rule("p-gpa", models.RuleGPAMinimum, `70`, true)}
	institutionRules := []models.RequirementRule{
		{ID: "i-gpa", InstitutionID: strPtr("inst-1"), Kind: models.RuleGPAMinimum, Value: types.JSONText(`50`), Required: true},
		{ID: "i-lang", InstitutionID: strPtr("inst-1"), Kind: models.RuleLanguageProficiency, Value: types.JSONText(`{"language":"turkish"}`), Required: true},
	}
	merged, misfiled := MergeRequirementRules(programRules, institutionRules)
	require.Len(t, merged, 2)
	assert.Equal(t, "p-gpa", merged[0].ID)
	assert.Equal(t, "i-lang", merged[1].ID)
	assert.Empty(t, misfiled)
}

func TestMergeRequirementRulesSkipsMisfiledRows(t *testing.T) {
	programRules := []models.RequirementRule{
		rule("p-gpa", models.RuleGPAMinimum, `70`, true),
		{ID: "stray-inst", InstitutionID: strPtr("inst-1"), Kind: models.RulePortfolioRequired, Value: types.JSONText(`{}`), Required: true},
	}
	institutionRules := []models.RequirementRule{
		rule("stray-prog", models.RuleLanguageProficiency, `{"language":"turkish"}`, true),
		{ID: "i-port", InstitutionID: strPtr("inst-1"), Kind: models.RulePortfolioRequired, Value: types.JSONText(`{}`), Required: true},
	}

	merged, misfiled := MergeRequirementRules(programRules, institutionRules)
	require.Len(t, merged, 2)
	assert.Equal(t, "p-gpa", merged[0].ID)
	assert.Equal(t, "i-port", merged[1].ID, "a misfiled program row does not shadow the institution tier")
	assert.Equal(t, []string{"stray-inst", "stray-prog"}, misfiled)
}

func TestUnrecognisedRuleKindIsDistinctFromOther(t *testing.T) {
	rules := []models.RequirementRule{
		rule("r-other", models.RuleOther, `{}`, false),
		rule("r-height", models.RuleKind("height_minimum"), `{}`, false),
	}
	result, defects := EvaluateEligibility(bachelorProgram(), highSchoolProfile(), rules)
	assert.Empty(t, defects)
	assert.Equal(t, models.StatusLikelyEligible, result.Status, "recommended unscored rules do not block")

	var other, unknown bool
	for _, a := range result.Assumptions {
		if strings.Contains(a.EN, "unrecognised type \"height_minimum\"") {
			unknown = true
		}
		if a.EN == "An additional requirement is recorded and must be checked with the institution." {
			other = true
		}
	}
	assert.True(t, other)
	assert.True(t, unknown)
}

func TestParseThreshold(t *testing.T) {
	cases := map[string]float64{
		`60`:                     60,
		`"2.5"`:                  2.5,
		`{"minimum": 3}`:         3,
		`{"min": 70}`:            70,
		`{"value": 80, "x": 1}`: 80,
	}
	for raw, want := range cases {
		got, err := parseThreshold([]byte(raw), "minimum", "min", "min_gpa", "value")
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{``, `-1`, `"abc"`, `{}`, `{"minimum":"x"}`, `[1]`} {
		_, err := parseThreshold([]byte(raw), "minimum")
		assert.ErrorIs(t, err, errUnparsableRule, raw)
	}
}
