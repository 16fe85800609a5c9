package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// EligibilityDisclaimer accompanies every evaluation.
var EligibilityDisclaimer = models.Text(
	"This is a preliminary, data-driven assessment and not a final admission decision. The institution makes the final decision.",
	"Bu değerlendirme ön bilgi amaçlıdır ve kesin kabul kararı değildir. Nihai kararı kurum verir.",
)

var errUnparsableRule = errors.New("unparsable rule payload")

// RuleDefect records a stored rule whose payload could not be interpreted for its kind.
type RuleDefect struct {
	RuleID string
	Kind   models.RuleKind
	Err    error
}

type ruleOutcome int

const (
	outcomePass ruleOutcome = iota
	outcomeFail
	outcomeInsufficient
	outcomeUnscored
	outcomeDefect
)

var turkishLevels = map[string]int{"A1": 1, "A2": 2, "B1": 3, "B2": 4, "C1": 5, "C2": 6}

const defaultTurkishMinimum = "B2"

var missingFieldLabels = map[string]models.LocalizedText{
	"gpa":                   models.Text("Grade point average (GPA)", "Not ortalaması (GPA)"),
	"english_score":         models.Text("English test score (IELTS or TOEFL)", "İngilizce sınav puanı (IELTS veya TOEFL)"),
	"turkish_level":         models.Text("Turkish proficiency level", "Türkçe yeterlilik seviyesi"),
	"has_portfolio":         models.Text("Whether you have a portfolio", "Portfolyonuzun olup olmadığı"),
	"work_experience_years": models.Text("Years of work experience", "İş deneyimi (yıl)"),
}

// MergeRequirementRules applies the two-tier lookup: every program-scoped rule, then the
// institution-scoped rules whose kind the program does not already cover. Rows that arrive
// under the wrong tier are left out and their ids returned.
func MergeRequirementRules(programRules, institutionRules []models.RequirementRule) ([]models.RequirementRule, []string) {
	merged := make([]models.RequirementRule, 0, len(programRules)+len(institutionRules))
	covered := make(map[models.RuleKind]struct{}, len(programRules))
	var misfiled []string
	for _, rule := range programRules {
		if !rule.ProgramScoped() {
			misfiled = append(misfiled, rule.ID)
			continue
		}
		merged = append(merged, rule)
		covered[rule.Kind] = struct{}{}
	}
	for _, rule := range institutionRules {
		if rule.ProgramScoped() {
			misfiled = append(misfiled, rule.ID)
			continue
		}
		if _, ok := covered[rule.Kind]; ok {
			continue
		}
		merged = append(merged, rule)
	}
	return merged, misfiled
}

type evaluation struct {
	result      models.EligibilityResult
	defects     []RuleDefect
	missingSeen map[string]struct{}
	hardFail    bool
	incomplete  bool
	unresolved  bool
}

// EvaluateEligibility classifies a profile against one program's merged requirement rules.
// It never invents a threshold: rules it cannot score are reported as missing data or
// assumptions, never as failures.
func EvaluateEligibility(program models.Program, profile models.StudentProfile, rules []models.RequirementRule) (models.EligibilityResult, []RuleDefect) {
	ev := &evaluation{
		result: models.EligibilityResult{
			ProgramID:     program.ID,
			Reasons:       []models.EligibilityReason{},
			Missing:       []models.MissingField{},
			MissingFields: []string{},
			Assumptions:   []models.LocalizedText{},
			Disclaimer:    EligibilityDisclaimer,
		},
		missingSeen: make(map[string]struct{}),
	}

	ev.checkEducationLevel(program, profile)

	if len(rules) == 0 {
		ev.assume(models.Text(
			"No admission requirements are recorded for this program; only your education level was checked.",
			"Bu program için kayıtlı başvuru şartı yok; yalnızca eğitim seviyeniz kontrol edildi.",
		))
	}

	for _, rule := range rules {
		ev.apply(rule, profile)
	}

	ev.result.Status = ev.status()
	return ev.result, ev.defects
}

func (ev *evaluation) status() models.EligibilityStatus {
	switch {
	case ev.hardFail:
		return models.StatusUnlikely
	case ev.incomplete:
		return models.StatusNeedsReview
	case !ev.unresolved:
		return models.StatusLikelyEligible
	default:
		return models.StatusNeedsReview
	}
}

func (ev *evaluation) checkEducationLevel(program models.Program, profile models.StudentProfile) {
	target := profile.DesiredLevel
	passed := educationPrerequisiteMet(target, profile.CurrentLevel)
	current := levelLabel(profile.CurrentLevel)
	desired := levelLabel(target)

	var text models.LocalizedText
	if passed {
		text = models.Text(
			fmt.Sprintf("Your current level (%s) allows applying to %s programs.", current.EN, desired.EN),
			fmt.Sprintf("Mevcut seviyeniz (%s), %s programlarına başvurmaya uygundur.", current.TR, desired.TR),
		)
	} else {
		text = models.Text(
			fmt.Sprintf("Applying to %s programs requires a prior degree that your current level (%s) does not include.", desired.EN, current.EN),
			fmt.Sprintf("%s programlarına başvuru, mevcut seviyenizin (%s) kapsamadığı bir önceki dereceyi gerektirir.", desired.TR, current.TR),
		)
		ev.hardFail = true
	}
	ev.reason(models.EligibilityReason{Kind: models.RuleEducationLevel, Passed: passed, Required: true, Text: text})

	if program.DegreeLevel != "" && program.DegreeLevel != target {
		programLevel := levelLabel(program.DegreeLevel)
		ev.assume(models.Text(
			fmt.Sprintf("This is a %s program but your desired level is %s; the education check used your desired level.", programLevel.EN, desired.EN),
			fmt.Sprintf("Bu bir %s programı, hedef seviyeniz ise %s; eğitim kontrolü hedef seviyenize göre yapıldı.", programLevel.TR, desired.TR),
		))
	}
}

func educationPrerequisiteMet(target, current models.EducationLevel) bool {
	switch target {
	case models.LevelAssociate, models.LevelBachelor:
		return current != ""
	case models.LevelMaster:
		return current == models.LevelBachelor || current == models.LevelMaster || current == models.LevelPhD
	case models.LevelPhD:
		return current == models.LevelMaster || current == models.LevelPhD
	default:
		return false
	}
}

func (ev *evaluation) apply(rule models.RequirementRule, profile models.StudentProfile) {
	var outcome ruleOutcome
	switch rule.Kind {
	case models.RuleGPAMinimum:
		outcome = ev.evaluateGPA(rule, profile)
	case models.RuleLanguageProficiency:
		outcome = ev.evaluateLanguage(rule, profile)
	case models.RulePortfolioRequired:
		outcome = ev.evaluatePortfolio(rule, profile)
	case models.RuleWorkExperience:
		outcome = ev.evaluateWorkExperience(rule, profile)
	default:
		outcome = ev.noteUnscored(rule)
	}

	switch outcome {
	case outcomeFail:
		if rule.Kind == models.RuleGPAMinimum && rule.Required {
			ev.hardFail = true
		} else {
			ev.unresolved = true
		}
	case outcomeInsufficient:
		ev.incomplete = true
	case outcomeUnscored:
		if rule.Required {
			ev.unresolved = true
		}
	}
}

func (ev *evaluation) evaluateGPA(rule models.RequirementRule, profile models.StudentProfile) ruleOutcome {
	minimum, err := parseThreshold(json.RawMessage(rule.Value), "minimum", "min", "min_gpa", "value")
	if err != nil {
		return ev.defect(rule, err)
	}
	if profile.GPA == nil {
		return ev.missing("gpa")
	}
	gpa := *profile.GPA
	passed := gpa >= minimum
	var text models.LocalizedText
	if passed {
		text = models.Text(
			fmt.Sprintf("Your GPA %s meets the minimum of %s.", formatNumber(gpa), formatNumber(minimum)),
			fmt.Sprintf("Not ortalamanız %s, asgari %s şartını karşılıyor.", formatNumber(gpa), formatNumber(minimum)),
		)
	} else {
		text = models.Text(
			fmt.Sprintf("Your GPA %s is below the minimum of %s.", formatNumber(gpa), formatNumber(minimum)),
			fmt.Sprintf("Not ortalamanız %s, asgari %s şartının altında.", formatNumber(gpa), formatNumber(minimum)),
		)
	}
	return ev.scored(rule, passed, text)
}

type languagePayload struct {
	Language string   `json:"language"`
	IELTS    *float64 `json:"ielts"`
	TOEFL    *float64 `json:"toefl"`
	MinLevel string   `json:"min_level"`
}

func (ev *evaluation) evaluateLanguage(rule models.RequirementRule, profile models.StudentProfile) ruleOutcome {
	var payload languagePayload
	if err := json.Unmarshal(rule.Value, &payload); err != nil {
		return ev.defect(rule, fmt.Errorf("%w: %v", errUnparsableRule, err))
	}
	switch strings.ToLower(strings.TrimSpace(payload.Language)) {
	case "english", "en":
		return ev.evaluateEnglish(rule, payload, profile)
	case "turkish", "tr":
		return ev.evaluateTurkish(rule, payload, profile)
	default:
		return ev.defect(rule, fmt.Errorf("%w: unknown language %q", errUnparsableRule, payload.Language))
	}
}

func (ev *evaluation) evaluateEnglish(rule models.RequirementRule, payload languagePayload, profile models.StudentProfile) ruleOutcome {
	if payload.IELTS == nil && payload.TOEFL == nil {
		return ev.defect(rule, fmt.Errorf("%w: english rule without ielts or toefl threshold", errUnparsableRule))
	}
	if profile.EnglishScore == nil {
		return ev.missing("english_score")
	}

	score := profile.EnglishScore
	var threshold *float64
	switch score.Test {
	case models.EnglishTestIELTS:
		threshold = payload.IELTS
	case models.EnglishTestTOEFL:
		threshold = payload.TOEFL
	}
	if threshold == nil {
		ev.assume(models.Text(
			fmt.Sprintf("This program lists %s; your %s score could not be compared.", englishAlternatives(payload), strings.ToUpper(string(score.Test))),
			fmt.Sprintf("Bu program %s şartı arıyor; %s puanınız karşılaştırılamadı.", englishAlternatives(payload), strings.ToUpper(string(score.Test))),
		))
		return ev.missing("english_score")
	}

	test := strings.ToUpper(string(score.Test))
	passed := score.Score >= *threshold
	var text models.LocalizedText
	if passed {
		text = models.Text(
			fmt.Sprintf("Your %s score %s meets the required %s.", test, formatNumber(score.Score), formatNumber(*threshold)),
			fmt.Sprintf("%s puanınız %s, gereken %s değerini karşılıyor.", test, formatNumber(score.Score), formatNumber(*threshold)),
		)
	} else {
		text = models.Text(
			fmt.Sprintf("Your %s score %s is below the required %s.", test, formatNumber(score.Score), formatNumber(*threshold)),
			fmt.Sprintf("%s puanınız %s, gereken %s değerinin altında.", test, formatNumber(score.Score), formatNumber(*threshold)),
		)
	}
	return ev.scored(rule, passed, text)
}

func englishAlternatives(payload languagePayload) string {
	var parts []string
	if payload.IELTS != nil {
		parts = append(parts, "IELTS "+formatNumber(*payload.IELTS))
	}
	if payload.TOEFL != nil {
		parts = append(parts, "TOEFL "+formatNumber(*payload.TOEFL))
	}
	return strings.Join(parts, " / ")
}

func (ev *evaluation) evaluateTurkish(rule models.RequirementRule, payload languagePayload, profile models.StudentProfile) ruleOutcome {
	minimum := strings.ToUpper(strings.TrimSpace(payload.MinLevel))
	if minimum == "" {
		minimum = defaultTurkishMinimum
		ev.assume(models.Text(
			"The Turkish requirement does not state a level; B2 was assumed.",
			"Türkçe şartı bir seviye belirtmiyor; B2 varsayıldı.",
		))
	}
	required, ok := turkishLevels[minimum]
	if !ok {
		return ev.defect(rule, fmt.Errorf("%w: unknown turkish level %q", errUnparsableRule, payload.MinLevel))
	}
	if profile.TurkishLevel == nil {
		return ev.missing("turkish_level")
	}
	level := strings.ToUpper(*profile.TurkishLevel)
	actual, ok := turkishLevels[level]
	if !ok {
		return ev.missing("turkish_level")
	}
	passed := actual >= required
	var text models.LocalizedText
	if passed {
		text = models.Text(
			fmt.Sprintf("Your Turkish level %s meets the required %s.", level, minimum),
			fmt.Sprintf("Türkçe seviyeniz %s, gereken %s seviyesini karşılıyor.", level, minimum),
		)
	} else {
		text = models.Text(
			fmt.Sprintf("Your Turkish level %s is below the required %s.", level, minimum),
			fmt.Sprintf("Türkçe seviyeniz %s, gereken %s seviyesinin altında.", level, minimum),
		)
	}
	return ev.scored(rule, passed, text)
}

func (ev *evaluation) evaluatePortfolio(rule models.RequirementRule, profile models.StudentProfile) ruleOutcome {
	if profile.HasPortfolio == nil {
		return ev.missing("has_portfolio")
	}
	if *profile.HasPortfolio {
		return ev.scored(rule, true, models.Text(
			"You declared a portfolio, which this program asks for.",
			"Bu programın istediği portfolyoya sahip olduğunuzu belirttiniz.",
		))
	}
	return ev.scored(rule, false, models.Text(
		"This program asks for a portfolio and you declared you do not have one.",
		"Bu program portfolyo istiyor ve portfolyonuz olmadığını belirttiniz.",
	))
}

// evaluateWorkExperience only checks presence: no threshold comparison is defined for
// work experience, so a declared value is noted and left unscored.
func (ev *evaluation) evaluateWorkExperience(rule models.RequirementRule, profile models.StudentProfile) ruleOutcome {
	if profile.WorkExperienceYears == nil {
		return ev.missing("work_experience_years")
	}
	years := formatNumber(*profile.WorkExperienceYears)
	ev.assume(models.Text(
		fmt.Sprintf("This program has a work experience requirement; your %s years were recorded but not scored.", years),
		fmt.Sprintf("Bu programın iş deneyimi şartı var; %s yıllık deneyiminiz kaydedildi ancak puanlanmadı.", years),
	))
	return outcomeUnscored
}

func (ev *evaluation) noteUnscored(rule models.RequirementRule) ruleOutcome {
	switch rule.Kind {
	case models.RuleExamScore:
		ev.assume(models.Text(
			"This program has an exam score requirement that cannot be checked from your profile.",
			"Bu programın profilinizden kontrol edilemeyen bir sınav puanı şartı var.",
		))
	case models.RuleInterviewRequired:
		ev.assume(models.Text(
			"This program requires an interview; its outcome cannot be predicted.",
			"Bu program mülakat gerektiriyor; mülakat sonucu öngörülemez.",
		))
	case models.RuleOther:
		ev.assume(models.Text(
			"An additional requirement is recorded and must be checked with the institution.",
			"Kayıtlı ek bir şart var ve kurumla teyit edilmelidir.",
		))
	default:
		if !rule.Kind.Known() {
			ev.assume(models.Text(
				fmt.Sprintf("A requirement of unrecognised type %q is recorded; it was not evaluated and must be checked with the institution.", rule.Kind),
				fmt.Sprintf("Tanınmayan %q türünde bir şart kayıtlı; değerlendirilmedi ve kurumla teyit edilmelidir.", rule.Kind),
			))
			break
		}
		ev.assume(models.Text(
			fmt.Sprintf("An additional requirement (%s) is recorded and must be checked with the institution.", rule.Kind),
			fmt.Sprintf("Kayıtlı ek bir şart (%s) var ve kurumla teyit edilmelidir.", rule.Kind),
		))
	}
	return outcomeUnscored
}

func (ev *evaluation) scored(rule models.RequirementRule, passed bool, text models.LocalizedText) ruleOutcome {
	ev.reason(models.EligibilityReason{RuleID: rule.ID, Kind: rule.Kind, Passed: passed, Required: rule.Required, Text: text})
	if passed {
		return outcomePass
	}
	return outcomeFail
}

func (ev *evaluation) reason(r models.EligibilityReason) {
	r.DataDriven = true
	ev.result.Reasons = append(ev.result.Reasons, r)
}

func (ev *evaluation) missing(field string) ruleOutcome {
	if _, ok := ev.missingSeen[field]; !ok {
		ev.missingSeen[field] = struct{}{}
		ev.result.MissingFields = append(ev.result.MissingFields, field)
		ev.result.Missing = append(ev.result.Missing, models.MissingField{Field: field, Label: missingFieldLabels[field]})
	}
	return outcomeInsufficient
}

func (ev *evaluation) assume(text models.LocalizedText) {
	ev.result.Assumptions = append(ev.result.Assumptions, text)
}

func (ev *evaluation) defect(rule models.RequirementRule, err error) ruleOutcome {
	ev.defects = append(ev.defects, RuleDefect{RuleID: rule.ID, Kind: rule.Kind, Err: err})
	ev.assume(models.Text(
		fmt.Sprintf("A stored %s requirement could not be read and was ignored; please confirm it with the institution.", rule.Kind),
		fmt.Sprintf("Kayıtlı bir %s şartı okunamadı ve dikkate alınmadı; lütfen kurumla teyit edin.", rule.Kind),
	))
	return outcomeDefect
}

// parseThreshold accepts a bare number, a numeric string, or an object carrying the number
// under one of the given keys.
func parseThreshold(raw json.RawMessage, keys ...string) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: empty payload", errUnparsableRule)
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return checkThreshold(number)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if perr != nil {
			return 0, fmt.Errorf("%w: %q is not a number", errUnparsableRule, text)
		}
		return checkThreshold(parsed)
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return 0, fmt.Errorf("%w: %v", errUnparsableRule, err)
	}
	for _, key := range keys {
		if value, ok := object[key]; ok {
			var n float64
			if err := json.Unmarshal(value, &n); err != nil {
				return 0, fmt.Errorf("%w: %s is not a number", errUnparsableRule, key)
			}
			return checkThreshold(n)
		}
	}
	return 0, fmt.Errorf("%w: no threshold key", errUnparsableRule)
}

func checkThreshold(v float64) (float64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: negative threshold", errUnparsableRule)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func levelLabel(level models.EducationLevel) models.LocalizedText {
	switch level {
	case models.LevelHighSchool:
		return models.Text("high school", "lise")
	case models.LevelAssociate:
		return models.Text("associate", "ön lisans")
	case models.LevelBachelor:
		return models.Text("bachelor's", "lisans")
	case models.LevelMaster:
		return models.Text("master's", "yüksek lisans")
	case models.LevelPhD:
		return models.Text("doctoral", "doktora")
	default:
		return models.Text(string(level), string(level))
	}
}
