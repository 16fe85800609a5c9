package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

// documentLevelGate whitelists, per document key, the current education levels for which the
// document is relevant. Keys absent from the gate apply to every applicant.
var documentLevelGate = map[string][]models.EducationLevel{
	"bachelor_diploma":    {models.LevelBachelor, models.LevelMaster, models.LevelPhD},
	"bachelor_transcript": {models.LevelBachelor, models.LevelMaster, models.LevelPhD},
	"master_diploma":      {models.LevelMaster, models.LevelPhD},
	"master_transcript":   {models.LevelMaster, models.LevelPhD},
	"associate_diploma":   {models.LevelAssociate, models.LevelBachelor, models.LevelMaster, models.LevelPhD},
}

var whyNeeded = map[string]models.LocalizedText{
	"passport":                models.Text("Proves your identity and nationality for enrollment and the student residence permit.", "Kayıt ve öğrenci ikamet izni için kimliğinizi ve uyruğunuzu kanıtlar."),
	"photo":                   models.Text("Used for your student ID card and application file.", "Öğrenci kimlik kartınız ve başvuru dosyanız için kullanılır."),
	"high_school_diploma":     models.Text("Shows you completed secondary education, the basis for undergraduate admission.", "Lisans kabulünün temeli olan ortaöğretimi tamamladığınızı gösterir."),
	"high_school_transcript":  models.Text("Lets the admissions office check your grades and calculate your GPA.", "Kabul ofisinin notlarınızı incelemesini ve ortalamanızı hesaplamasını sağlar."),
	"associate_diploma":       models.Text("Shows you completed an associate degree.", "Ön lisans derecesini tamamladığınızı gösterir."),
	"bachelor_diploma":        models.Text("Proves the undergraduate degree graduate programs require.", "Lisansüstü programların istediği lisans derecesini kanıtlar."),
	"bachelor_transcript":     models.Text("Lets the program assess your undergraduate courses and GPA.", "Programın lisans derslerinizi ve ortalamanızı değerlendirmesini sağlar."),
	"master_diploma":          models.Text("Proves the master's degree doctoral programs require.", "Doktora programlarının istediği yüksek lisans derecesini kanıtlar."),
	"master_transcript":       models.Text("Lets the program assess your graduate courses and GPA.", "Programın yüksek lisans derslerinizi ve ortalamanızı değerlendirmesini sağlar."),
	"language_certificate":    models.Text("Demonstrates you can follow courses in the language of instruction.", "Öğretim dilinde dersleri takip edebileceğinizi gösterir."),
	"recommendation_letter":   models.Text("Gives the committee an independent view of your academic ability.", "Komisyona akademik yeteneğiniz hakkında bağımsız bir görüş sunar."),
	"motivation_letter":       models.Text("Explains why you chose this program and what you plan to achieve.", "Bu programı neden seçtiğinizi ve hedeflerinizi açıklar."),
	"cv":                      models.Text("Summarizes your education, experience and achievements.", "Eğitiminizi, deneyiminizi ve başarılarınızı özetler."),
	"portfolio":               models.Text("Shows your creative or design work for programs that assess it.", "Yaratıcı veya tasarım çalışmalarınızı değerlendiren programlara gösterir."),
	"financial_statement":     models.Text("Shows you can cover tuition and living costs; often needed for the visa.", "Öğrenim ücreti ve yaşam masraflarını karşılayabileceğinizi gösterir; çoğu zaman vize için gerekir."),
	"equivalency_certificate": models.Text("Confirms your foreign diploma is recognized as equivalent.", "Yabancı diplomanızın denkliğinin tanındığını doğrular."),
	"exam_result":             models.Text("Provides the entrance exam score the program uses for ranking.", "Programın sıralamada kullandığı giriş sınavı puanını sağlar."),
}

var genericWhyNeeded = models.Text(
	"The program lists this document as part of its application file; check the institution's guidance for details.",
	"Program bu belgeyi başvuru dosyasının parçası olarak listeliyor; ayrıntılar için kurumun yönergelerine bakın.",
)

// legalizationChainNationalities are nationality keywords for countries outside the
// Apostille convention, whose documents go through a consular legalization chain.
var legalizationChainNationalities = []string{
	"syria", "syrian", "iraq", "iraqi", "yemen", "yemeni", "libya", "libyan", "sudan", "sudanese",
	"afghanistan", "afghan", "jordan", "jordanian", "lebanon", "lebanese", "somalia", "somali",
	"algeria", "algerian", "iran", "iranian", "egypt", "egyptian",
	"سوريا", "سوري", "العراق", "عراقي", "اليمن", "يمني", "ليبيا", "السودان", "الأردن", "لبنان", "مصر",
}

var legalizationNote = models.Text(
	"Your country is not part of the Apostille convention: documents usually need certification by your foreign ministry and legalization at the embassy or consulate before use.",
	"Ülkeniz Apostil sözleşmesine taraf değil: belgelerin kullanılmadan önce genellikle dışişleri bakanlığınızca onaylanması ve büyükelçilik veya konsoloslukta tasdik edilmesi gerekir.",
)

var genericAttestationNote = models.Text(
	"Attestation rules differ by country; verify with the authorities in your country whether an Apostille or legalization is required.",
	"Tasdik kuralları ülkeye göre değişir; Apostil veya konsolosluk tasdiki gerekip gerekmediğini ülkenizdeki yetkililerle teyit edin.",
)

// AttestationNote returns advisory attestation guidance for a nationality.
func AttestationNote(nationality string) models.LocalizedText {
	normalized := NormalizeKeyword(nationality)
	if normalized == "" {
		return genericAttestationNote
	}
	for _, word := range strings.Fields(normalized) {
		for _, keyword := range legalizationChainNationalities {
			if word == keyword {
				return legalizationNote
			}
		}
	}
	return genericAttestationNote
}

// WhyNeeded explains a document key, falling back to a generic explanation.
func WhyNeeded(key string) models.LocalizedText {
	if text, ok := whyNeeded[key]; ok {
		return text
	}
	return genericWhyNeeded
}

func documentRelevant(key string, current models.EducationLevel) bool {
	allowed, gated := documentLevelGate[key]
	if !gated {
		return true
	}
	for _, level := range allowed {
		if level == current {
			return true
		}
	}
	return false
}

// ResolveDocuments merges program overrides with template defaults, filters documents
// irrelevant to the applicant's level and orders the checklist required-first, then by
// estimated duration.
func ResolveDocuments(programID string, profile models.StudentProfile, docs []models.ProgramDocument) models.DocumentChecklist {
	checklist := models.DocumentChecklist{
		ProgramID:       programID,
		Items:           []models.ChecklistItem{},
		AttestationNote: AttestationNote(profile.Nationality),
		Unknowns:        []models.LocalizedText{},
		Assumptions:     []models.LocalizedText{},
	}

	if len(docs) == 0 {
		checklist.Unknowns = append(checklist.Unknowns, models.Text(
			"No document requirements are recorded for this program; ask the institution for its document list.",
			"Bu program için kayıtlı belge şartı yok; belge listesini kurumdan isteyin.",
		))
		return checklist
	}

	var suppressed []string
	for _, doc := range docs {
		rule := doc.Rule
		if !documentRelevant(rule.DocumentKey, profile.CurrentLevel) {
			suppressed = append(suppressed, rule.DocumentKey)
			continue
		}
		checklist.Items = append(checklist.Items, resolveItem(doc, &checklist))
	}

	if len(suppressed) > 0 {
		list := strings.Join(suppressed, ", ")
		checklist.Assumptions = append(checklist.Assumptions, models.Text(
			fmt.Sprintf("Not listed for your current education level: %s.", list),
			fmt.Sprintf("Mevcut eğitim seviyeniz için listelenmedi: %s.", list),
		))
	}

	sort.SliceStable(checklist.Items, func(i, j int) bool {
		a, b := checklist.Items[i], checklist.Items[j]
		if a.Required != b.Required {
			return a.Required
		}
		da, db := daysOrZero(a.EstimatedDays), daysOrZero(b.EstimatedDays)
		if da != db {
			return da < db
		}
		return a.DocumentKey < b.DocumentKey
	})
	return checklist
}

func resolveItem(doc models.ProgramDocument, checklist *models.DocumentChecklist) models.ChecklistItem {
	rule := doc.Rule
	required := true
	if rule.Required != nil {
		required = *rule.Required
	}

	item := models.ChecklistItem{
		DocumentKey: rule.DocumentKey,
		Required:    required,
		WhyNeeded:   WhyNeeded(rule.DocumentKey),
	}
	if rule.Notes != nil {
		item.Notes = strings.TrimSpace(*rule.Notes)
	}

	tmpl := doc.Template
	if tmpl == nil {
		item.Name = models.Text(rule.DocumentKey, rule.DocumentKey)
		item.TranslationRequired = rule.TranslationRequired.Resolve(false)
		item.NotarizationRequired = rule.NotarizationRequired.Resolve(false)
		checklist.Unknowns = append(checklist.Unknowns, models.Text(
			fmt.Sprintf("%s has no catalog template; unset translation or notarization flags are unknown and shown as not required.", rule.DocumentKey),
			fmt.Sprintf("%s için katalog şablonu yok; belirtilmemiş tercüme veya noter bilgisi bilinmiyor ve gerekmiyor olarak gösterildi.", rule.DocumentKey),
		))
		checklist.Unknowns = append(checklist.Unknowns, unknownDuration(rule.DocumentKey))
		return item
	}

	item.Name = models.Text(tmpl.NameEN, fallbackText(tmpl.NameTR, tmpl.NameEN))
	item.TranslationRequired = rule.TranslationRequired.Resolve(tmpl.TranslationRequired)
	item.NotarizationRequired = rule.NotarizationRequired.Resolve(tmpl.NotarizationRequired)
	if tmpl.EstimatedDays != nil {
		days := *tmpl.EstimatedDays
		item.EstimatedDays = &days
	} else {
		checklist.Unknowns = append(checklist.Unknowns, unknownDuration(rule.DocumentKey))
	}
	return item
}

func unknownDuration(key string) models.LocalizedText {
	return models.Text(
		fmt.Sprintf("Estimated preparation time for %s is not recorded.", key),
		fmt.Sprintf("%s için tahmini hazırlık süresi kayıtlı değil.", key),
	)
}

func daysOrZero(days *int) int {
	if days == nil {
		return 0
	}
	return *days
}
