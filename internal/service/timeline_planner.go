package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

const minTimelineWeeks = 8

// defaultDocumentDays holds acquisition estimates used when a template has none.
var defaultDocumentDays = map[string]int{
	"passport":                30,
	"photo":                   2,
	"high_school_diploma":     14,
	"high_school_transcript":  10,
	"bachelor_diploma":        14,
	"bachelor_transcript":     10,
	"master_diploma":          14,
	"master_transcript":       10,
	"language_certificate":    30,
	"recommendation_letter":   21,
	"motivation_letter":       7,
	"cv":                      3,
	"portfolio":               28,
	"financial_statement":     7,
	"equivalency_certificate": 45,
	"exam_result":             21,
}

// TimelinePolicy holds the fixed scheduling parameters.
type TimelinePolicy struct {
	TotalWeeks             int
	TranslationBufferDays  int
	NotarizationBufferDays int
	DefaultDocumentDays    int
	CriticalRatio          float64
	DefaultIntake          string
}

// DefaultTimelinePolicy mirrors the configuration defaults.
func DefaultTimelinePolicy() TimelinePolicy {
	return TimelinePolicy{
		TotalWeeks:             8,
		TranslationBufferDays:  7,
		NotarizationBufferDays: 5,
		DefaultDocumentDays:    7,
		CriticalRatio:          0.7,
		DefaultIntake:          "September",
	}
}

func (p TimelinePolicy) normalized() TimelinePolicy {
	def := DefaultTimelinePolicy()
	if p.TotalWeeks < minTimelineWeeks {
		p.TotalWeeks = minTimelineWeeks
	}
	if p.TranslationBufferDays < 0 {
		p.TranslationBufferDays = def.TranslationBufferDays
	}
	if p.NotarizationBufferDays < 0 {
		p.NotarizationBufferDays = def.NotarizationBufferDays
	}
	if p.DefaultDocumentDays <= 0 {
		p.DefaultDocumentDays = def.DefaultDocumentDays
	}
	if p.CriticalRatio <= 0 || p.CriticalRatio > 1 {
		p.CriticalRatio = def.CriticalRatio
	}
	if strings.TrimSpace(p.DefaultIntake) == "" {
		p.DefaultIntake = def.DefaultIntake
	}
	return p
}

type scheduledItem struct {
	item        models.ChecklistItem
	days        int
	translation bool
	critical    bool
}

// ResolveIntake picks the intake label for a plan. A target matches a declared intake when
// either contains the other, ignoring case. The boolean reports whether a fallback was used
// that the caller should surface as an assumption.
func ResolveIntake(declared []string, target, fallback string) (string, models.LocalizedText, bool) {
	target = strings.TrimSpace(target)
	var intakes []string
	for _, label := range declared {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			intakes = append(intakes, trimmed)
		}
	}

	if len(intakes) == 0 {
		if target != "" {
			return fallback, models.Text(
				fmt.Sprintf("The program declares no intakes, so your target %q cannot be confirmed; the plan assumes a %s intake.", target, fallback),
				fmt.Sprintf("Program dönem bilgisi vermiyor, hedefiniz %q doğrulanamadı; plan %s dönemine göre hazırlandı.", target, fallback),
			), true
		}
		return fallback, models.Text(
			fmt.Sprintf("The program declares no intakes; the plan assumes a %s intake.", fallback),
			fmt.Sprintf("Program dönem bilgisi vermiyor; plan %s dönemine göre hazırlandı.", fallback),
		), true
	}

	if target == "" {
		return intakes[0], models.LocalizedText{}, false
	}

	lowered := strings.ToLower(target)
	for _, label := range intakes {
		candidate := strings.ToLower(label)
		if strings.Contains(candidate, lowered) || strings.Contains(lowered, candidate) {
			return label, models.LocalizedText{}, false
		}
	}
	return intakes[0], models.Text(
		fmt.Sprintf("Requested intake %q is not offered; the plan uses %s.", target, intakes[0]),
		fmt.Sprintf("İstenen dönem %q sunulmuyor; plan %s dönemine göre hazırlandı.", target, intakes[0]),
	), true
}

// BuildTimeline schedules a resolved checklist into a fixed week-by-week plan.
func BuildTimeline(program models.Program, checklist models.DocumentChecklist, intakeTarget string, policy TimelinePolicy) models.Timeline {
	policy = policy.normalized()

	intake, intakeNote, assumed := ResolveIntake(program.Intakes, intakeTarget, policy.DefaultIntake)
	timeline := models.Timeline{
		ProgramID:         program.ID,
		TargetIntake:      intake,
		TotalWeeks:        policy.TotalWeeks,
		Weeks:             make([]models.TimelineWeek, policy.TotalWeeks),
		CriticalPathItems: []string{},
		Assumptions:       []models.LocalizedText{},
	}
	for i := range timeline.Weeks {
		timeline.Weeks[i] = models.TimelineWeek{Week: i + 1, Tasks: []models.TimelineTask{}}
	}
	if assumed {
		timeline.Assumptions = append(timeline.Assumptions, intakeNote)
	}

	items, defaulted := scheduleItems(checklist.Items, policy)
	if len(defaulted) > 0 {
		list := strings.Join(defaulted, ", ")
		timeline.Assumptions = append(timeline.Assumptions, models.Text(
			fmt.Sprintf("Default preparation times were used for: %s.", list),
			fmt.Sprintf("Şu belgeler için varsayılan hazırlık süreleri kullanıldı: %s.", list),
		))
	}
	if len(items) == 0 {
		timeline.Assumptions = append(timeline.Assumptions, models.Text(
			"No applicable documents were found; only review and submission steps are planned.",
			"Uygun belge bulunamadı; yalnızca kontrol ve başvuru adımları planlandı.",
		))
	}

	var critical, requiredRest, optionalRest []scheduledItem
	needsTranslation := false
	for _, s := range items {
		if s.translation {
			needsTranslation = true
		}
		switch {
		case s.critical:
			critical = append(critical, s)
			timeline.CriticalPathItems = append(timeline.CriticalPathItems, s.item.DocumentKey)
		case s.item.Required:
			requiredRest = append(requiredRest, s)
		default:
			optionalRest = append(optionalRest, s)
		}
	}

	week := func(n int) *models.TimelineWeek { return &timeline.Weeks[n-1] }

	// Critical items fill weeks 1-4 top-first, so the longest land in weeks 1-2.
	perWeek := int(math.Ceil(float64(len(critical)) / 4))
	for i, s := range critical {
		w := 1 + i/maxInt(perWeek, 1)
		week(w).Tasks = append(week(w).Tasks, startTask(s, false))
	}
	for i, s := range requiredRest {
		w := 3 + i%2
		week(w).Tasks = append(week(w).Tasks, startTask(s, false))
	}

	if needsTranslation {
		week(5).Tasks = append(week(5).Tasks, models.TimelineTask{
			Kind:  models.TaskTranslation,
			Title: models.Text("Submit documents for sworn translation and notarization", "Belgeleri yeminli tercüme ve noter onayına gönderin"),
		})
	}
	for _, s := range critical {
		week(5).Tasks = append(week(5).Tasks, completeTask(s))
	}
	for _, s := range optionalRest {
		week(5).Tasks = append(week(5).Tasks, startTask(s, true))
	}
	for _, s := range requiredRest {
		week(6).Tasks = append(week(6).Tasks, completeTask(s))
	}

	for w := 7; w < policy.TotalWeeks; w++ {
		week(w).Tasks = append(week(w).Tasks, models.TimelineTask{
			Kind:  models.TaskReview,
			Title: models.Text("Review the application file against the checklist", "Başvuru dosyasını kontrol listesine göre gözden geçirin"),
		})
	}
	week(policy.TotalWeeks).Tasks = append(week(policy.TotalWeeks).Tasks, models.TimelineTask{
		Kind: models.TaskSubmit,
		Title: models.Text(
			fmt.Sprintf("Submit the application for the %s intake", intake),
			fmt.Sprintf("%s dönemi için başvuruyu gönderin", intake),
		),
	})

	timeline.Assumptions = append(timeline.Assumptions, models.Text(
		fmt.Sprintf("Translation adds %d days and notarization %d days to a document's preparation time.", policy.TranslationBufferDays, policy.NotarizationBufferDays),
		fmt.Sprintf("Tercüme bir belgenin hazırlık süresine %d gün, noter onayı %d gün ekler.", policy.TranslationBufferDays, policy.NotarizationBufferDays),
	))
	return timeline
}

func scheduleItems(checklist []models.ChecklistItem, policy TimelinePolicy) ([]scheduledItem, []string) {
	items := make([]scheduledItem, 0, len(checklist))
	var defaulted []string
	for _, item := range checklist {
		days := 0
		switch {
		case item.EstimatedDays != nil && *item.EstimatedDays > 0:
			days = *item.EstimatedDays
		default:
			if d, ok := defaultDocumentDays[item.DocumentKey]; ok {
				days = d
			} else {
				days = policy.DefaultDocumentDays
			}
			defaulted = append(defaulted, item.DocumentKey)
		}
		if item.TranslationRequired {
			days += policy.TranslationBufferDays
		}
		if item.NotarizationRequired {
			days += policy.NotarizationBufferDays
		}
		items = append(items, scheduledItem{
			item:        item,
			days:        days,
			translation: item.TranslationRequired || item.NotarizationRequired,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].days != items[j].days {
			return items[i].days > items[j].days
		}
		return items[i].item.DocumentKey < items[j].item.DocumentKey
	})

	if len(items) > 0 {
		threshold := policy.CriticalRatio * float64(items[0].days)
		for i := range items {
			items[i].critical = float64(items[i].days) >= threshold
		}
	}
	return items, defaulted
}

func startTask(s scheduledItem, optional bool) models.TimelineTask {
	return models.TimelineTask{
		Kind:         models.TaskStart,
		DocumentKey:  s.item.DocumentKey,
		Title:        models.Text("Start: "+s.item.Name.EN, "Başlayın: "+s.item.Name.TR),
		Critical:     s.critical,
		Optional:     optional,
		DurationDays: s.days,
	}
}

func completeTask(s scheduledItem) models.TimelineTask {
	return models.TimelineTask{
		Kind:         models.TaskComplete,
		DocumentKey:  s.item.DocumentKey,
		Title:        models.Text("Complete: "+s.item.Name.EN, "Tamamlayın: "+s.item.Name.TR),
		Critical:     s.critical,
		DurationDays: s.days,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
