package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/admission-planner-api/internal/models"
)

func checklistItem(key string, required, translation bool, days *int) models.ChecklistItem {
	return models.ChecklistItem{
		DocumentKey:         key,
		Name:                models.Text(key, key),
		Required:            required,
		TranslationRequired: translation,
		EstimatedDays:       days,
	}
}

func tasksOf(timeline models.Timeline, week int) []models.TimelineTask {
	return timeline.Weeks[week-1].Tasks
}

func hasTask(tasks []models.TimelineTask, kind models.TaskKind, key string) bool {
	for _, task := range tasks {
		if task.Kind == kind && task.DocumentKey == key {
			return true
		}
	}
	return false
}

func TestBuildTimelineSchedulesCriticalPath(t *testing.T) {
	passport := checklistItem("passport", true, true, intPtr(30))
	passport.NotarizationRequired = true
	checklist := models.DocumentChecklist{Items: []models.ChecklistItem{
		checklistItem("photo", true, false, intPtr(2)),
		checklistItem("cv", true, false, intPtr(3)),
		passport,
		checklistItem("portfolio", false, false, intPtr(4)),
	}}
	program := models.Program{ID: "prog-1", Intakes: []string{"September", "February"}}

	timeline := BuildTimeline(program, checklist, "", DefaultTimelinePolicy())

	assert.Equal(t, "September", timeline.TargetIntake)
	assert.Equal(t, 8, timeline.TotalWeeks)
	require.Len(t, timeline.Weeks, 8)
	for i, w := range timeline.Weeks {
		assert.Equal(t, i+1, w.Week)
	}
	assert.Equal(t, []string{"passport"}, timeline.CriticalPathItems)

	require.True(t, hasTask(tasksOf(timeline, 1), models.TaskStart, "passport"))
	assert.Equal(t, 42, tasksOf(timeline, 1)[0].DurationDays, "translation and notarization buffers are added")
	assert.True(t, tasksOf(timeline, 1)[0].Critical)
	assert.True(t, hasTask(tasksOf(timeline, 3), models.TaskStart, "cv"))
	assert.True(t, hasTask(tasksOf(timeline, 4), models.TaskStart, "photo"))

	week5 := tasksOf(timeline, 5)
	assert.Equal(t, models.TaskTranslation, week5[0].Kind)
	assert.True(t, hasTask(week5, models.TaskComplete, "passport"))
	assert.True(t, hasTask(week5, models.TaskStart, "portfolio"))
	for _, task := range week5 {
		if task.DocumentKey == "portfolio" {
			assert.True(t, task.Optional)
		}
	}

	assert.True(t, hasTask(tasksOf(timeline, 6), models.TaskComplete, "cv"))
	assert.True(t, hasTask(tasksOf(timeline, 6), models.TaskComplete, "photo"))
	assert.Equal(t, models.TaskReview, tasksOf(timeline, 7)[0].Kind)

	last := tasksOf(timeline, 8)
	require.Len(t, last, 1)
	assert.Equal(t, models.TaskSubmit, last[0].Kind)
	assert.Contains(t, last[0].Title.EN, "September")

	require.Len(t, timeline.Assumptions, 1, "only the buffer note")
}

func TestBuildTimelineCriticalPathIncludesLongestItem(t *testing.T) {
	checklist := models.DocumentChecklist{Items: []models.ChecklistItem{
		checklistItem("a", true, false, intPtr(10)),
		checklistItem("b", true, false, intPtr(9)),
		checklistItem("c", true, false, intPtr(7)),
		checklistItem("d", true, false, intPtr(6)),
		checklistItem("e", true, false, intPtr(8)),
	}}
	timeline := BuildTimeline(models.Program{ID: "p"}, checklist, "", DefaultTimelinePolicy())

	assert.Equal(t, []string{"a", "b", "e", "c"}, timeline.CriticalPathItems)
	assert.True(t, hasTask(tasksOf(timeline, 1), models.TaskStart, "a"))
	assert.True(t, hasTask(tasksOf(timeline, 4), models.TaskStart, "c"))
	assert.True(t, hasTask(tasksOf(timeline, 3), models.TaskStart, "d"))
	assert.False(t, hasTask(tasksOf(timeline, 5), models.TaskTranslation, ""))
}

func TestBuildTimelineDefaultsDurations(t *testing.T) {
	checklist := models.DocumentChecklist{Items: []models.ChecklistItem{
		checklistItem("passport", true, false, nil),
		checklistItem("mystery", true, false, nil),
	}}
	timeline := BuildTimeline(models.Program{ID: "p", Intakes: []string{"Fall"}}, checklist, "", DefaultTimelinePolicy())

	starts := append(tasksOf(timeline, 1), tasksOf(timeline, 2)...)
	require.NotEmpty(t, starts)
	assert.Equal(t, 30, starts[0].DurationDays)
	require.Len(t, timeline.Assumptions, 2)
	assert.Contains(t, timeline.Assumptions[0].EN, "passport, mystery")
}

func TestBuildTimelineEmptyChecklist(t *testing.T) {
	timeline := BuildTimeline(models.Program{ID: "p"}, models.DocumentChecklist{}, "", TimelinePolicy{TotalWeeks: 3})

	assert.Equal(t, 8, timeline.TotalWeeks, "never shorter than eight weeks")
	assert.Equal(t, "September", timeline.TargetIntake)
	assert.Empty(t, timeline.CriticalPathItems)
	assert.NotNil(t, timeline.CriticalPathItems)
	assert.Equal(t, models.TaskSubmit, tasksOf(timeline, 8)[0].Kind)
	assert.Len(t, timeline.Assumptions, 3, "intake fallback, empty plan, buffers")
}

func TestBuildTimelineLongerPolicy(t *testing.T) {
	policy := DefaultTimelinePolicy()
	policy.TotalWeeks = 12
	timeline := BuildTimeline(models.Program{ID: "p", Intakes: []string{"Spring"}}, models.DocumentChecklist{}, "", policy)

	require.Len(t, timeline.Weeks, 12)
	for w := 7; w < 12; w++ {
		assert.Equal(t, models.TaskReview, tasksOf(timeline, w)[0].Kind, w)
	}
	assert.Equal(t, models.TaskSubmit, tasksOf(timeline, 12)[0].Kind)
}

func TestResolveIntake(t *testing.T) {
	declared := []string{"September 2025", "February 2026"}

	label, _, assumed := ResolveIntake(declared, "", "September")
	assert.Equal(t, "September 2025", label)
	assert.False(t, assumed)

	label, _, assumed = ResolveIntake(declared, "february", "September")
	assert.Equal(t, "February 2026", label)
	assert.False(t, assumed)

	label, _, assumed = ResolveIntake([]string{"Fall"}, "Fall 2025 intake", "September")
	assert.Equal(t, "Fall", label, "either side may contain the other")
	assert.False(t, assumed)

	label, note, assumed := ResolveIntake(declared, "July", "September")
	assert.Equal(t, "September 2025", label)
	assert.True(t, assumed)
	assert.Contains(t, note.EN, "July")
	assert.True(t, note.Complete())

	label, _, assumed = ResolveIntake(nil, "", "September")
	assert.Equal(t, "September", label)
	assert.True(t, assumed)

	label, note, assumed = ResolveIntake([]string{" ", ""}, "March", "September")
	assert.Equal(t, "September", label, "an undeclared target is never used")
	assert.True(t, assumed)
	assert.Contains(t, note.EN, "March")
	assert.True(t, note.Complete())
}

func TestBuildTimelineWithoutDeclaredIntakesUsesDefault(t *testing.T) {
	timeline := BuildTimeline(models.Program{ID: "p"}, models.DocumentChecklist{}, "February", DefaultTimelinePolicy())
	assert.Equal(t, "September", timeline.TargetIntake)
	require.NotEmpty(t, timeline.Assumptions)

	found := false
	for _, a := range timeline.Assumptions {
		if strings.Contains(a.EN, "February") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTimelinePolicyNormalized(t *testing.T) {
	p := TimelinePolicy{TotalWeeks: 2, TranslationBufferDays: -1, CriticalRatio: 3}.normalized()
	assert.Equal(t, 8, p.TotalWeeks)
	assert.Equal(t, 7, p.TranslationBufferDays)
	assert.Equal(t, 0, p.NotarizationBufferDays)
	assert.Equal(t, 7, p.DefaultDocumentDays)
	assert.Equal(t, 0.7, p.CriticalRatio)
	assert.Equal(t, "September", p.DefaultIntake)
}
