package models

// TaskKind classifies a scheduled preparation task.
type TaskKind string

const (
	TaskStart       TaskKind = "start"
	TaskComplete    TaskKind = "complete"
	TaskTranslation TaskKind = "translation_notarization"
	TaskReview      TaskKind = "review"
	TaskSubmit      TaskKind = "submit"
)

// TimelineTask is a single action within a week.
type TimelineTask struct {
	Kind         TaskKind      `json:"kind"`
	DocumentKey  string        `json:"document_key,omitempty"`
	Title        LocalizedText `json:"title"`
	Critical     bool          `json:"critical"`
	Optional     bool          `json:"optional,omitempty"`
	DurationDays int           `json:"duration_days,omitempty"`
}

// TimelineWeek groups the tasks planned for one week.
type TimelineWeek struct {
	Week  int            `json:"week"`
	Tasks []TimelineTask `json:"tasks"`
}

// Timeline is the preparation plan for one program.
type Timeline struct {
	ProgramID         string          `json:"program_id"`
	TargetIntake      string          `json:"target_intake"`
	TotalWeeks        int             `json:"total_weeks"`
	Weeks             []TimelineWeek  `json:"weeks"`
	CriticalPathItems []string        `json:"critical_path_items"`
	Assumptions       []LocalizedText `json:"assumptions"`
}
