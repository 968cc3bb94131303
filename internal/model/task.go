package model

// Task status values. Progress writes re-derive status from these.
const (
	TaskStatusNotStarted = "NOT_STARTED"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// ValidTaskStatus reports whether s is one of the closed status set.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// StatusForProgress derives the task status from a progress value.
func StatusForProgress(progress int) string {
	switch {
	case progress >= 100:
		return TaskStatusDone
	case progress > 0:
		return TaskStatusInProgress
	default:
		return TaskStatusNotStarted
	}
}

// Task belongs to a project. Dates are free-form strings, not validated
// beyond presence. ProjectTaskNo is a per-project ordinal for the UI.
type Task struct {
	BaseModel
	ProjectID     int64  `gorm:"not null;index" json:"project_id"`
	ProjectTaskNo int    `gorm:"not null;default:1" json:"project_task_no"`
	Title         string `gorm:"size:200;not null" json:"title"`
	Description   string `gorm:"type:text;default:''" json:"description"`
	AssigneeID    *int64 `gorm:"index" json:"assignee_id"`
	Status        string `gorm:"size:20;not null;default:'NOT_STARTED'" json:"status"`
	Progress      int    `gorm:"not null;default:0" json:"progress"`
	StartDate     string `gorm:"size:30" json:"start_date"`
	EndDate       string `gorm:"size:30" json:"end_date"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskComment is immutable once created.
type TaskComment struct {
	BaseModel
	TaskID  int64  `gorm:"not null;index" json:"task_id"`
	UserID  int64  `gorm:"not null" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (TaskComment) TableName() string {
	return "task_comments"
}

// TaskAttachment stores a file name and path only; content never
// crosses the wire.
type TaskAttachment struct {
	BaseModel
	TaskID   int64  `gorm:"not null;index" json:"task_id"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	Filepath string `gorm:"size:512;not null" json:"filepath"`
}

func (TaskAttachment) TableName() string {
	return "task_attachments"
}
