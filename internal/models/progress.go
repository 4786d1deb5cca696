package models

import "time"

// Progress status values. All four are teacher-set; the system never assigns
// Overdue on its own, and any status may move to any other status.
const (
	ProgressStatusNotStarted = "Not Started"
	ProgressStatusInProgress = "In Progress"
	ProgressStatusCompleted  = "Completed"
	ProgressStatusOverdue    = "Overdue"
)

// ValidProgressStatus reports whether the given value is a known status.
func ValidProgressStatus(status string) bool {
	switch status {
	case ProgressStatusNotStarted, ProgressStatusInProgress, ProgressStatusCompleted, ProgressStatusOverdue:
		return true
	default:
		return false
	}
}

// Progress represents a student's completion state for a task. One row exists
// per (student, task) pair; updates overwrite in place.
type Progress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	StudentID   uint       `gorm:"uniqueIndex:idx_progress_student_task;not null" json:"student_id"`
	TaskID      uint       `gorm:"uniqueIndex:idx_progress_student_task;not null" json:"task_id"`
	Status      string     `gorm:"size:32;not null;default:'Not Started'" json:"status"`
	Score       *float64   `json:"score"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
	SubmittedAt *time.Time `json:"submitted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
