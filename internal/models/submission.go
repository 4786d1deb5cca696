package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission status values. Freely settable; grading moves a submission to
// Graded but nothing prevents a move back to Pending.
const (
	SubmissionStatusPending = "Pending"
	SubmissionStatusGraded  = "Graded"
)

// Submission represents files a student handed in for a task.
type Submission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	StudentID   uint           `gorm:"index;not null" json:"student_id"`
	TaskID      uint           `gorm:"index;not null" json:"task_id"`
	Files       datatypes.JSON `gorm:"type:json" json:"files"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Status      string         `gorm:"size:16;not null;default:'Pending'" json:"status"`
	Score       *float64       `json:"score"`
	Feedback    string         `gorm:"type:text" json:"feedback"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsGraded reports whether the submission has received a grade.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
