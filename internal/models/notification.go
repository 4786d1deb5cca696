package models

import "time"

// Notification types emitted by system events.
const (
	NotificationTypeTaskDue      = "task_due"
	NotificationTypeGradePosted  = "grade_posted"
	NotificationTypeAnnouncement = "announcement"
	NotificationTypeSubmission   = "submission"
)

// Notification represents an in-app message targeted at a teacher account.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"size:64" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
