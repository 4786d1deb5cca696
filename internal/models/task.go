package models

import "time"

// Task difficulty levels.
const (
	TaskDifficultyEasy   = "Easy"
	TaskDifficultyMedium = "Medium"
	TaskDifficultyHard   = "Hard"
)

// Task represents an assignment, quiz or activity scoped to a section.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	SectionID   uint      `gorm:"index;not null" json:"section_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Difficulty  string    `gorm:"size:16;default:'Medium'" json:"difficulty"`
	DueDate     time.Time `gorm:"index" json:"due_date"`
	TotalPoints float64   `gorm:"default:100" json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPastDue reports whether the task deadline has already passed.
func (t Task) IsPastDue(reference time.Time) bool {
	return reference.After(t.DueDate)
}
