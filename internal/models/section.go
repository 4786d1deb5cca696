package models

import "time"

// Section represents a taught class offering with a schedule and roster.
type Section struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Code         string    `gorm:"size:32" json:"code"`
	Subject      string    `gorm:"size:128" json:"subject"`
	Schedule     string    `gorm:"size:128" json:"schedule"`
	Room         string    `gorm:"size:64" json:"room"`
	StudentCount int       `gorm:"default:0" json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Students     []Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tasks        []Task    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
