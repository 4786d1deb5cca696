package models

import "time"

// Announcement represents a message broadcast to a section.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	SectionID uint      `gorm:"index;not null" json:"section_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedBy string    `gorm:"size:128" json:"created_by"`
	IsPinned  bool      `gorm:"index" json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
