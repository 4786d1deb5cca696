package models

import (
	"strings"
	"time"
)

// Student represents a learner enrolled in a section.
type Student struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	SectionID     uint       `gorm:"index;not null" json:"section_id"`
	FirstName     string     `gorm:"size:128;not null" json:"first_name"`
	LastName      string     `gorm:"size:128" json:"last_name"`
	StudentNumber string     `gorm:"size:64;index" json:"student_number"`
	Email         string     `gorm:"size:255" json:"email"`
	EnrolledAt    *time.Time `json:"enrolled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FullName joins the first and last name, tolerating a missing last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
