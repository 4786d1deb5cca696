package models

import "time"

// Attendance status values.
const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusAbsent  = "Absent"
	AttendanceStatusLate    = "Late"
)

// ValidAttendanceStatus reports whether the given value is a known status.
func ValidAttendanceStatus(status string) bool {
	switch status {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord captures one student's attendance on one date. The date is
// stored as a plain YYYY-MM-DD string so a (student, date) pair is unique
// regardless of time zone.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	SectionID uint      `gorm:"index;not null" json:"section_id"`
	StudentID uint      `gorm:"uniqueIndex:idx_attendance_student_date;not null" json:"student_id"`
	Date      string    `gorm:"size:10;uniqueIndex:idx_attendance_student_date;not null" json:"date"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
