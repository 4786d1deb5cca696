package models

import (
	"math"
	"time"
)

// Letter grade values returned by LetterGrade.
const (
	LetterGradeA = "A"
	LetterGradeB = "B"
	LetterGradeC = "C"
	LetterGradeD = "D"
	LetterGradeF = "F"
)

// LetterGrade maps a rounded percentage onto a letter grade. Boundaries are
// inclusive at 90/80/70/60.
func LetterGrade(percentage int) string {
	switch {
	case percentage >= 90:
		return LetterGradeA
	case percentage >= 80:
		return LetterGradeB
	case percentage >= 70:
		return LetterGradeC
	case percentage >= 60:
		return LetterGradeD
	default:
		return LetterGradeF
	}
}

// Percentage computes round(score/max*100), returning 0 when max is not
// positive so callers never divide by zero.
func Percentage(score, max float64) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(score / max * 100))
}

// Grade represents a scored outcome for a student on a task. MaxScore is
// captured from the task's total points at entry time and never re-derived,
// so later edits to the task leave existing grades untouched.
type Grade struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	StudentID   uint      `gorm:"uniqueIndex:idx_grade_student_task;not null" json:"student_id"`
	TaskID      uint      `gorm:"uniqueIndex:idx_grade_student_task;not null" json:"task_id"`
	Score       float64   `gorm:"not null" json:"score"`
	MaxScore    float64   `gorm:"not null" json:"max_score"`
	Percentage  int       `gorm:"not null" json:"percentage"`
	LetterGrade string    `gorm:"size:2;not null" json:"letter_grade"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Apply recomputes the derived fields from the stored score and max score.
func (g *Grade) Apply(score float64) {
	g.Score = score
	g.Percentage = Percentage(score, g.MaxScore)
	g.LetterGrade = LetterGrade(g.Percentage)
}
