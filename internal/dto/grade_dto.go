package dto

import (
	"encoding/json"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// GradeUpsertRequest describes the payload for entering or overwriting a
// grade. Score is kept raw because the entry form historically sent whatever
// the teacher typed; the configured score policy decides how to parse it.
type GradeUpsertRequest struct {
	StudentID uint            `json:"student_id" validate:"required"`
	TaskID    uint            `json:"task_id" validate:"required"`
	Score     json.RawMessage `json:"score" validate:"required"`
}

// GradeResponse is the serialized representation returned to API clients.
type GradeResponse struct {
	StudentID   uint    `json:"student_id"`
	TaskID      uint    `json:"task_id"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Percentage  int     `json:"percentage"`
	LetterGrade string  `json:"letter_grade"`
}

// NewGradeResponse converts a model into a DTO.
func NewGradeResponse(model models.Grade) GradeResponse {
	return GradeResponse{
		StudentID:   model.StudentID,
		TaskID:      model.TaskID,
		Score:       model.Score,
		MaxScore:    model.MaxScore,
		Percentage:  model.Percentage,
		LetterGrade: model.LetterGrade,
	}
}

// NewGradeResponseSlice converts a slice of models into DTOs.
func NewGradeResponseSlice(grades []models.Grade) []GradeResponse {
	responses := make([]GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, NewGradeResponse(grade))
	}

	return responses
}

// StudentTotalResponse summarises one student's accumulated score.
type StudentTotalResponse struct {
	StudentID   uint    `json:"student_id"`
	Total       float64 `json:"total"`
	Max         float64 `json:"max"`
	Percentage  int     `json:"percentage"`
	LetterGrade string  `json:"letter_grade"`
}

// GradebookCell is one (student, task) entry in the gradebook matrix.
type GradebookCell struct {
	TaskID      uint     `json:"task_id"`
	Score       *float64 `json:"score"`
	Percentage  *int     `json:"percentage"`
	LetterGrade string   `json:"letter_grade,omitempty"`
}

// GradebookRow is one student's row in the gradebook matrix.
type GradebookRow struct {
	StudentID   uint            `json:"student_id"`
	StudentName string          `json:"student_name"`
	Cells       []GradebookCell `json:"cells"`
	Total       float64         `json:"total"`
	Max         float64         `json:"max"`
	Percentage  int             `json:"percentage"`
	LetterGrade string          `json:"letter_grade"`
}

// GradebookMatrixResponse is the per-section gradebook screen shape.
type GradebookMatrixResponse struct {
	SectionID uint           `json:"section_id"`
	Tasks     []TaskResponse `json:"tasks"`
	Rows      []GradebookRow `json:"rows"`
}
