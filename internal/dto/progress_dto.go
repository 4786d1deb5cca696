package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// ProgressUpsertRequest describes the payload for recording a student's
// progress on a task. The status is teacher-set; no transition is enforced.
type ProgressUpsertRequest struct {
	StudentID uint     `json:"student_id" validate:"required"`
	TaskID    uint     `json:"task_id" validate:"required"`
	Status    string   `json:"status" validate:"required,oneof='Not Started' 'In Progress' 'Completed' 'Overdue'"`
	Score     *float64 `json:"score" validate:"omitempty,gte=0"`
	Feedback  string   `json:"feedback"`
}

// ProgressUpdateRequest describes the payload for updating one progress row.
type ProgressUpdateRequest struct {
	Status   *string  `json:"status" validate:"omitempty,oneof='Not Started' 'In Progress' 'Completed' 'Overdue'"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	Feedback *string  `json:"feedback"`
}

// ProgressResponse is the serialized representation returned to API clients.
type ProgressResponse struct {
	ID          uint       `json:"id"`
	StudentID   uint       `json:"student_id"`
	TaskID      uint       `json:"task_id"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score"`
	Feedback    string     `json:"feedback"`
	SubmittedAt *time.Time `json:"submitted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewProgressResponse converts a model into a DTO.
func NewProgressResponse(model models.Progress) ProgressResponse {
	return ProgressResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		TaskID:      model.TaskID,
		Status:      model.Status,
		Score:       model.Score,
		Feedback:    model.Feedback,
		SubmittedAt: model.SubmittedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewProgressResponseSlice converts a slice of models into DTOs.
func NewProgressResponseSlice(records []models.Progress) []ProgressResponse {
	responses := make([]ProgressResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewProgressResponse(record))
	}

	return responses
}
