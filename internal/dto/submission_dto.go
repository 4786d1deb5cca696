package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// SubmissionCreateRequest describes the multipart form fields accompanying
// uploaded files.
type SubmissionCreateRequest struct {
	StudentID uint `form:"student_id" json:"student_id" validate:"required"`
	TaskID    uint `form:"task_id" json:"task_id" validate:"required"`
}

// SubmissionGradeRequest describes the payload for grading a submission.
type SubmissionGradeRequest struct {
	Score    float64 `json:"score" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}

// SubmissionResponse is the serialized representation returned to API clients.
type SubmissionResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	TaskID      uint      `json:"task_id"`
	Files       []string  `json:"files"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
	Score       *float64  `json:"score"`
	Feedback    string    `json:"feedback"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	var files []string
	if len(model.Files) > 0 {
		_ = json.Unmarshal(model.Files, &files)
	}
	if files == nil {
		files = []string{}
	}

	return SubmissionResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		TaskID:      model.TaskID,
		Files:       files,
		SubmittedAt: model.SubmittedAt,
		Status:      model.Status,
		Score:       model.Score,
		Feedback:    model.Feedback,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
