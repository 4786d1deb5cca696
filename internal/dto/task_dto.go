package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// TaskCreateRequest describes the payload for creating a task.
type TaskCreateRequest struct {
	SectionID   uint    `json:"section_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"omitempty"`
	Difficulty  string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	DueDate     string  `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	TotalPoints float64 `json:"total_points" validate:"omitempty,gt=0"`
}

// TaskUpdateRequest describes the payload for updating a task.
type TaskUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description"`
	Difficulty  *string  `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	DueDate     *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TotalPoints *float64 `json:"total_points" validate:"omitempty,gt=0"`
}

// TaskResponse is the serialized representation returned to API clients.
type TaskResponse struct {
	ID          uint      `json:"id"`
	SectionID   uint      `json:"section_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	DueDate     time.Time `json:"due_date"`
	TotalPoints float64   `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskResponse converts a model into a DTO.
func NewTaskResponse(model models.Task) TaskResponse {
	return TaskResponse{
		ID:          model.ID,
		SectionID:   model.SectionID,
		Title:       model.Title,
		Description: model.Description,
		Difficulty:  model.Difficulty,
		DueDate:     model.DueDate,
		TotalPoints: model.TotalPoints,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewTaskResponseSlice converts a slice of models into DTOs.
func NewTaskResponseSlice(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}

	return responses
}
