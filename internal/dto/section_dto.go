package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// SectionCreateRequest describes the payload for creating a section.
type SectionCreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Code     string `json:"code" validate:"omitempty,max=32"`
	Subject  string `json:"subject" validate:"omitempty,max=128"`
	Schedule string `json:"schedule" validate:"omitempty,max=128"`
	Room     string `json:"room" validate:"omitempty,max=64"`
}

// SectionUpdateRequest describes the payload for updating a section.
type SectionUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Code     *string `json:"code" validate:"omitempty,max=32"`
	Subject  *string `json:"subject" validate:"omitempty,max=128"`
	Schedule *string `json:"schedule" validate:"omitempty,max=128"`
	Room     *string `json:"room" validate:"omitempty,max=64"`
}

// SectionResponse is the serialized representation returned to API clients.
type SectionResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Subject      string    `json:"subject"`
	Schedule     string    `json:"schedule"`
	Room         string    `json:"room"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSectionResponse converts a model into a DTO.
func NewSectionResponse(model models.Section) SectionResponse {
	return SectionResponse{
		ID:           model.ID,
		Name:         model.Name,
		Code:         model.Code,
		Subject:      model.Subject,
		Schedule:     model.Schedule,
		Room:         model.Room,
		StudentCount: model.StudentCount,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewSectionResponseSlice converts a slice of models into DTOs.
func NewSectionResponseSlice(sections []models.Section) []SectionResponse {
	responses := make([]SectionResponse, 0, len(sections))
	for _, section := range sections {
		responses = append(responses, NewSectionResponse(section))
	}

	return responses
}
