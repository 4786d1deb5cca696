package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// StudentCreateRequest describes the payload for enrolling a student.
type StudentCreateRequest struct {
	SectionID     uint   `json:"section_id" validate:"required"`
	FirstName     string `json:"first_name" validate:"required,min=1,max=128"`
	LastName      string `json:"last_name" validate:"omitempty,max=128"`
	StudentNumber string `json:"student_number" validate:"omitempty,max=64"`
	Email         string `json:"email" validate:"omitempty,email"`
}

// StudentUpdateRequest describes the payload for updating a student.
type StudentUpdateRequest struct {
	SectionID     *uint   `json:"section_id"`
	FirstName     *string `json:"first_name" validate:"omitempty,min=1,max=128"`
	LastName      *string `json:"last_name" validate:"omitempty,max=128"`
	StudentNumber *string `json:"student_number" validate:"omitempty,max=64"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID            uint       `json:"id"`
	SectionID     uint       `json:"section_id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name"`
	StudentNumber string     `json:"student_number"`
	Email         string     `json:"email"`
	EnrolledAt    *time.Time `json:"enrolled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:            model.ID,
		SectionID:     model.SectionID,
		FirstName:     model.FirstName,
		LastName:      model.LastName,
		FullName:      model.FullName(),
		StudentNumber: model.StudentNumber,
		Email:         model.Email,
		EnrolledAt:    model.EnrolledAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
