package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// AttendanceMarkRequest describes the payload for recording one student's
// attendance on a date.
type AttendanceMarkRequest struct {
	SectionID uint   `json:"section_id" validate:"required"`
	StudentID uint   `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=Present Absent Late"`
}

// AttendanceMarkAllRequest describes the payload for marking a whole roster
// present on a date.
type AttendanceMarkAllRequest struct {
	SectionID uint   `json:"section_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// AttendanceResponse is the serialized representation returned to API clients.
type AttendanceResponse struct {
	ID        uint      `json:"id"`
	SectionID uint      `json:"section_id"`
	StudentID uint      `json:"student_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAttendanceResponse converts a model into a DTO.
func NewAttendanceResponse(model models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:        model.ID,
		SectionID: model.SectionID,
		StudentID: model.StudentID,
		Date:      model.Date,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewAttendanceResponseSlice converts a slice of models into DTOs.
func NewAttendanceResponseSlice(records []models.AttendanceRecord) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewAttendanceResponse(record))
	}

	return responses
}

// AttendanceSheetEntry pairs a rostered student with their status for a date.
// Status is empty when no record exists yet.
type AttendanceSheetEntry struct {
	StudentID   uint   `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      string `json:"status"`
}

// AttendanceSheetResponse is the per-date roster grid.
type AttendanceSheetResponse struct {
	SectionID uint                   `json:"section_id"`
	Date      string                 `json:"date"`
	Entries   []AttendanceSheetEntry `json:"entries"`
}

// AttendancePercentageResponse summarises a student's presence rate.
type AttendancePercentageResponse struct {
	StudentID  uint `json:"student_id"`
	SectionID  uint `json:"section_id"`
	Present    int  `json:"present"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
}
