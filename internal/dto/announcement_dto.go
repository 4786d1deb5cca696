package dto

import (
	"time"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// AnnouncementCreateRequest describes the payload for posting an announcement.
type AnnouncementCreateRequest struct {
	SectionID uint   `json:"section_id" validate:"required"`
	Title     string `json:"title" validate:"required,min=2,max=255"`
	Content   string `json:"content" validate:"required"`
	IsPinned  bool   `json:"is_pinned"`
}

// AnnouncementUpdateRequest describes the payload for editing an announcement.
type AnnouncementUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=2,max=255"`
	Content  *string `json:"content" validate:"omitempty"`
	IsPinned *bool   `json:"is_pinned"`
}

// AnnouncementPinRequest toggles the pinned flag.
type AnnouncementPinRequest struct {
	IsPinned bool `json:"is_pinned"`
}

// AnnouncementResponse is the serialized representation returned to API clients.
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	SectionID uint      `json:"section_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAnnouncementResponse converts a model into a DTO.
func NewAnnouncementResponse(model models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        model.ID,
		SectionID: model.SectionID,
		Title:     model.Title,
		Content:   model.Content,
		CreatedBy: model.CreatedBy,
		IsPinned:  model.IsPinned,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewAnnouncementResponseSlice converts a slice of models into DTOs.
func NewAnnouncementResponseSlice(announcements []models.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		responses = append(responses, NewAnnouncementResponse(announcement))
	}

	return responses
}
