package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ErrStudentNotFound indicates the student does not exist or belongs to
// another teacher.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages roster entries. Creating or removing a student keeps
// the owning section's student count in step.
type StudentService interface {
	List(ctx context.Context, userID uint, filter repository.StudentFilter) ([]dto.StudentResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.StudentResponse, error)
	Create(ctx context.Context, userID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	sections  repository.SectionRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, sections repository.SectionRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		sections:  sections,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) List(ctx context.Context, userID uint, filter repository.StudentFilter) ([]dto.StudentResponse, error) {
	students, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Get(ctx context.Context, userID, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, userID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	section, err := s.sections.GetByID(ctx, userID, payload.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrSectionNotFound
		}
		return dto.StudentResponse{}, err
	}

	enrolledAt := s.now()
	student := models.Student{
		UserID:        userID,
		SectionID:     section.ID,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		StudentNumber: payload.StudentNumber,
		Email:         payload.Email,
		EnrolledAt:    &enrolledAt,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.syncStudentCount(ctx, &section)

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, userID, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	previousSection := student.SectionID

	if payload.SectionID != nil && *payload.SectionID != student.SectionID {
		if _, err := s.sections.GetByID(ctx, userID, *payload.SectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.StudentResponse{}, ErrSectionNotFound
			}
			return dto.StudentResponse{}, err
		}
		student.SectionID = *payload.SectionID
	}
	if payload.FirstName != nil {
		student.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		student.LastName = *payload.LastName
	}
	if payload.StudentNumber != nil {
		student.StudentNumber = *payload.StudentNumber
	}
	if payload.Email != nil {
		student.Email = *payload.Email
	}

	if err := s.repo.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	if student.SectionID != previousSection {
		for _, sectionID := range []uint{previousSection, student.SectionID} {
			if section, err := s.sections.GetByID(ctx, userID, sectionID); err == nil {
				s.syncStudentCount(ctx, &section)
			}
		}
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, userID, id uint) error {
	student, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if section, err := s.sections.GetByID(ctx, userID, student.SectionID); err == nil {
		s.syncStudentCount(ctx, &section)
	}

	return nil
}

func (s *studentService) syncStudentCount(ctx context.Context, section *models.Section) {
	count, err := s.repo.CountBySection(ctx, section.ID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("section_id", section.ID).Msg("failed to count roster")
		return
	}

	section.StudentCount = int(count)
	if err := s.sections.Update(ctx, section); err != nil {
		s.logger.Warn().Err(err).Uint("section_id", section.ID).Msg("failed to sync student count")
	}
}
