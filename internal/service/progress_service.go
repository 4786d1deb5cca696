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

// ErrProgressNotFound indicates the progress row does not exist or belongs
// to another teacher.
var ErrProgressNotFound = errors.New("progress record not found")

// ProgressService tracks per-student task completion. One row exists per
// (student, task) pair; writes after the first overwrite it, last write wins.
type ProgressService interface {
	List(ctx context.Context, userID uint, filter repository.ProgressFilter) ([]dto.ProgressResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.ProgressResponse, error)
	Upsert(ctx context.Context, userID uint, payload dto.ProgressUpsertRequest) (dto.ProgressResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.ProgressUpdateRequest) (dto.ProgressResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type progressService struct {
	repo      repository.ProgressRepository
	students  repository.StudentRepository
	tasks     repository.TaskRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProgressService constructs the progress service.
func NewProgressService(repo repository.ProgressRepository, students repository.StudentRepository, tasks repository.TaskRepository, validate *validator.Validate, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:      repo,
		students:  students,
		tasks:     tasks,
		validator: validate,
		logger:    logger.With().Str("component", "progress_service").Logger(),
		now:       time.Now,
	}
}

func (s *progressService) List(ctx context.Context, userID uint, filter repository.ProgressFilter) ([]dto.ProgressResponse, error) {
	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewProgressResponseSlice(records), nil
}

func (s *progressService) Get(ctx context.Context, userID, id uint) (dto.ProgressResponse, error) {
	record, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrProgressNotFound
		}
		return dto.ProgressResponse{}, err
	}

	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Upsert(ctx context.Context, userID uint, payload dto.ProgressUpsertRequest) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgressResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, userID, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrStudentNotFound
		}
		return dto.ProgressResponse{}, err
	}
	if _, err := s.tasks.GetByID(ctx, userID, payload.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrTaskNotFound
		}
		return dto.ProgressResponse{}, err
	}

	record, err := s.repo.GetByStudentTask(ctx, userID, payload.StudentID, payload.TaskID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, err
		}

		record = models.Progress{
			UserID:    userID,
			StudentID: payload.StudentID,
			TaskID:    payload.TaskID,
		}
	}

	record.Status = payload.Status
	record.Score = payload.Score
	record.Feedback = payload.Feedback
	if payload.Status == models.ProgressStatusCompleted && record.SubmittedAt == nil {
		submittedAt := s.now()
		record.SubmittedAt = &submittedAt
	}

	if record.ID == 0 {
		err = s.repo.Create(ctx, &record)
	} else {
		err = s.repo.Update(ctx, &record)
	}
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Update(ctx context.Context, userID, id uint, payload dto.ProgressUpdateRequest) (dto.ProgressResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgressResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrProgressNotFound
		}
		return dto.ProgressResponse{}, err
	}

	// No transition table: any status may replace any other, including a
	// manual move to Overdue or back out of it.
	if payload.Status != nil {
		record.Status = *payload.Status
	}
	if payload.Score != nil {
		record.Score = payload.Score
	}
	if payload.Feedback != nil {
		record.Feedback = *payload.Feedback
	}

	if err := s.repo.Update(ctx, &record); err != nil {
		return dto.ProgressResponse{}, err
	}

	return dto.NewProgressResponse(record), nil
}

func (s *progressService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgressNotFound
		}
		return err
	}

	return nil
}
