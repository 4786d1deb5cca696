package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ErrTaskNotFound indicates the task does not exist or belongs to another
// teacher.
var ErrTaskNotFound = errors.New("task not found")

const dueDateLayout = time.RFC3339

// TaskService manages assignments, quizzes and activities.
type TaskService interface {
	List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]dto.TaskResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.TaskResponse, error)
	Create(ctx context.Context, userID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type taskService struct {
	repo      repository.TaskRepository
	sections  repository.SectionRepository
	notifier  NotificationService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTaskService constructs the task service. The notifier may be nil.
func NewTaskService(repo repository.TaskRepository, sections repository.SectionRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		repo:      repo,
		sections:  sections,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *taskService) List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewTaskResponseSlice(tasks), nil
}

func (s *taskService) Get(ctx context.Context, userID, id uint) (dto.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Create(ctx context.Context, userID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	if _, err := s.sections.GetByID(ctx, userID, payload.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrSectionNotFound
		}
		return dto.TaskResponse{}, err
	}

	dueDate, err := time.Parse(dueDateLayout, payload.DueDate)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	task := models.Task{
		UserID:      userID,
		SectionID:   payload.SectionID,
		Title:       payload.Title,
		Description: payload.Description,
		Difficulty:  payload.Difficulty,
		DueDate:     dueDate,
		TotalPoints: payload.TotalPoints,
	}
	if task.Difficulty == "" {
		task.Difficulty = models.TaskDifficultyMedium
	}
	if task.TotalPoints <= 0 {
		task.TotalPoints = 100
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	if s.notifier != nil {
		_, _ = s.notifier.Publish(ctx, dto.NotificationCreateRequest{
			UserID:  userID,
			Type:    models.NotificationTypeTaskDue,
			Message: fmt.Sprintf("Task %q is due %s", task.Title, task.DueDate.Format("Jan 2")),
		})
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, userID, id uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	if payload.Title != nil {
		task.Title = *payload.Title
	}
	if payload.Description != nil {
		task.Description = *payload.Description
	}
	if payload.Difficulty != nil {
		task.Difficulty = *payload.Difficulty
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(dueDateLayout, *payload.DueDate)
		if err != nil {
			return dto.TaskResponse{}, err
		}
		task.DueDate = dueDate
	}
	// Changing total points applies to future grade entries only; grades
	// already stored keep the max score captured when they were entered.
	if payload.TotalPoints != nil {
		task.TotalPoints = *payload.TotalPoints
	}

	if err := s.repo.Update(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	return nil
}
