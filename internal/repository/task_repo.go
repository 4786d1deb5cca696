package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// TaskFilter narrows task listings.
type TaskFilter struct {
	SectionID *uint
	Search    string
	Sort      string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	List(ctx context.Context, userID uint, filter TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, userID, id uint) (models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository instantiates a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.SectionID != nil {
		query = query.Where("section_id = ?", *filter.SectionID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var tasks []models.Task
	if err := query.Order(normalizeTaskSort(filter.Sort)).Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, userID, id uint) (models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&task, id).Error; err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes the task together with its progress, grades and submissions.
func (r *taskRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&task).Error
	})
}

func normalizeTaskSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "-due_date", "due_date:desc":
		return "due_date DESC"
	case "title", "title:asc":
		return "title ASC"
	case "-title", "title:desc":
		return "title DESC"
	default:
		return "due_date ASC"
	}
}
