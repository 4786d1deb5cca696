package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// ProgressFilter narrows progress listings. SectionID filters through the
// task the progress row belongs to.
type ProgressFilter struct {
	StudentID *uint
	TaskID    *uint
	SectionID *uint
}

// ProgressRepository defines persistence operations for progress records.
type ProgressRepository interface {
	List(ctx context.Context, userID uint, filter ProgressFilter) ([]models.Progress, error)
	GetByID(ctx context.Context, userID, id uint) (models.Progress, error)
	GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Progress, error)
	Create(ctx context.Context, progress *models.Progress) error
	Update(ctx context.Context, progress *models.Progress) error
	Delete(ctx context.Context, userID, id uint) error
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository instantiates a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) List(ctx context.Context, userID uint, filter ProgressFilter) ([]models.Progress, error) {
	query := r.db.WithContext(ctx).Model(&models.Progress{}).Where("progresses.user_id = ?", userID)

	if filter.StudentID != nil {
		query = query.Where("progresses.student_id = ?", *filter.StudentID)
	}
	if filter.TaskID != nil {
		query = query.Where("progresses.task_id = ?", *filter.TaskID)
	}
	if filter.SectionID != nil {
		query = query.Joins("JOIN tasks ON tasks.id = progresses.task_id").
			Where("tasks.section_id = ?", *filter.SectionID)
	}

	var records []models.Progress
	if err := query.Order("progresses.updated_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *progressRepository) GetByID(ctx context.Context, userID, id uint) (models.Progress, error) {
	var record models.Progress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record, id).Error; err != nil {
		return models.Progress{}, err
	}

	return record, nil
}

func (r *progressRepository) GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Progress, error) {
	var record models.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND student_id = ? AND task_id = ?", userID, studentID, taskID).
		First(&record).Error
	if err != nil {
		return models.Progress{}, err
	}

	return record, nil
}

func (r *progressRepository) Create(ctx context.Context, progress *models.Progress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *progressRepository) Update(ctx context.Context, progress *models.Progress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *progressRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Progress{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
