package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// SectionRepository defines persistence operations for sections. Every query
// is scoped to the owning teacher account.
type SectionRepository interface {
	List(ctx context.Context, userID uint) ([]models.Section, error)
	GetByID(ctx context.Context, userID, id uint) (models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, userID, id uint) error
}

type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository instantiates a GORM-backed repository.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) List(ctx context.Context, userID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&sections).Error; err != nil {
		return nil, err
	}

	return sections, nil
}

func (r *sectionRepository) GetByID(ctx context.Context, userID, id uint) (models.Section, error) {
	var section models.Section
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&section, id).Error; err != nil {
		return models.Section{}, err
	}

	return section, nil
}

func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) Update(ctx context.Context, section *models.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

// Delete removes the section and everything below it. The cascade runs
// explicitly inside one transaction because the sqlite deployment does not
// enable foreign key enforcement.
func (r *sectionRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section models.Section
		if err := tx.Where("user_id = ?", userID).First(&section, id).Error; err != nil {
			return err
		}

		var studentIDs []uint
		if err := tx.Model(&models.Student{}).Where("section_id = ?", id).Pluck("id", &studentIDs).Error; err != nil {
			return err
		}
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("section_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(studentIDs) > 0 {
			if err := tx.Where("student_id IN ?", studentIDs).Delete(&models.Progress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("student_id IN ?", studentIDs).Delete(&models.Grade{}).Error; err != nil {
				return err
			}
			if err := tx.Where("student_id IN ?", studentIDs).Delete(&models.Submission{}).Error; err != nil {
				return err
			}
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Progress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Grade{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Submission{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("section_id = ?", id).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.Announcement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.Student{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&section).Error
	})
}
