package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// StudentFilter narrows student listings.
type StudentFilter struct {
	SectionID *uint
	Search    string
}

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	List(ctx context.Context, userID uint, filter StudentFilter) ([]models.Student, error)
	GetByID(ctx context.Context, userID, id uint) (models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, userID, id uint) error
	CountBySection(ctx context.Context, sectionID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, userID uint, filter StudentFilter) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.SectionID != nil {
		query = query.Where("section_id = ?", *filter.SectionID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(student_number) LIKE ?", pattern, pattern, pattern)
	}

	var students []models.Student
	if err := query.Order("last_name ASC, first_name ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, userID, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete removes the student together with their progress, grades,
// submissions and attendance rows.
func (r *studentRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Where("user_id = ?", userID).First(&student, id).Error; err != nil {
			return err
		}

		if err := tx.Where("student_id = ?", id).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}

		return tx.Delete(&student).Error
	})
}

func (r *studentRepository) CountBySection(ctx context.Context, sectionID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("section_id = ?", sectionID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
