package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// GradeRepository defines persistence operations for grades.
type GradeRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Grade, error)
	ListByStudent(ctx context.Context, userID, studentID uint) ([]models.Grade, error)
	ListBySection(ctx context.Context, userID, sectionID uint) ([]models.Grade, error)
	GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository instantiates a GORM-backed repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListByStudent(ctx context.Context, userID, studentID uint) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND student_id = ?", userID, studentID).
		Find(&grades).Error
	if err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListBySection(ctx context.Context, userID, sectionID uint) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = grades.task_id").
		Where("grades.user_id = ? AND tasks.section_id = ?", userID, sectionID).
		Find(&grades).Error
	if err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Grade, error) {
	var grade models.Grade
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND student_id = ? AND task_id = ?", userID, studentID, taskID).
		First(&grade).Error
	if err != nil {
		return models.Grade{}, err
	}

	return grade, nil
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}
