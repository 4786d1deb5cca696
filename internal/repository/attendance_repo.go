package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	ListByStudentSection(ctx context.Context, userID, studentID, sectionID uint) ([]models.AttendanceRecord, error)
	ListBySectionDate(ctx context.Context, userID, sectionID uint, date string) ([]models.AttendanceRecord, error)
	GetByStudentDate(ctx context.Context, userID, studentID uint, date string) (models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudentSection(ctx context.Context, userID, studentID, sectionID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND student_id = ? AND section_id = ?", userID, studentID, sectionID).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) ListBySectionDate(ctx context.Context, userID, sectionID uint, date string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND section_id = ? AND date = ?", userID, sectionID, date).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) GetByStudentDate(ctx context.Context, userID, studentID uint, date string) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND student_id = ? AND date = ?", userID, studentID, date).
		First(&record).Error
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	return record, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
