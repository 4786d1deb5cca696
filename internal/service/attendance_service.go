package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// AttendanceService owns the per-date attendance sheet and presence stats.
type AttendanceService interface {
	Mark(ctx context.Context, userID uint, payload dto.AttendanceMarkRequest) (dto.AttendanceResponse, error)
	MarkAllPresent(ctx context.Context, userID uint, payload dto.AttendanceMarkAllRequest) ([]dto.AttendanceResponse, error)
	Sheet(ctx context.Context, userID, sectionID uint, date string) (dto.AttendanceSheetResponse, error)
	StudentPercentage(ctx context.Context, userID, studentID, sectionID uint) (dto.AttendancePercentageResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	students  repository.StudentRepository
	sections  repository.SectionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, students repository.StudentRepository, sections repository.SectionRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		students:  students,
		sections:  sections,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Mark(ctx context.Context, userID uint, payload dto.AttendanceMarkRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, userID, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceResponse{}, ErrStudentNotFound
		}
		return dto.AttendanceResponse{}, err
	}

	record, err := s.upsert(ctx, userID, payload.SectionID, payload.StudentID, payload.Date, payload.Status)
	if err != nil {
		return dto.AttendanceResponse{}, err
	}

	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) MarkAllPresent(ctx context.Context, userID uint, payload dto.AttendanceMarkAllRequest) ([]dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	if _, err := s.sections.GetByID(ctx, userID, payload.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	sectionID := payload.SectionID
	roster, err := s.students.List(ctx, userID, repository.StudentFilter{SectionID: &sectionID})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttendanceResponse, 0, len(roster))
	for _, student := range roster {
		record, err := s.upsert(ctx, userID, payload.SectionID, student.ID, payload.Date, models.AttendanceStatusPresent)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewAttendanceResponse(record))
	}

	s.logger.Info().
		Uint("section_id", payload.SectionID).
		Str("date", payload.Date).
		Int("students", len(responses)).
		Msg("roster marked present")

	return responses, nil
}

func (s *attendanceService) Sheet(ctx context.Context, userID, sectionID uint, date string) (dto.AttendanceSheetResponse, error) {
	if _, err := s.sections.GetByID(ctx, userID, sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceSheetResponse{}, ErrSectionNotFound
		}
		return dto.AttendanceSheetResponse{}, err
	}

	filter := sectionID
	roster, err := s.students.List(ctx, userID, repository.StudentFilter{SectionID: &filter})
	if err != nil {
		return dto.AttendanceSheetResponse{}, err
	}

	records, err := s.repo.ListBySectionDate(ctx, userID, sectionID, date)
	if err != nil {
		return dto.AttendanceSheetResponse{}, err
	}

	statusByStudent := make(map[uint]string, len(records))
	for _, record := range records {
		statusByStudent[record.StudentID] = record.Status
	}

	entries := make([]dto.AttendanceSheetEntry, 0, len(roster))
	for _, student := range roster {
		entries = append(entries, dto.AttendanceSheetEntry{
			StudentID:   student.ID,
			StudentName: student.FullName(),
			Status:      statusByStudent[student.ID],
		})
	}

	return dto.AttendanceSheetResponse{
		SectionID: sectionID,
		Date:      date,
		Entries:   entries,
	}, nil
}

func (s *attendanceService) StudentPercentage(ctx context.Context, userID, studentID, sectionID uint) (dto.AttendancePercentageResponse, error) {
	if _, err := s.students.GetByID(ctx, userID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendancePercentageResponse{}, ErrStudentNotFound
		}
		return dto.AttendancePercentageResponse{}, err
	}

	records, err := s.repo.ListByStudentSection(ctx, userID, studentID, sectionID)
	if err != nil {
		return dto.AttendancePercentageResponse{}, err
	}

	present := 0
	for _, record := range records {
		if record.Status == models.AttendanceStatusPresent {
			present++
		}
	}

	// No records means 0%, not a division error.
	percentage := models.Percentage(float64(present), float64(len(records)))

	return dto.AttendancePercentageResponse{
		StudentID:  studentID,
		SectionID:  sectionID,
		Present:    present,
		Total:      len(records),
		Percentage: percentage,
	}, nil
}

// upsert keys attendance by (student, date): marking twice overwrites the
// status instead of adding a second row.
func (s *attendanceService) upsert(ctx context.Context, userID, sectionID, studentID uint, date, status string) (models.AttendanceRecord, error) {
	record, err := s.repo.GetByStudentDate(ctx, userID, studentID, date)
	switch {
	case err == nil:
		record.Status = status
		record.SectionID = sectionID
		if err := s.repo.Update(ctx, &record); err != nil {
			return models.AttendanceRecord{}, err
		}
		return record, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.AttendanceRecord{
			UserID:    userID,
			SectionID: sectionID,
			StudentID: studentID,
			Date:      date,
			Status:    status,
		}
		if err := s.repo.Create(ctx, &record); err != nil {
			return models.AttendanceRecord{}, err
		}
		return record, nil
	default:
		return models.AttendanceRecord{}, err
	}
}
