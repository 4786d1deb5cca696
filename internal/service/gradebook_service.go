package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/observability"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ErrInvalidScore indicates the raw score could not be parsed while the
// strict score policy is active.
var ErrInvalidScore = errors.New("score is not a number")

// GradebookService owns grade entry and the derived gradebook views.
type GradebookService interface {
	UpsertGrade(ctx context.Context, userID uint, payload dto.GradeUpsertRequest) (dto.GradeResponse, error)
	StudentTotal(ctx context.Context, userID, studentID uint) (dto.StudentTotalResponse, error)
	ListByStudent(ctx context.Context, userID, studentID uint) ([]dto.GradeResponse, error)
	Matrix(ctx context.Context, userID, sectionID uint) (dto.GradebookMatrixResponse, error)
}

type gradebookService struct {
	grades    repository.GradeRepository
	tasks     repository.TaskRepository
	students  repository.StudentRepository
	notifier  NotificationService
	validator *validator.Validate
	strict    bool
	logger    zerolog.Logger
}

// NewGradebookService constructs the gradebook service. When strict is false
// an unparseable score silently becomes 0, preserving the behavior of the
// original grade-entry form; when true it is rejected. The notifier may be nil.
func NewGradebookService(grades repository.GradeRepository, tasks repository.TaskRepository, students repository.StudentRepository, notifier NotificationService, validate *validator.Validate, strict bool, logger zerolog.Logger) GradebookService {
	return &gradebookService{
		grades:    grades,
		tasks:     tasks,
		students:  students,
		notifier:  notifier,
		validator: validate,
		strict:    strict,
		logger:    logger.With().Str("component", "gradebook_service").Logger(),
	}
}

func (s *gradebookService) UpsertGrade(ctx context.Context, userID uint, payload dto.GradeUpsertRequest) (dto.GradeResponse, error) {
	tracer := otel.Tracer("github.com/noah-isme/classdesk-api/internal/service/gradebook")
	ctx, span := tracer.Start(ctx, "gradebook.upsert")
	span.SetAttributes(
		attribute.Int64("gradebook.student_id", int64(payload.StudentID)),
		attribute.Int64("gradebook.task_id", int64(payload.TaskID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.GradeResponse{}, err
	}

	score, err := s.parseScore(payload.Score)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "score_rejected")
		return dto.GradeResponse{}, err
	}

	grade, err := s.grades.GetByStudentTask(ctx, userID, payload.StudentID, payload.TaskID)
	switch {
	case err == nil:
		// Overwrite in place. MaxScore stays as captured at first entry.
		grade.Apply(score)
		if err := s.grades.Update(ctx, &grade); err != nil {
			span.RecordError(err)
			return dto.GradeResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		task, err := s.tasks.GetByID(ctx, userID, payload.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				span.SetStatus(codes.Error, "task_not_found")
				return dto.GradeResponse{}, ErrTaskNotFound
			}
			span.RecordError(err)
			return dto.GradeResponse{}, err
		}
		if _, err := s.students.GetByID(ctx, userID, payload.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				span.SetStatus(codes.Error, "student_not_found")
				return dto.GradeResponse{}, ErrStudentNotFound
			}
			span.RecordError(err)
			return dto.GradeResponse{}, err
		}

		grade = models.Grade{
			UserID:    userID,
			StudentID: payload.StudentID,
			TaskID:    payload.TaskID,
			MaxScore:  task.TotalPoints,
		}
		grade.Apply(score)
		if err := s.grades.Create(ctx, &grade); err != nil {
			span.RecordError(err)
			return dto.GradeResponse{}, err
		}
	default:
		span.RecordError(err)
		return dto.GradeResponse{}, err
	}

	observability.GradesUpserted().WithLabelValues(grade.LetterGrade).Inc()
	span.SetAttributes(
		attribute.Float64("gradebook.score", grade.Score),
		attribute.Int("gradebook.percentage", grade.Percentage),
		attribute.String("gradebook.letter", grade.LetterGrade),
	)

	if s.notifier != nil {
		_, _ = s.notifier.Publish(ctx, dto.NotificationCreateRequest{
			UserID:  userID,
			Type:    models.NotificationTypeGradePosted,
			Message: fmt.Sprintf("Grade posted: %.0f/%.0f (%s)", grade.Score, grade.MaxScore, grade.LetterGrade),
		})
	}

	return dto.NewGradeResponse(grade), nil
}

func (s *gradebookService) StudentTotal(ctx context.Context, userID, studentID uint) (dto.StudentTotalResponse, error) {
	grades, err := s.grades.ListByStudent(ctx, userID, studentID)
	if err != nil {
		return dto.StudentTotalResponse{}, err
	}

	var total, max float64
	for _, grade := range grades {
		total += grade.Score
		max += grade.MaxScore
	}

	percentage := models.Percentage(total, max)

	return dto.StudentTotalResponse{
		StudentID:   studentID,
		Total:       total,
		Max:         max,
		Percentage:  percentage,
		LetterGrade: models.LetterGrade(percentage),
	}, nil
}

func (s *gradebookService) ListByStudent(ctx context.Context, userID, studentID uint) ([]dto.GradeResponse, error) {
	grades, err := s.grades.ListByStudent(ctx, userID, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewGradeResponseSlice(grades), nil
}

func (s *gradebookService) Matrix(ctx context.Context, userID, sectionID uint) (dto.GradebookMatrixResponse, error) {
	sectionFilter := sectionID
	tasks, err := s.tasks.List(ctx, userID, repository.TaskFilter{SectionID: &sectionFilter})
	if err != nil {
		return dto.GradebookMatrixResponse{}, err
	}

	students, err := s.students.List(ctx, userID, repository.StudentFilter{SectionID: &sectionFilter})
	if err != nil {
		return dto.GradebookMatrixResponse{}, err
	}

	grades, err := s.grades.ListBySection(ctx, userID, sectionID)
	if err != nil {
		return dto.GradebookMatrixResponse{}, err
	}

	byStudentTask := make(map[[2]uint]models.Grade, len(grades))
	for _, grade := range grades {
		byStudentTask[[2]uint{grade.StudentID, grade.TaskID}] = grade
	}

	rows := make([]dto.GradebookRow, 0, len(students))
	for _, student := range students {
		row := dto.GradebookRow{
			StudentID:   student.ID,
			StudentName: student.FullName(),
			Cells:       make([]dto.GradebookCell, 0, len(tasks)),
		}

		for _, task := range tasks {
			cell := dto.GradebookCell{TaskID: task.ID}
			if grade, ok := byStudentTask[[2]uint{student.ID, task.ID}]; ok {
				score := grade.Score
				percentage := grade.Percentage
				cell.Score = &score
				cell.Percentage = &percentage
				cell.LetterGrade = grade.LetterGrade
				row.Total += grade.Score
				row.Max += grade.MaxScore
			}
			row.Cells = append(row.Cells, cell)
		}

		row.Percentage = models.Percentage(row.Total, row.Max)
		row.LetterGrade = models.LetterGrade(row.Percentage)
		rows = append(rows, row)
	}

	return dto.GradebookMatrixResponse{
		SectionID: sectionID,
		Tasks:     dto.NewTaskResponseSlice(tasks),
		Rows:      rows,
	}, nil
}

// parseScore accepts a JSON number or a numeric string. Anything else is
// either coerced to 0 (lenient, the historical behavior) or rejected.
func (s *gradebookService) parseScore(raw json.RawMessage) (float64, error) {
	trimmed := strings.TrimSpace(string(raw))

	var numeric float64
	if err := json.Unmarshal(raw, &numeric); err == nil {
		return clampScore(numeric), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return clampScore(parsed), nil
		}
	}

	if s.strict {
		return 0, ErrInvalidScore
	}

	s.logger.Debug().Str("raw", trimmed).Msg("unparseable score coerced to 0")

	return 0, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
