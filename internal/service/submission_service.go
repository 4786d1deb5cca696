package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/observability"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

var (
	// ErrSubmissionNotFound indicates the submission does not exist or
	// belongs to another user.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrUploadTooLarge indicates a file exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the detected MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	// ErrNoFiles indicates the multipart request carried no files.
	ErrNoFiles = errors.New("at least one file is required")
)

// FileStorage abstracts where submission files end up.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// SubmissionService handles file hand-ins and their grading.
type SubmissionService interface {
	Create(ctx context.Context, userID uint, payload dto.SubmissionCreateRequest, files []*multipart.FileHeader) (dto.SubmissionResponse, error)
	List(ctx context.Context, userID uint, filter repository.SubmissionFilter) ([]dto.SubmissionResponse, error)
	GetByID(ctx context.Context, userID, id uint) (dto.SubmissionResponse, error)
	Grade(ctx context.Context, userID, id uint, payload dto.SubmissionGradeRequest) (dto.SubmissionResponse, error)
}

type submissionService struct {
	repo      repository.SubmissionRepository
	students  repository.StudentRepository
	tasks     repository.TaskRepository
	gradebook GradebookService
	notifier  NotificationService
	storage   FileStorage
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	maxSize   int64
}

// NewSubmissionService constructs a submission service. storage may be nil;
// uploads are then rejected, which keeps the rest of the API usable when no
// storage backend is configured. notifier may be nil.
func NewSubmissionService(repo repository.SubmissionRepository, students repository.StudentRepository, tasks repository.TaskRepository, gradebook GradebookService, notifier NotificationService, storage FileStorage, maxSizeMB int, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &submissionService{
		repo:      repo,
		students:  students,
		tasks:     tasks,
		gradebook: gradebook,
		notifier:  notifier,
		storage:   storage,
		validator: validate,
		logger:    logger.With().Str("component", "submission_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/classdesk-api/internal/service/submission"),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *submissionService) Create(ctx context.Context, userID uint, payload dto.SubmissionCreateRequest, files []*multipart.FileHeader) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submissions.create")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("submission.student_id", int64(payload.StudentID)),
		attribute.Int64("submission.task_id", int64(payload.TaskID)),
		attribute.Int("submission.file_count", len(files)),
	)

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.SubmissionResponse{}, err
	}

	if len(files) == 0 {
		span.SetStatus(codes.Error, "no files")
		return dto.SubmissionResponse{}, ErrNoFiles
	}
	if s.storage == nil {
		err := errors.New("file storage is not configured")
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, userID, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	if _, err := s.tasks.GetByID(ctx, userID, payload.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrTaskNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.storeFile(ctx, file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upload failed")
			return dto.SubmissionResponse{}, err
		}
		urls = append(urls, url)
	}

	encoded, err := json.Marshal(urls)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		UserID:      userID,
		StudentID:   payload.StudentID,
		TaskID:      payload.TaskID,
		Files:       datatypes.JSON(encoded),
		SubmittedAt: time.Now().UTC(),
		Status:      models.SubmissionStatusPending,
	}

	if err := s.repo.Create(ctx, &submission); err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if s.notifier != nil {
		_, _ = s.notifier.Publish(ctx, dto.NotificationCreateRequest{
			UserID:  userID,
			Type:    models.NotificationTypeSubmission,
			Message: fmt.Sprintf("New submission received with %d file(s)", len(urls)),
		})
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("student_id", submission.StudentID).
		Int("files", len(urls)).
		Msg("submission created")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) List(ctx context.Context, userID uint, filter repository.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) GetByID(ctx context.Context, userID, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Grade records score and feedback on the submission and mirrors the score
// into the gradebook so both views stay in sync.
func (s *submissionService) Grade(ctx context.Context, userID, id uint, payload dto.SubmissionGradeRequest) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submissions.grade")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	score := payload.Score
	submission.Score = &score
	submission.Feedback = payload.Feedback
	submission.Status = models.SubmissionStatusGraded

	if err := s.repo.Update(ctx, &submission); err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	if s.gradebook != nil {
		rawScore, _ := json.Marshal(payload.Score)
		if _, err := s.gradebook.UpsertGrade(ctx, userID, dto.GradeUpsertRequest{
			StudentID: submission.StudentID,
			TaskID:    submission.TaskID,
			Score:     rawScore,
		}); err != nil {
			s.logger.Error().Err(err).
				Uint("submission_id", submission.ID).
				Msg("failed to mirror submission grade into gradebook")
		}
	}

	span.SetAttributes(attribute.Float64("submission.score", payload.Score))

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) storeFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return "", err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return "", err
	}
	if int64(buf.Len()) > s.maxSize {
		return "", ErrUploadTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !allowedSubmissionType(detected.String()) {
		return "", ErrUploadTypeNotAllowed
	}

	return s.storage.Upload(ctx, sanitizeFileName(file.Filename), bytes.NewReader(buf.Bytes()))
}

// allowedSubmissionType permits documents, images and plain text. Content is
// sniffed, never trusted from the request headers.
func allowedSubmissionType(mime string) bool {
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))

	switch mime {
	case "application/pdf",
		"application/zip",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
		"text/csv",
		"image/png",
		"image/jpeg",
		"image/gif",
		"image/webp":
		return true
	}

	return strings.HasPrefix(mime, "text/")
}

func sanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)

	if base == "" || base == "." {
		base = "file"
	}

	return base
}
