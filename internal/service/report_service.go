package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ReportService produces aggregated dashboard and analytics views. Results
// are cached in redis per user when a client is configured; the boolean
// return reports whether the response came from cache.
type ReportService interface {
	Dashboard(ctx context.Context, userID uint) (dto.DashboardResponse, bool, error)
	Analytics(ctx context.Context, userID uint) (dto.AnalyticsResponse, bool, error)
	StudentPerformance(ctx context.Context, userID uint) (dto.StudentPerformanceResponse, bool, error)
}

type reportService struct {
	sections repository.SectionRepository
	students repository.StudentRepository
	tasks    repository.TaskRepository
	progress repository.ProgressRepository
	grades   repository.GradeRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewReportService builds the report aggregator. cache may be nil, in which
// case every call recomputes.
func NewReportService(sections repository.SectionRepository, students repository.StudentRepository, tasks repository.TaskRepository, progress repository.ProgressRepository, grades repository.GradeRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ReportService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &reportService{
		sections: sections,
		students: students,
		tasks:    tasks,
		progress: progress,
		grades:   grades,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Dashboard(ctx context.Context, userID uint) (dto.DashboardResponse, bool, error) {
	cacheKey := fmt.Sprintf("reports:dashboard:%d", userID)

	var cached dto.DashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	sections, err := s.sections.List(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, false, err
	}

	students, err := s.students.List(ctx, userID, repository.StudentFilter{})
	if err != nil {
		return dto.DashboardResponse{}, false, err
	}

	tasks, err := s.tasks.List(ctx, userID, repository.TaskFilter{})
	if err != nil {
		return dto.DashboardResponse{}, false, err
	}

	progress, err := s.progress.List(ctx, userID, repository.ProgressFilter{})
	if err != nil {
		return dto.DashboardResponse{}, false, err
	}

	completed := 0
	for _, record := range progress {
		if record.Status == models.ProgressStatusCompleted {
			completed++
		}
	}

	response := dto.DashboardResponse{
		TotalSections:     len(sections),
		TotalStudents:     len(students),
		TotalTasks:        len(tasks),
		AverageCompletion: models.Percentage(float64(completed), float64(len(progress))),
	}

	s.writeCache(ctx, cacheKey, response)

	return response, false, nil
}

func (s *reportService) Analytics(ctx context.Context, userID uint) (dto.AnalyticsResponse, bool, error) {
	cacheKey := fmt.Sprintf("reports:analytics:%d", userID)

	var cached dto.AnalyticsResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	sections, err := s.sections.List(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, false, err
	}

	progress, err := s.progress.List(ctx, userID, repository.ProgressFilter{})
	if err != nil {
		return dto.AnalyticsResponse{}, false, err
	}

	grades, err := s.grades.ListByUser(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, false, err
	}

	response := dto.AnalyticsResponse{
		SectionPerformance: make([]dto.SectionPerformance, 0, len(sections)),
		GradeDistribution:  gradeDistribution(grades),
	}

	for _, record := range progress {
		switch record.Status {
		case models.ProgressStatusCompleted:
			response.TaskCompletionRate.Completed++
		case models.ProgressStatusOverdue:
			response.TaskCompletionRate.Overdue++
		default:
			response.TaskCompletionRate.Pending++
		}
	}

	for _, section := range sections {
		sectionGrades, err := s.grades.ListBySection(ctx, userID, section.ID)
		if err != nil {
			return dto.AnalyticsResponse{}, false, err
		}

		sum := 0
		for _, grade := range sectionGrades {
			sum += grade.Percentage
		}
		average := 0
		if len(sectionGrades) > 0 {
			average = models.Percentage(float64(sum), float64(len(sectionGrades)*100))
		}

		response.SectionPerformance = append(response.SectionPerformance, dto.SectionPerformance{
			SectionID:    section.ID,
			SectionName:  section.Name,
			AverageScore: average,
		})
	}

	s.writeCache(ctx, cacheKey, response)

	return response, false, nil
}

func (s *reportService) StudentPerformance(ctx context.Context, userID uint) (dto.StudentPerformanceResponse, bool, error) {
	cacheKey := fmt.Sprintf("reports:students:%d", userID)

	var cached dto.StudentPerformanceResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	students, err := s.students.List(ctx, userID, repository.StudentFilter{})
	if err != nil {
		return dto.StudentPerformanceResponse{}, false, err
	}

	progress, err := s.progress.List(ctx, userID, repository.ProgressFilter{})
	if err != nil {
		return dto.StudentPerformanceResponse{}, false, err
	}

	grades, err := s.grades.ListByUser(ctx, userID)
	if err != nil {
		return dto.StudentPerformanceResponse{}, false, err
	}

	completedByStudent := make(map[uint]int)
	overdueByStudent := make(map[uint]int)
	for _, record := range progress {
		switch record.Status {
		case models.ProgressStatusCompleted:
			completedByStudent[record.StudentID]++
		case models.ProgressStatusOverdue:
			overdueByStudent[record.StudentID]++
		}
	}

	percentSumByStudent := make(map[uint]int)
	gradeCountByStudent := make(map[uint]int)
	for _, grade := range grades {
		percentSumByStudent[grade.StudentID] += grade.Percentage
		gradeCountByStudent[grade.StudentID]++
	}

	response := dto.StudentPerformanceResponse{
		Students: make([]dto.StudentPerformanceEntry, 0, len(students)),
	}

	for _, student := range students {
		average := 0
		if count := gradeCountByStudent[student.ID]; count > 0 {
			average = models.Percentage(float64(percentSumByStudent[student.ID]), float64(count*100))
		}
		overdue := overdueByStudent[student.ID]

		response.Students = append(response.Students, dto.StudentPerformanceEntry{
			StudentID:      student.ID,
			StudentName:    student.FullName(),
			CompletedTasks: completedByStudent[student.ID],
			OverdueTasks:   overdue,
			AverageScore:   average,
			Status:         performanceStatus(average, overdue, gradeCountByStudent[student.ID]),
		})
	}

	s.writeCache(ctx, cacheKey, response)

	return response, false, nil
}

// performanceStatus buckets a student by average grade and overdue count.
// Students without any grades yet are treated as ungraded rather than failing.
func performanceStatus(average, overdue, gradeCount int) string {
	switch {
	case overdue >= 3 || (gradeCount > 0 && average < 50):
		return dto.PerformanceNeedsAttention
	case overdue >= 1 || (gradeCount > 0 && average < 70):
		return dto.PerformanceAtRisk
	default:
		return dto.PerformanceOnTrack
	}
}

func gradeDistribution(grades []models.Grade) []dto.GradeBucket {
	counts := make(map[string]int, 5)
	for _, grade := range grades {
		counts[grade.LetterGrade]++
	}

	letters := []string{
		models.LetterGradeA,
		models.LetterGradeB,
		models.LetterGradeC,
		models.LetterGradeD,
		models.LetterGradeF,
	}

	buckets := make([]dto.GradeBucket, 0, len(letters))
	for _, letter := range letters {
		buckets = append(buckets, dto.GradeBucket{Grade: letter, Count: counts[letter]})
	}

	return buckets
}

func (s *reportService) readCache(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read report cache")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("invalid cached report payload")
		return false
	}

	return true
}

func (s *reportService) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to write report cache")
	}
}
