package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
)

func reportFixture(t *testing.T, cache *redis.Client) (ReportService, *fakeProgressRepo, *fakeGradeRepo, *fakeStudentRepo) {
	t.Helper()

	sections := newFakeSectionRepo()
	students := newFakeStudentRepo()
	tasks := newFakeTaskRepo()
	progress := newFakeProgressRepo()
	grades := newFakeGradeRepo()

	require.NoError(t, sections.Create(context.Background(), &models.Section{UserID: 1, Name: "Algebra I"}))
	require.NoError(t, students.Create(context.Background(), &models.Student{UserID: 1, SectionID: 1, FirstName: "Ava"}))
	require.NoError(t, students.Create(context.Background(), &models.Student{UserID: 1, SectionID: 1, FirstName: "Liam"}))
	require.NoError(t, tasks.Create(context.Background(), &models.Task{UserID: 1, SectionID: 1, Title: "Quiz", TotalPoints: 100}))

	svc := NewReportService(sections, students, tasks, progress, grades, cache, time.Minute, testLogger())

	return svc, progress, grades, students
}

func TestReportDashboardAverages(t *testing.T) {
	svc, progress, _, _ := reportFixture(t, nil)

	statuses := []string{
		models.ProgressStatusCompleted,
		models.ProgressStatusCompleted,
		models.ProgressStatusInProgress,
	}
	for i, status := range statuses {
		require.NoError(t, progress.Create(context.Background(), &models.Progress{
			UserID:    1,
			StudentID: uint(i + 1),
			TaskID:    1,
			Status:    status,
		}))
	}

	dashboard, hit, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 1, dashboard.TotalSections)
	require.Equal(t, 2, dashboard.TotalStudents)
	require.Equal(t, 1, dashboard.TotalTasks)
	require.Equal(t, 67, dashboard.AverageCompletion)
}

func TestReportDashboardNoProgress(t *testing.T) {
	svc, _, _, _ := reportFixture(t, nil)

	dashboard, _, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, dashboard.AverageCompletion)
}

func TestReportDashboardCaching(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	svc, progress, _, _ := reportFixture(t, client)

	first, hit, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, hit)

	// New rows must not show up until the cached entry expires.
	require.NoError(t, progress.Create(context.Background(), &models.Progress{
		UserID:    1,
		StudentID: 1,
		TaskID:    1,
		Status:    models.ProgressStatusCompleted,
	}))

	cached, hit, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, first.AverageCompletion, cached.AverageCompletion)

	server.FastForward(2 * time.Minute)

	fresh, hit, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 100, fresh.AverageCompletion)
}

func TestReportAnalyticsBuckets(t *testing.T) {
	svc, progress, grades, _ := reportFixture(t, nil)

	for _, status := range []string{
		models.ProgressStatusCompleted,
		models.ProgressStatusOverdue,
		models.ProgressStatusNotStarted,
		models.ProgressStatusInProgress,
	} {
		require.NoError(t, progress.Create(context.Background(), &models.Progress{
			UserID: 1, StudentID: 1, TaskID: 1, Status: status,
		}))
	}

	scores := []float64{95, 85, 40}
	for i, score := range scores {
		grade := models.Grade{UserID: 1, StudentID: uint(i + 1), TaskID: 1, MaxScore: 100}
		grade.Apply(score)
		require.NoError(t, grades.Create(context.Background(), &grade))
	}

	analytics, _, err := svc.Analytics(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, analytics.TaskCompletionRate.Completed)
	require.Equal(t, 1, analytics.TaskCompletionRate.Overdue)
	require.Equal(t, 2, analytics.TaskCompletionRate.Pending)

	distribution := make(map[string]int, len(analytics.GradeDistribution))
	for _, bucket := range analytics.GradeDistribution {
		distribution[bucket.Grade] = bucket.Count
	}
	require.Equal(t, 1, distribution[models.LetterGradeA])
	require.Equal(t, 1, distribution[models.LetterGradeB])
	require.Equal(t, 1, distribution[models.LetterGradeF])
	require.Equal(t, 0, distribution[models.LetterGradeC])

	require.Len(t, analytics.SectionPerformance, 1)
	// (95+85+40)/3 percentage points
	require.Equal(t, 73, analytics.SectionPerformance[0].AverageScore)
}

func TestReportStudentPerformanceStatuses(t *testing.T) {
	svc, progress, grades, students := reportFixture(t, nil)

	require.NoError(t, students.Create(context.Background(), &models.Student{UserID: 1, SectionID: 1, FirstName: "Maya"}))

	// Student 1: strong average, nothing overdue.
	grade := models.Grade{UserID: 1, StudentID: 1, TaskID: 1, MaxScore: 100}
	grade.Apply(92)
	require.NoError(t, grades.Create(context.Background(), &grade))

	// Student 2: failing average.
	grade = models.Grade{UserID: 1, StudentID: 2, TaskID: 1, MaxScore: 100}
	grade.Apply(30)
	require.NoError(t, grades.Create(context.Background(), &grade))

	// Student 3: decent grades but overdue work piling up.
	grade = models.Grade{UserID: 1, StudentID: 3, TaskID: 1, MaxScore: 100}
	grade.Apply(80)
	require.NoError(t, grades.Create(context.Background(), &grade))
	require.NoError(t, progress.Create(context.Background(), &models.Progress{
		UserID: 1, StudentID: 3, TaskID: 1, Status: models.ProgressStatusOverdue,
	}))

	performance, _, err := svc.StudentPerformance(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, performance.Students, 3)

	byID := make(map[uint]dto.StudentPerformanceEntry, len(performance.Students))
	for _, entry := range performance.Students {
		byID[entry.StudentID] = entry
	}

	require.Equal(t, dto.PerformanceOnTrack, byID[1].Status)
	require.Equal(t, dto.PerformanceNeedsAttention, byID[2].Status)
	require.Equal(t, dto.PerformanceAtRisk, byID[3].Status)
	require.Equal(t, 1, byID[3].OverdueTasks)
	require.Equal(t, 92, byID[1].AverageScore)
}

func TestReportStudentPerformanceUngraded(t *testing.T) {
	svc, _, _, _ := reportFixture(t, nil)

	performance, _, err := svc.StudentPerformance(context.Background(), 1)
	require.NoError(t, err)
	for _, entry := range performance.Students {
		require.Equal(t, dto.PerformanceOnTrack, entry.Status)
		require.Equal(t, 0, entry.AverageScore)
	}
}
