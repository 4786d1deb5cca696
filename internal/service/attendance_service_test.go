package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
)

func attendanceFixture(t *testing.T) (AttendanceService, *fakeAttendanceRepo, *fakeStudentRepo) {
	t.Helper()

	repo := newFakeAttendanceRepo()
	students := newFakeStudentRepo()
	sections := newFakeSectionRepo()

	require.NoError(t, sections.Create(context.Background(), &models.Section{UserID: 1, Name: "Algebra I"}))
	for _, name := range []string{"Ava", "Liam", "Maya"} {
		require.NoError(t, students.Create(context.Background(), &models.Student{
			UserID:    1,
			SectionID: 1,
			FirstName: name,
		}))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAttendanceService(repo, students, sections, validate, testLogger())

	return svc, repo, students
}

func TestAttendanceMarkUpsertsByStudentDate(t *testing.T) {
	svc, repo, _ := attendanceFixture(t)

	first, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 1,
		Date:      "2026-03-02",
		Status:    models.AttendanceStatusAbsent,
	})
	require.NoError(t, err)

	second, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 1,
		Date:      "2026-03-02",
		Status:    models.AttendanceStatusLate,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, models.AttendanceStatusLate, second.Status)
	require.Len(t, repo.records, 1)
}

func TestAttendanceMarkAllPresent(t *testing.T) {
	svc, repo, _ := attendanceFixture(t)

	// A pre-existing Absent for the date must be flipped, not duplicated,
	// and other dates must stay untouched.
	_, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 2,
		Date:      "2026-03-02",
		Status:    models.AttendanceStatusAbsent,
	})
	require.NoError(t, err)
	_, err = svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 2,
		Date:      "2026-03-01",
		Status:    models.AttendanceStatusAbsent,
	})
	require.NoError(t, err)

	marked, err := svc.MarkAllPresent(context.Background(), 1, dto.AttendanceMarkAllRequest{
		SectionID: 1,
		Date:      "2026-03-02",
	})
	require.NoError(t, err)
	require.Len(t, marked, 3)
	for _, record := range marked {
		require.Equal(t, models.AttendanceStatusPresent, record.Status)
		require.Equal(t, "2026-03-02", record.Date)
	}

	require.Len(t, repo.records, 4)
	older, err := repo.GetByStudentDate(context.Background(), 1, 2, "2026-03-01")
	require.NoError(t, err)
	require.Equal(t, models.AttendanceStatusAbsent, older.Status)
}

func TestAttendanceStudentPercentage(t *testing.T) {
	svc, _, _ := attendanceFixture(t)

	dates := map[string]string{
		"2026-03-02": models.AttendanceStatusPresent,
		"2026-03-03": models.AttendanceStatusPresent,
		"2026-03-04": models.AttendanceStatusLate,
	}
	for date, status := range dates {
		_, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
			SectionID: 1,
			StudentID: 1,
			Date:      date,
			Status:    status,
		})
		require.NoError(t, err)
	}

	result, err := svc.StudentPercentage(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 2, result.Present)
	require.Equal(t, 3, result.Total)
	require.Equal(t, 67, result.Percentage)
}

func TestAttendanceStudentPercentageNoRecords(t *testing.T) {
	svc, _, _ := attendanceFixture(t)

	result, err := svc.StudentPercentage(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 0, result.Percentage)
	require.Equal(t, 0, result.Total)
}

func TestAttendanceSheetIncludesUnmarkedStudents(t *testing.T) {
	svc, _, _ := attendanceFixture(t)

	_, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 1,
		Date:      "2026-03-02",
		Status:    models.AttendanceStatusPresent,
	})
	require.NoError(t, err)

	sheet, err := svc.Sheet(context.Background(), 1, 1, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, sheet.Entries, 3)

	marked := 0
	for _, entry := range sheet.Entries {
		if entry.Status != "" {
			marked++
		}
	}
	require.Equal(t, 1, marked)
}

func TestAttendanceMarkUnknownStudent(t *testing.T) {
	svc, _, _ := attendanceFixture(t)

	_, err := svc.Mark(context.Background(), 1, dto.AttendanceMarkRequest{
		SectionID: 1,
		StudentID: 42,
		Date:      "2026-03-02",
		Status:    models.AttendanceStatusPresent,
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}
