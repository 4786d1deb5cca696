package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedDisabled(t *testing.T) {
	svc := NewSeedService(newFakeSectionRepo(), newFakeStudentRepo(), newFakeTaskRepo(), newFakeProgressRepo(), false, "token", testLogger())

	_, err := svc.Seed(context.Background(), 1, "token")
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedInvalidToken(t *testing.T) {
	svc := NewSeedService(newFakeSectionRepo(), newFakeStudentRepo(), newFakeTaskRepo(), newFakeProgressRepo(), true, "expected", testLogger())

	_, err := svc.Seed(context.Background(), 1, "wrong")
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedEmptyConfiguredTokenNeverMatches(t *testing.T) {
	svc := NewSeedService(newFakeSectionRepo(), newFakeStudentRepo(), newFakeTaskRepo(), newFakeProgressRepo(), true, "", testLogger())

	_, err := svc.Seed(context.Background(), 1, "")
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedCreatesDemoData(t *testing.T) {
	sections := newFakeSectionRepo()
	students := newFakeStudentRepo()
	tasks := newFakeTaskRepo()
	progress := newFakeProgressRepo()
	svc := NewSeedService(sections, students, tasks, progress, true, "token", testLogger())

	result, err := svc.Seed(context.Background(), 7, "token")
	require.NoError(t, err)
	require.Equal(t, 2, result.Sections)
	require.Equal(t, 6, result.Students)
	require.Equal(t, 4, result.Tasks)
	require.Equal(t, 12, result.Progress)

	for _, section := range sections.sections {
		require.EqualValues(t, 7, section.UserID)
		require.Equal(t, 3, section.StudentCount)
	}

	count, err := students.CountBySection(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}
