package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Section{},
		&models.Student{},
		&models.Task{},
		&models.Progress{},
		&models.Grade{},
		&models.Submission{},
		&models.AttendanceRecord{},
		&models.Announcement{},
		&models.Notification{},
	))
	return db
}

func TestSectionRepositoryScopesToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSectionRepository(db)

	mine := models.Section{UserID: 1, Name: "Algebra I", Code: "ALG-1"}
	theirs := models.Section{UserID: 2, Name: "Algebra II", Code: "ALG-2"}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	sections, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, "Algebra I", sections[0].Name)

	_, err = repo.GetByID(context.Background(), 1, theirs.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSectionRepositoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSectionRepository(db)

	section := models.Section{UserID: 1, Name: "Physics"}
	require.NoError(t, db.Create(&section).Error)

	student := models.Student{UserID: 1, SectionID: section.ID, FirstName: "Emma", LastName: "Johnson"}
	require.NoError(t, db.Create(&student).Error)
	task := models.Task{UserID: 1, SectionID: section.ID, Title: "Lab Report", TotalPoints: 100}
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, db.Create(&models.Progress{UserID: 1, StudentID: student.ID, TaskID: task.ID, Status: models.ProgressStatusCompleted}).Error)
	require.NoError(t, db.Create(&models.Grade{UserID: 1, StudentID: student.ID, TaskID: task.ID, Score: 90, MaxScore: 100, Percentage: 90, LetterGrade: "A"}).Error)
	require.NoError(t, db.Create(&models.AttendanceRecord{UserID: 1, SectionID: section.ID, StudentID: student.ID, Date: "2025-09-01", Status: models.AttendanceStatusPresent}).Error)

	// A second teacher's data must survive the cascade.
	other := models.Section{UserID: 2, Name: "Chemistry"}
	require.NoError(t, db.Create(&other).Error)
	otherStudent := models.Student{UserID: 2, SectionID: other.ID, FirstName: "Liam"}
	require.NoError(t, db.Create(&otherStudent).Error)

	require.NoError(t, repo.Delete(context.Background(), 1, section.ID))

	var counts = map[string]int64{}
	for name, model := range map[string]interface{}{
		"students":   &models.Student{},
		"tasks":      &models.Task{},
		"progress":   &models.Progress{},
		"grades":     &models.Grade{},
		"attendance": &models.AttendanceRecord{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		counts[name] = count
	}

	require.Equal(t, int64(1), counts["students"], "only the other teacher's student should remain")
	require.Equal(t, int64(0), counts["tasks"])
	require.Equal(t, int64(0), counts["progress"])
	require.Equal(t, int64(0), counts["grades"])
	require.Equal(t, int64(0), counts["attendance"])

	_, err := repo.GetByID(context.Background(), 1, section.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSectionRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSectionRepository(db)

	err := repo.Delete(context.Background(), 1, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
