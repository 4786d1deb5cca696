package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
)

type fakeAnnouncementRepo struct {
	announcements map[uint]models.Announcement
	nextID        uint
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: make(map[uint]models.Announcement), nextID: 1}
}

func (f *fakeAnnouncementRepo) List(ctx context.Context, userID uint, sectionID *uint) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, announcement := range f.announcements {
		if announcement.UserID != userID {
			continue
		}
		if sectionID != nil && announcement.SectionID != *sectionID {
			continue
		}
		out = append(out, announcement)
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) GetByID(ctx context.Context, userID, id uint) (models.Announcement, error) {
	announcement, ok := f.announcements[id]
	if !ok || announcement.UserID != userID {
		return models.Announcement{}, gorm.ErrRecordNotFound
	}
	return announcement, nil
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = f.nextID
	f.nextID++
	f.announcements[announcement.ID] = *announcement
	return nil
}

func (f *fakeAnnouncementRepo) Update(ctx context.Context, announcement *models.Announcement) error {
	f.announcements[announcement.ID] = *announcement
	return nil
}

func (f *fakeAnnouncementRepo) Delete(ctx context.Context, userID, id uint) error {
	announcement, ok := f.announcements[id]
	if !ok || announcement.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.announcements, id)
	return nil
}

func announcementFixture(t *testing.T) (AnnouncementService, *fakeAnnouncementRepo, *recordingNotifier) {
	t.Helper()

	repo := newFakeAnnouncementRepo()
	sections := newFakeSectionRepo()
	notifier := &recordingNotifier{}

	require.NoError(t, sections.Create(context.Background(), &models.Section{UserID: 1, Name: "Algebra I"}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAnnouncementService(repo, sections, notifier, validate, testLogger())

	return svc, repo, notifier
}

func TestAnnouncementCreateSanitizesContent(t *testing.T) {
	svc, _, notifier := announcementFixture(t)

	result, err := svc.Create(context.Background(), 1, "teacher", dto.AnnouncementCreateRequest{
		SectionID: 1,
		Title:     "Exam schedule",
		Content:   `<p>Midterm on <strong>Friday</strong></p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Contains(t, result.Content, "<strong>Friday</strong>")
	require.NotContains(t, result.Content, "script")
	require.Equal(t, "teacher", result.CreatedBy)

	require.Len(t, notifier.published, 1)
	require.Equal(t, models.NotificationTypeAnnouncement, notifier.published[0].Type)
}

func TestAnnouncementCreateRejectsEmptyContent(t *testing.T) {
	svc, repo, _ := announcementFixture(t)

	_, err := svc.Create(context.Background(), 1, "teacher", dto.AnnouncementCreateRequest{
		SectionID: 1,
		Title:     "Empty",
		Content:   `<script>alert("x")</script>`,
	})
	require.ErrorIs(t, err, ErrAnnouncementEmpty)
	require.Empty(t, repo.announcements)
}

func TestAnnouncementCreateUnknownSection(t *testing.T) {
	svc, _, _ := announcementFixture(t)

	_, err := svc.Create(context.Background(), 1, "teacher", dto.AnnouncementCreateRequest{
		SectionID: 9,
		Title:     "Lost",
		Content:   "text",
	})
	require.ErrorIs(t, err, ErrSectionNotFound)
}

func TestAnnouncementPinToggle(t *testing.T) {
	svc, _, _ := announcementFixture(t)

	created, err := svc.Create(context.Background(), 1, "teacher", dto.AnnouncementCreateRequest{
		SectionID: 1,
		Title:     "Reminder",
		Content:   "Bring calculators",
	})
	require.NoError(t, err)
	require.False(t, created.IsPinned)

	pinned, err := svc.Pin(context.Background(), 1, created.ID, dto.AnnouncementPinRequest{IsPinned: true})
	require.NoError(t, err)
	require.True(t, pinned.IsPinned)

	unpinned, err := svc.Pin(context.Background(), 1, created.ID, dto.AnnouncementPinRequest{IsPinned: false})
	require.NoError(t, err)
	require.False(t, unpinned.IsPinned)
}

func TestAnnouncementOwnerScoping(t *testing.T) {
	svc, _, _ := announcementFixture(t)

	created, err := svc.Create(context.Background(), 1, "teacher", dto.AnnouncementCreateRequest{
		SectionID: 1,
		Title:     "Private",
		Content:   "Only mine",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, ErrAnnouncementNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), 2, created.ID), ErrAnnouncementNotFound)
}
