package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
)

func notificationFixture() (NotificationService, *fakeNotificationRepo) {
	repo := newFakeNotificationRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewNotificationService(repo, nil, "", nil, validate, testLogger())
	return svc, repo
}

func TestNotificationPublishSanitizesMessage(t *testing.T) {
	svc, repo := notificationFixture()

	result, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeAnnouncement,
		Message: `<script>alert("x")</script>Quiz moved to Friday`,
	})
	require.NoError(t, err)
	require.Equal(t, "Quiz moved to Friday", result.Message)
	require.Len(t, repo.notifications, 1)
}

func TestNotificationPublishRejectsEmptyAfterSanitize(t *testing.T) {
	svc, repo := notificationFixture()

	_, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeAnnouncement,
		Message: `<img src="x">`,
	})
	require.Error(t, err)
	require.Empty(t, repo.notifications)
}

func TestNotificationSubscriberReceivesPublished(t *testing.T) {
	svc, _ := notificationFixture()

	stream, cancel := svc.Subscribe(1)
	defer cancel()

	published, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeGradePosted,
		Message: "Grade posted: 42/50 (B)",
	})
	require.NoError(t, err)

	select {
	case received := <-stream:
		require.Equal(t, published.ID, received.ID)
		require.Equal(t, models.NotificationTypeGradePosted, received.Type)
	case <-time.After(time.Second):
		t.Fatal("expected a notification on the stream")
	}
}

func TestNotificationSubscribeScopedToUser(t *testing.T) {
	svc, _ := notificationFixture()

	otherStream, cancel := svc.Subscribe(2)
	defer cancel()

	_, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeTaskDue,
		Message: "Quiz due Friday",
	})
	require.NoError(t, err)

	select {
	case <-otherStream:
		t.Fatal("notification leaked to another user's stream")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotificationMarkRead(t *testing.T) {
	svc, repo := notificationFixture()

	published, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeSubmission,
		Message: "New submission received",
	})
	require.NoError(t, err)
	require.False(t, published.Read)

	marked, err := svc.MarkRead(context.Background(), 1, published.ID)
	require.NoError(t, err)
	require.True(t, marked.Read)
	require.True(t, repo.notifications[published.ID].Read)
}

func TestNotificationMarkReadOtherUser(t *testing.T) {
	svc, _ := notificationFixture()

	published, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeSubmission,
		Message: "New submission received",
	})
	require.NoError(t, err)

	_, err = svc.MarkRead(context.Background(), 2, published.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationDelete(t *testing.T) {
	svc, repo := notificationFixture()

	published, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		UserID:  1,
		Type:    models.NotificationTypeTaskDue,
		Message: "Quiz due Friday",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, published.ID))
	require.Empty(t, repo.notifications)

	require.ErrorIs(t, svc.Delete(context.Background(), 1, published.ID), ErrNotificationNotFound)
}
