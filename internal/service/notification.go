package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/queue/task"
	"github.com/gigmarket/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type notificationService struct {
	notificationRepository repository.Notifications
	now                    func() time.Time
}

func newNotificationService(notificationRepository repository.Notifications, now func() time.Time) *notificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		now:                    now,
	}
}

type NotificationPage struct {
	Items  []domain.Notification
	Total  int64
	Unread int64
}

// Store writes the in-app copy of a notification.
func (s *notificationService) Store(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) (*domain.Notification, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate notification id failed: %w", err)
	}

	notification := &domain.Notification{
		ID:                  id,
		UserID:              userID,
		NotificationPayload: payload,
		CreatedAt:           s.now(),
	}

	if err := s.notificationRepository.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("create notification failed: %w", err)
	}

	return notification, nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error) {
	items, total, err := s.notificationRepository.ListByUserID(ctx, userID, limit, offset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("list notifications failed: %w", err)
	}

	unread, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread notifications failed: %w", err)
	}

	return &NotificationPage{Items: items, Total: total, Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := s.notificationRepository.MarkRead(ctx, userID, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read failed: %w", err)
	}
	return nil
}

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher hands notifications to the background worker through asynq.
type QueueDispatcher struct {
	enqueuer Enqueuer
}

// NewQueueDispatcher enqueues through enqueuer, normally the process's *asynq.Client.
func NewQueueDispatcher(enqueuer Enqueuer) *QueueDispatcher {
	return &QueueDispatcher{enqueuer: enqueuer}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) error {
	t, err := task.NewSendNotificationTask(userID, payload)
	if err != nil {
		return fmt.Errorf("create send notification task failed: %w", err)
	}

	if _, err := d.enqueuer.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send notification task failed: %w", err)
	}

	return nil
}
