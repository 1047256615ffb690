package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/queue/task"
	"github.com/gigmarket/backend/internal/worker"
)

type recordingSender struct {
	userID  uuid.UUID
	payload domain.NotificationPayload
	err     error
}

func (s *recordingSender) Deliver(_ context.Context, userID uuid.UUID, payload domain.NotificationPayload) error {
	s.userID = userID
	s.payload = payload
	return s.err
}

func TestSendNotificationProcessorDelivers(t *testing.T) {
	sender := &recordingSender{}
	p := NewSendNotificationProcessor(&worker.Workers{NotificationSender: sender})

	userID := uuid.New()
	payload := domain.IDVerificationApprovedNotification(userID)
	tsk, err := task.NewSendNotificationTask(userID, payload)
	require.NoError(t, err)

	require.NoError(t, p.ProcessTask(context.Background(), tsk))
	assert.Equal(t, userID, sender.userID)
	assert.Equal(t, payload, sender.payload)
}

func TestSendNotificationProcessorRetriesDeliveryErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("db down")}
	p := NewSendNotificationProcessor(&worker.Workers{NotificationSender: sender})

	tsk, err := task.NewSendNotificationTask(uuid.New(), domain.IDVerificationRejectedNotification("blurry"))
	require.NoError(t, err)

	err = p.ProcessTask(context.Background(), tsk)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestSendNotificationProcessorSkipsBrokenPayload(t *testing.T) {
	p := NewSendNotificationProcessor(&worker.Workers{NotificationSender: &recordingSender{}})

	err := p.ProcessTask(context.Background(), asynq.NewTask(task.SendNotificationTaskName, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
