package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gigmarket/backend/internal/queue/task"
	"github.com/gigmarket/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendNotificationProcessor struct {
	workers *worker.Workers
}

func NewSendNotificationProcessor(workers *worker.Workers) *sendNotificationProcessor {
	return &sendNotificationProcessor{
		workers: workers,
	}
}

func (p *sendNotificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendNotification
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send notification task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	if err = p.workers.NotificationSender.Deliver(ctx, data.UserID, data.Payload); err != nil {
		return fmt.Errorf("deliver notification failed: %w", err)
	}

	return nil
}
