package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/gigmarket/backend/internal/domain"
)

const (
	SendNotificationTaskName  = "sendNotificationTask"
	SendNotificationQueueName = "notifications"
)

type SendNotification struct {
	UserID  uuid.UUID                  `json:"user_id"`
	Payload domain.NotificationPayload `json:"payload"`
}

func NewSendNotificationTask(userID uuid.UUID, payload domain.NotificationPayload) (*asynq.Task, error) {
	data := SendNotification{
		UserID:  userID,
		Payload: payload,
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendNotificationTaskName,
		raw,
		asynq.MaxRetry(5),
		asynq.Queue(SendNotificationQueueName),
	), nil
}
