package worker

import (
	"context"

	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
	emailProvider "github.com/gigmarket/backend/pkg/email"
	smsProvider "github.com/gigmarket/backend/pkg/sms"
	"github.com/google/uuid"
)

type Workers struct {
	NotificationSender NotificationSender
}

type Deps struct {
	Services    *service.Services
	EmailSender emailProvider.Sender
	SMSSender   smsProvider.Sender
	Config      *config.Config
}

type NotificationSender interface {
	Deliver(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		NotificationSender: newNotificationSender(deps.Services, deps.EmailSender, deps.SMSSender, deps.Config),
	}
}
