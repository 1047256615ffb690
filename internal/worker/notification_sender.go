package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
	emailProvider "github.com/gigmarket/backend/pkg/email"
	"github.com/gigmarket/backend/pkg/logger"
	smsProvider "github.com/gigmarket/backend/pkg/sms"
)

type notificationSender struct {
	services    *service.Services
	emailSender emailProvider.Sender
	smsSender   smsProvider.Sender
	config      *config.Config
}

func newNotificationSender(
	services *service.Services,
	emailSender emailProvider.Sender,
	smsSender smsProvider.Sender,
	config *config.Config,
) *notificationSender {
	return &notificationSender{
		services:    services,
		emailSender: emailSender,
		smsSender:   smsSender,
		config:      config,
	}
}

type notificationEmailInput struct {
	Name       string
	Title      string
	Message    string
	ActionURL  string
	ActionText string
	Color      string
}

// Deliver stores the in-app notification and then fans out to email and SMS.
// Only the in-app write can fail the task; a retry after it would duplicate the inbox entry.
func (s *notificationSender) Deliver(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) error {
	if _, err := s.services.Notifications.Store(ctx, userID, payload); err != nil {
		return fmt.Errorf("store notification failed: %w", err)
	}

	log := logger.Logger().With(
		zap.String("user_id", userID.String()),
		zap.String("notification_type", string(payload.Type)),
	)

	user, err := s.services.Users.GetOneByID(ctx, userID)
	if err != nil {
		log.Error("load notification recipient failed", zap.Error(err))
		return nil
	}

	if err := s.sendEmail(user, payload); err != nil {
		log.Error("send notification email failed", zap.Error(err))
	}

	if err := s.sendSMS(user, payload); err != nil {
		log.Error("send notification sms failed", zap.Error(err))
	}

	return nil
}

func (s *notificationSender) sendEmail(user *domain.User, payload domain.NotificationPayload) error {
	if !s.config.Email.Enabled || s.emailSender == nil || user.Email == "" {
		return nil
	}

	templateInput := notificationEmailInput{
		Name:       user.Name,
		Title:      payload.Title,
		Message:    payload.Message,
		ActionURL:  s.actionURL(payload.ActionURL),
		ActionText: payload.ActionText,
		Color:      payload.Color,
	}
	sendInput := emailProvider.SendEmailInput{Subject: payload.Title, To: user.Email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Email.Templates.Notification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.emailSender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}

func (s *notificationSender) sendSMS(user *domain.User, payload domain.NotificationPayload) error {
	if !s.config.Notification.SMSEnabled || s.smsSender == nil || !user.Phone.Valid {
		return nil
	}

	body := fmt.Sprintf("%s: %s %s", payload.Title, payload.Message, s.actionURL(payload.ActionURL))

	if err := s.smsSender.Send(smsProvider.SendSMSInput{To: user.Phone.String, Body: body}); err != nil {
		return fmt.Errorf("send sms failed: %w", err)
	}

	return nil
}

func (s *notificationSender) actionURL(path string) string {
	return strings.TrimRight(s.config.Notification.AppURL, "/") + path
}
