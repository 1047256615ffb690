package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationIDVerificationApproved NotificationType = "id_verification_approved"
	NotificationIDVerificationRejected NotificationType = "id_verification_rejected"
)

// NotificationPayload is the structured message handed to the notification dispatcher.
type NotificationPayload struct {
	Type       NotificationType `db:"type" json:"type"`
	Title      string           `db:"title" json:"title"`
	Message    string           `db:"message" json:"message"`
	ActionURL  string           `db:"action_url" json:"action_url"`
	ActionText string           `db:"action_text" json:"action_text"`
	Icon       string           `db:"icon" json:"icon"`
	Color      string           `db:"color" json:"color"`
}

// Notification is a delivered in-app notification.
type Notification struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`
	NotificationPayload
	ReadAt    *time.Time `db:"read_at" json:"read_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

func IDVerificationApprovedNotification(userID uuid.UUID) NotificationPayload {
	return NotificationPayload{
		Type:       NotificationIDVerificationApproved,
		Title:      "Identity Verified!",
		Message:    "Congratulations! Your identity has been verified. You now have full access to the platform.",
		ActionURL:  fmt.Sprintf("/profile/%s", userID),
		ActionText: "View Profile",
		Icon:       "check-circle",
		Color:      "green",
	}
}

func IDVerificationRejectedNotification(reason string) NotificationPayload {
	return NotificationPayload{
		Type:       NotificationIDVerificationRejected,
		Title:      "ID Verification Rejected",
		Message:    fmt.Sprintf("Your ID verification was rejected. Reason: %s. Please upload a new ID.", reason),
		ActionURL:  "/id-verification",
		ActionText: "Re-upload ID",
		Icon:       "x-circle",
		Color:      "red",
	}
}
