package service

import "errors"

var (
	ErrUserAlreadyExist   = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("role can not be chosen at registration")

	// ErrReviewerNotFound means the admin acting on a verification no longer has an account.
	ErrReviewerNotFound = errors.New("reviewer account not found")

	ErrNotificationNotFound = errors.New("notification not found")

	// ErrUploadFailed hides storage failures from callers. The cause is only logged.
	ErrUploadFailed     = errors.New("image upload failed")
	ErrUploadInProgress = errors.New("another ID upload for this account is in progress")

	// ErrNotificationDelivery marks a dispatch that could not be handed off. It is logged, never returned.
	ErrNotificationDelivery = errors.New("notification delivery failed")
)
