package domain

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)

// GuardError is returned when the current verification state forbids the requested operation.
// Its message is safe to show to the account owner.
type GuardError struct {
	Code    string
	Message string
}

func (e *GuardError) Error() string {
	return e.Message
}

var (
	ErrAlreadyUnderReview = &GuardError{
		Code:    "already_under_review",
		Message: "Your ID verification is currently under review. Please wait for admin approval.",
	}
	ErrAlreadyVerified = &GuardError{
		Code:    "already_verified",
		Message: "Your ID is already verified.",
	}
	ErrFrontImageRequired = &GuardError{
		Code:    "front_image_required",
		Message: "Please upload front ID first",
	}
	ErrResubmitNotAllowed = &GuardError{
		Code:    "resubmit_not_allowed",
		Message: "Only a rejected ID verification can be resubmitted.",
	}
)

// ValidationError describes bad input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
