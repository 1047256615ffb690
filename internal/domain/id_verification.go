package domain

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewTimeLayout formats review timestamps written into review notes.
const ReviewTimeLayout = "2006-01-02 15:04:05"

type VerificationStatus string

const (
	VerificationStatusUnset    VerificationStatus = ""
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// ParseVerificationStatus accepts the persisted names plus "unset".
func ParseVerificationStatus(raw string) (VerificationStatus, error) {
	switch s := VerificationStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case "unset", VerificationStatusUnset:
		return VerificationStatusUnset, nil
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
		return s, nil
	default:
		return VerificationStatusUnset, fmt.Errorf("unknown verification status %q", raw)
	}
}

func (s VerificationStatus) String() string {
	if s == VerificationStatusUnset {
		return "unset"
	}
	return string(s)
}

// MarshalJSON renders Unset as null.
func (s VerificationStatus) MarshalJSON() ([]byte, error) {
	if s == VerificationStatusUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// Value stores Unset as NULL.
func (s VerificationStatus) Value() (driver.Value, error) {
	if s == VerificationStatusUnset {
		return nil, nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner interface
func (s *VerificationStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = VerificationStatusUnset
	case []byte:
		*s = VerificationStatus(v)
	case string:
		*s = VerificationStatus(v)
	default:
		return fmt.Errorf("unsupported type for VerificationStatus: %T", value)
	}
	return nil
}

// Reviewer identifies the administrator deciding on a verification.
type Reviewer struct {
	ID   uuid.UUID
	Name string
}

// IDVerification is the identity verification record owned by a user account.
// It can only change through its methods, which keep these invariants:
//   - pending implies both images are present
//   - verified implies a verification time
//   - rejected implies review notes holding the reason
type IDVerification struct {
	status     VerificationStatus
	frontImage string
	backImage  string
	verifiedAt *time.Time
	notes      string
}

// IDVerificationSnapshot is the persisted shape of an IDVerification.
type IDVerificationSnapshot struct {
	Status     VerificationStatus `db:"id_verification_status"`
	FrontImage sql.NullString     `db:"id_front_image"`
	BackImage  sql.NullString     `db:"id_back_image"`
	VerifiedAt *time.Time         `db:"id_verified_at"`
	Notes      sql.NullString     `db:"id_verification_notes"`
}

// NewIDVerification returns the record every new account starts with.
func NewIDVerification() *IDVerification {
	return &IDVerification{}
}

func RestoreIDVerification(s IDVerificationSnapshot) *IDVerification {
	v := &IDVerification{
		status:     s.Status,
		frontImage: s.FrontImage.String,
		backImage:  s.BackImage.String,
		notes:      s.Notes.String,
	}
	if s.VerifiedAt != nil {
		at := *s.VerifiedAt
		v.verifiedAt = &at
	}
	return v
}

func (v *IDVerification) Snapshot() IDVerificationSnapshot {
	s := IDVerificationSnapshot{
		Status:     v.status,
		FrontImage: nullString(v.frontImage),
		BackImage:  nullString(v.backImage),
		Notes:      nullString(v.notes),
	}
	if v.verifiedAt != nil {
		at := *v.verifiedAt
		s.VerifiedAt = &at
	}
	return s
}

func (v *IDVerification) Status() VerificationStatus {
	return v.status
}

func (v *IDVerification) FrontImage() string {
	return v.frontImage
}

func (v *IDVerification) BackImage() string {
	return v.backImage
}

func (v *IDVerification) VerifiedAt() *time.Time {
	if v.verifiedAt == nil {
		return nil
	}
	at := *v.verifiedAt
	return &at
}

func (v *IDVerification) ReviewNotes() string {
	return v.notes
}

// CheckUploadAllowed reports whether new images may be uploaded in the current state.
func (v *IDVerification) CheckUploadAllowed() error {
	switch v.status {
	case VerificationStatusPending:
		return ErrAlreadyUnderReview
	case VerificationStatusVerified:
		return ErrAlreadyVerified
	}
	return nil
}

// CheckBackUploadAllowed applies the front-before-back ordering ahead of the state guard.
func (v *IDVerification) CheckBackUploadAllowed() error {
	if v.frontImage == "" {
		return ErrFrontImageRequired
	}
	return v.CheckUploadAllowed()
}

func (v *IDVerification) CheckResubmitAllowed() error {
	if v.status != VerificationStatusRejected {
		return ErrResubmitNotAllowed
	}
	return nil
}

// AttachFront stores the front image reference. The status never changes here.
func (v *IDVerification) AttachFront(imageURL string) error {
	if err := v.CheckUploadAllowed(); err != nil {
		return err
	}
	if imageURL == "" {
		return errors.New("empty front image reference")
	}
	v.frontImage = imageURL
	return nil
}

// AttachBack stores the back image reference and submits the record for review.
func (v *IDVerification) AttachBack(imageURL string) error {
	if err := v.CheckBackUploadAllowed(); err != nil {
		return err
	}
	if imageURL == "" {
		return errors.New("empty back image reference")
	}
	v.backImage = imageURL
	v.status = VerificationStatusPending
	return nil
}

// Resubmit replaces both images after a rejection and returns the record to review.
func (v *IDVerification) Resubmit(frontURL string, backURL string) error {
	if err := v.CheckResubmitAllowed(); err != nil {
		return err
	}
	if frontURL == "" || backURL == "" {
		return errors.New("empty image reference")
	}
	v.frontImage = frontURL
	v.backImage = backURL
	v.status = VerificationStatusPending
	v.notes = ""
	v.verifiedAt = nil
	return nil
}

func (v *IDVerification) Approve(by Reviewer, at time.Time) {
	v.status = VerificationStatusVerified
	v.verifiedAt = &at
	v.notes = fmt.Sprintf("Approved by admin %s %s at %s", by.ID, by.Name, at.Format(ReviewTimeLayout))
}

func (v *IDVerification) Reject(by Reviewer, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewValidationError("reason", "The rejection reason is required.")
	}
	v.status = VerificationStatusRejected
	v.verifiedAt = nil
	v.notes = fmt.Sprintf("%s — Rejected by admin %s %s at %s", reason, by.ID, by.Name, at.Format(ReviewTimeLayout))
	return nil
}

// Repair resets a pending record that lacks an image back to unset.
// It reports whether anything changed.
func (v *IDVerification) Repair() bool {
	if v.status != VerificationStatusPending {
		return false
	}
	if v.frontImage != "" && v.backImage != "" {
		return false
	}
	v.status = VerificationStatusUnset
	return true
}

// Validate checks the record invariants.
func (v *IDVerification) Validate() error {
	switch v.status {
	case VerificationStatusUnset:
	case VerificationStatusPending:
		if v.frontImage == "" || v.backImage == "" {
			return errors.New("pending verification requires both images")
		}
	case VerificationStatusVerified:
		if v.verifiedAt == nil {
			return errors.New("verified verification requires verified_at")
		}
	case VerificationStatusRejected:
		if v.notes == "" {
			return errors.New("rejected verification requires review notes")
		}
	default:
		return fmt.Errorf("unknown verification status %q", v.status)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// IDVerificationView is the rendered form of a record. Image references and notes
// are only filled for the owner and administrators.
type IDVerificationView struct {
	Status      VerificationStatus `json:"id_verification_status"`
	FrontImage  string             `json:"id_front_image,omitempty"`
	BackImage   string             `json:"id_back_image,omitempty"`
	VerifiedAt  *time.Time         `json:"id_verified_at,omitempty"`
	ReviewNotes string             `json:"id_verification_notes,omitempty"`
}

func (v *IDVerification) View(full bool) IDVerificationView {
	view := IDVerificationView{
		Status:     v.status,
		VerifiedAt: v.VerifiedAt(),
	}
	if full {
		view.FrontImage = v.frontImage
		view.BackImage = v.backImage
		view.ReviewNotes = v.notes
	}
	return view
}
