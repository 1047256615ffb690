package domain_test

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmarket/backend/internal/domain"
)

var reviewer = domain.Reviewer{ID: uuid.MustParse("0190a1b2-0000-7000-8000-000000000001"), Name: "Ada Admin"}

func pendingRecord(t *testing.T) *domain.IDVerification {
	t.Helper()
	v := domain.NewIDVerification()
	require.NoError(t, v.AttachFront("https://cdn/front.jpg"))
	require.NoError(t, v.AttachBack("https://cdn/back.jpg"))
	return v
}

func TestNewIDVerificationStartsUnset(t *testing.T) {
	v := domain.NewIDVerification()

	assert.Equal(t, domain.VerificationStatusUnset, v.Status())
	assert.Empty(t, v.FrontImage())
	assert.Empty(t, v.BackImage())
	assert.Nil(t, v.VerifiedAt())
	assert.NoError(t, v.Validate())
}

func TestAttachFrontKeepsStatus(t *testing.T) {
	v := domain.NewIDVerification()

	require.NoError(t, v.AttachFront("https://cdn/a.jpg"))

	assert.Equal(t, domain.VerificationStatusUnset, v.Status())
	assert.Equal(t, "https://cdn/a.jpg", v.FrontImage())
}

func TestAttachFrontWithStaleBackDoesNotSubmit(t *testing.T) {
	v := domain.RestoreIDVerification(domain.IDVerificationSnapshot{
		BackImage: sql.NullString{String: "https://cdn/old-back.jpg", Valid: true},
	})

	require.NoError(t, v.AttachFront("https://cdn/front.jpg"))

	assert.Equal(t, domain.VerificationStatusUnset, v.Status())
}

func TestAttachBackSubmitsForReview(t *testing.T) {
	v := pendingRecord(t)

	assert.Equal(t, domain.VerificationStatusPending, v.Status())
	assert.Equal(t, "https://cdn/back.jpg", v.BackImage())
	assert.NoError(t, v.Validate())
}

func TestAttachBackRequiresFrontFirst(t *testing.T) {
	cases := map[string]domain.IDVerificationSnapshot{
		"unset":    {},
		"rejected": {Status: domain.VerificationStatusRejected, Notes: sql.NullString{String: "blurry", Valid: true}},
		"pending":  {Status: domain.VerificationStatusPending},
		"verified": {Status: domain.VerificationStatusVerified},
	}

	for name, snapshot := range cases {
		t.Run(name, func(t *testing.T) {
			v := domain.RestoreIDVerification(snapshot)

			err := v.AttachBack("https://cdn/back.jpg")

			require.ErrorIs(t, err, domain.ErrFrontImageRequired)
			assert.Empty(t, v.BackImage())
			assert.Equal(t, snapshot.Status, v.Status())
		})
	}
}

func TestUploadGuardWhilePending(t *testing.T) {
	v := pendingRecord(t)

	for i := 0; i < 3; i++ {
		err := v.AttachFront("https://cdn/other.jpg")
		require.ErrorIs(t, err, domain.ErrAlreadyUnderReview)
	}
	assert.Equal(t, "https://cdn/front.jpg", v.FrontImage())
	assert.ErrorIs(t, v.AttachBack("https://cdn/other.jpg"), domain.ErrAlreadyUnderReview)
}

func TestUploadGuardWhenVerified(t *testing.T) {
	v := pendingRecord(t)
	v.Approve(reviewer, time.Now())

	assert.ErrorIs(t, v.AttachFront("https://cdn/other.jpg"), domain.ErrAlreadyVerified)
	assert.ErrorIs(t, v.AttachBack("https://cdn/other.jpg"), domain.ErrAlreadyVerified)
}

func TestApproveSetsVerifiedAtAndAuditNote(t *testing.T) {
	v := pendingRecord(t)
	at := time.Date(2026, 3, 4, 10, 11, 12, 0, time.UTC)

	v.Approve(reviewer, at)

	assert.Equal(t, domain.VerificationStatusVerified, v.Status())
	require.NotNil(t, v.VerifiedAt())
	assert.True(t, at.Equal(*v.VerifiedAt()))
	assert.Equal(t, "Approved by admin "+reviewer.ID.String()+" Ada Admin at 2026-03-04 10:11:12", v.ReviewNotes())
	assert.NoError(t, v.Validate())
}

func TestRejectRequiresReason(t *testing.T) {
	v := pendingRecord(t)

	err := v.Reject(reviewer, "   ", time.Now())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reason", verr.Field)
	assert.Equal(t, domain.VerificationStatusPending, v.Status())
}

func TestRejectAfterApproveClearsVerifiedAt(t *testing.T) {
	v := pendingRecord(t)
	v.Approve(reviewer, time.Now())

	require.NoError(t, v.Reject(reviewer, "blurry", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Equal(t, domain.VerificationStatusRejected, v.Status())
	assert.Nil(t, v.VerifiedAt())
	assert.Contains(t, v.ReviewNotes(), "blurry")
	assert.Contains(t, v.ReviewNotes(), "Rejected by admin "+reviewer.ID.String()+" Ada Admin at 2026-01-02 03:04:05")
	assert.NoError(t, v.Validate())
}

func TestResubmitOnlyFromRejected(t *testing.T) {
	fresh := domain.NewIDVerification()
	assert.ErrorIs(t, fresh.Resubmit("f", "b"), domain.ErrResubmitNotAllowed)

	pending := pendingRecord(t)
	assert.ErrorIs(t, pending.Resubmit("f", "b"), domain.ErrResubmitNotAllowed)

	rejected := pendingRecord(t)
	require.NoError(t, rejected.Reject(reviewer, "glare on photo", time.Now()))

	require.NoError(t, rejected.Resubmit("https://cdn/f2.jpg", "https://cdn/b2.jpg"))

	assert.Equal(t, domain.VerificationStatusPending, rejected.Status())
	assert.Empty(t, rejected.ReviewNotes())
	assert.Nil(t, rejected.VerifiedAt())
	assert.Equal(t, "https://cdn/f2.jpg", rejected.FrontImage())
	assert.Equal(t, "https://cdn/b2.jpg", rejected.BackImage())
}

func TestRejectedRecordAcceptsNewUploads(t *testing.T) {
	v := pendingRecord(t)
	require.NoError(t, v.Reject(reviewer, "expired document", time.Now()))

	require.NoError(t, v.AttachFront("https://cdn/f3.jpg"))
	assert.Equal(t, domain.VerificationStatusRejected, v.Status())

	require.NoError(t, v.AttachBack("https://cdn/b3.jpg"))
	assert.Equal(t, domain.VerificationStatusPending, v.Status())
}

func TestRepairResetsIncompletePending(t *testing.T) {
	v := domain.RestoreIDVerification(domain.IDVerificationSnapshot{
		Status:     domain.VerificationStatusPending,
		FrontImage: sql.NullString{String: "https://cdn/f.jpg", Valid: true},
	})
	require.Error(t, v.Validate())

	assert.True(t, v.Repair())
	assert.Equal(t, domain.VerificationStatusUnset, v.Status())
	assert.NoError(t, v.Validate())

	complete := pendingRecord(t)
	assert.False(t, complete.Repair())
	assert.Equal(t, domain.VerificationStatusPending, complete.Status())
}

func TestSnapshotRoundTrip(t *testing.T) {
	v := pendingRecord(t)
	v.Approve(reviewer, time.Now())

	restored := domain.RestoreIDVerification(v.Snapshot())

	assert.Equal(t, v.Status(), restored.Status())
	assert.Equal(t, v.FrontImage(), restored.FrontImage())
	assert.Equal(t, v.BackImage(), restored.BackImage())
	assert.Equal(t, v.ReviewNotes(), restored.ReviewNotes())
	assert.True(t, v.VerifiedAt().Equal(*restored.VerifiedAt()))
}

func TestSnapshotIsDetached(t *testing.T) {
	v := pendingRecord(t)
	v.Approve(reviewer, time.Now())
	before := *v.VerifiedAt()

	s := v.Snapshot()
	*s.VerifiedAt = before.Add(time.Hour)

	assert.True(t, before.Equal(*v.VerifiedAt()))
}

func TestVerificationStatusSQLAndJSON(t *testing.T) {
	value, err := domain.VerificationStatusUnset.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var s domain.VerificationStatus
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, domain.VerificationStatusUnset, s)
	require.NoError(t, s.Scan([]byte("pending")))
	assert.Equal(t, domain.VerificationStatusPending, s)

	out, err := json.Marshal(map[string]domain.VerificationStatus{
		"a": domain.VerificationStatusUnset,
		"b": domain.VerificationStatusRejected,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":"rejected"}`, string(out))
}

func TestParseVerificationStatus(t *testing.T) {
	s, err := domain.ParseVerificationStatus(" Pending ")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, s)

	s, err = domain.ParseVerificationStatus("unset")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusUnset, s)

	_, err = domain.ParseVerificationStatus("approved")
	assert.Error(t, err)
}

func TestViewHidesPrivateFields(t *testing.T) {
	v := pendingRecord(t)
	require.NoError(t, v.Reject(reviewer, "blurry", time.Now()))

	public := v.View(false)
	assert.Equal(t, domain.VerificationStatusRejected, public.Status)
	assert.Empty(t, public.FrontImage)
	assert.Empty(t, public.ReviewNotes)

	full := v.View(true)
	assert.Equal(t, "https://cdn/front.jpg", full.FrontImage)
	assert.Equal(t, "https://cdn/back.jpg", full.BackImage)
	assert.Contains(t, full.ReviewNotes, "blurry")

	out, err := json.Marshal(domain.NewIDVerification().View(true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_verification_status":null}`, string(out))
}
