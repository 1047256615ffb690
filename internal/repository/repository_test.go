package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(context.Background(), conn))
	return conn
}

func newTestUser(t *testing.T, repos *repository.Repositories, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Grace Worker",
		Email:        email,
		Phone:        sql.NullString{String: "+15550001111", Valid: true},
		PasswordHash: "hash",
		Role:         domain.RoleGigWorker,
	}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func TestUserCreateStartsUnset(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))
	user := newTestUser(t, repos, "grace@example.com")

	got, err := repos.Users.GetOneByID(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "grace@example.com", got.Email)
	assert.Equal(t, domain.RoleGigWorker, got.Role)
	require.NotNil(t, got.Verification)
	assert.Equal(t, domain.VerificationStatusUnset, got.Verification.Status())
	assert.Empty(t, got.Verification.FrontImage())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repos := repository.NewRepositories(newTestDB(t))
	newTestUser(t, repos, "dup@example.com")

	err := repos.Users.Create(context.Background(), &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Other",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleEmployer,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestUserGetNotFound(t *testing.T) {
	repos := repository.NewRepositories(newTestDB(t))

	_, err := repos.Users.GetOneByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repos.Users.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDVerificationUpdatePersists(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))
	user := newTestUser(t, repos, "flow@example.com")

	_, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
		return v.AttachFront("https://cdn/front.jpg")
	})
	require.NoError(t, err)

	updated, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
		return v.AttachBack("https://cdn/back.jpg")
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, updated.Status())

	stored, err := repos.IDVerifications.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Status(), stored.Status())
	assert.Equal(t, "https://cdn/front.jpg", stored.FrontImage())
	assert.Equal(t, "https://cdn/back.jpg", stored.BackImage())

	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	_, err = repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
		v.Approve(domain.Reviewer{ID: uuid.New(), Name: "Admin"}, at)
		return nil
	})
	require.NoError(t, err)

	stored, err = repos.IDVerifications.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusVerified, stored.Status())
	require.NotNil(t, stored.VerifiedAt())
	assert.True(t, at.Equal(*stored.VerifiedAt()))
	assert.Contains(t, stored.ReviewNotes(), "Approved by admin")
}

func TestIDVerificationUpdateMutatorErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))
	user := newTestUser(t, repos, "guard@example.com")

	_, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
		return v.AttachBack("https://cdn/back.jpg")
	})
	require.ErrorIs(t, err, domain.ErrFrontImageRequired)

	stored, err := repos.IDVerifications.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusUnset, stored.Status())
	assert.Empty(t, stored.BackImage())
}

func TestIDVerificationUpdateUnknownUser(t *testing.T) {
	repos := repository.NewRepositories(newTestDB(t))

	_, err := repos.IDVerifications.Update(context.Background(), uuid.New(), func(v *domain.IDVerification) error {
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIDVerificationConcurrentBackUploadsSubmitOnce(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))
	user := newTestUser(t, repos, "race@example.com")
	_, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
		return v.AttachFront("https://cdn/front.jpg")
	})
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		guarded   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
				return v.AttachBack(fmt.Sprintf("https://cdn/back-%d.jpg", i))
			})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				successes++
			case domain.ErrAlreadyUnderReview:
				guarded++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, guarded)

	stored, err := repos.IDVerifications.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, stored.Status())
	assert.NoError(t, stored.Validate())
}

func TestRepairIncomplete(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repos := repository.NewRepositories(conn)

	broken := newTestUser(t, repos, "broken@example.com")
	healthy := newTestUser(t, repos, "healthy@example.com")

	_, err := conn.ExecContext(ctx, `UPDATE users SET id_verification_status = 'pending', id_front_image = 'https://cdn/f.jpg' WHERE id = ?`, broken.ID)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `UPDATE users SET id_verification_status = 'pending', id_front_image = 'https://cdn/f.jpg', id_back_image = 'https://cdn/b.jpg' WHERE id = ?`, healthy.ID)
	require.NoError(t, err)

	repaired, err := repos.IDVerifications.RepairIncomplete(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), repaired)

	got, err := repos.IDVerifications.GetByUserID(ctx, broken.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusUnset, got.Status())

	got, err = repos.IDVerifications.GetByUserID(ctx, healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, got.Status())
}

func TestListByVerificationStatus(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))

	pending := make([]uuid.UUID, 0, 3)
	for i := 0; i < 3; i++ {
		user := newTestUser(t, repos, fmt.Sprintf("p%d@example.com", i))
		_, err := repos.IDVerifications.Update(ctx, user.ID, func(v *domain.IDVerification) error {
			if err := v.AttachFront("https://cdn/f.jpg"); err != nil {
				return err
			}
			return v.AttachBack("https://cdn/b.jpg")
		})
		require.NoError(t, err)
		pending = append(pending, user.ID)
	}
	newTestUser(t, repos, "unset@example.com")

	users, total, err := repos.Users.ListByVerificationStatus(ctx, domain.VerificationStatusPending, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Contains(t, pending, u.ID)
		assert.Equal(t, domain.VerificationStatusPending, u.Verification.Status())
	}

	users, total, err = repos.Users.ListByVerificationStatus(ctx, domain.VerificationStatusUnset, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "unset@example.com", users[0].Email)
}

func TestNotificationsInbox(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(newTestDB(t))
	user := newTestUser(t, repos, "inbox@example.com")
	other := newTestUser(t, repos, "other@example.com")

	first := &domain.Notification{
		ID:                  uuid.Must(uuid.NewV7()),
		UserID:              user.ID,
		NotificationPayload: domain.IDVerificationRejectedNotification("blurry"),
		CreatedAt:           time.Now().UTC().Add(-time.Minute),
	}
	second := &domain.Notification{
		ID:                  uuid.Must(uuid.NewV7()),
		UserID:              user.ID,
		NotificationPayload: domain.IDVerificationApprovedNotification(user.ID),
	}
	require.NoError(t, repos.Notifications.Create(ctx, first))
	require.NoError(t, repos.Notifications.Create(ctx, second))

	items, total, err := repos.Notifications.ListByUserID(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, domain.NotificationIDVerificationApproved, items[0].Type)
	assert.Equal(t, "Identity Verified!", items[0].Title)

	unread, err := repos.Notifications.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, repos.Notifications.MarkRead(ctx, user.ID, first.ID, time.Now().UTC()))
	unread, err = repos.Notifications.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	err = repos.Notifications.MarkRead(ctx, other.ID, second.ID, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
