package repository

import (
	"context"
	"time"

	"github.com/gigmarket/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users           Users
	IDVerifications IDVerifications
	Notifications   Notifications
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:           newUserRepository(db),
		IDVerifications: newIDVerificationRepository(db),
		Notifications:   newNotificationRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.User, int64, error)
}

// IDVerificationMutator changes a verification record inside the update transaction.
// Returning an error aborts the transaction.
type IDVerificationMutator func(v *domain.IDVerification) error

type IDVerifications interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.IDVerification, error)
	Update(ctx context.Context, userID uuid.UUID, mutate IDVerificationMutator) (*domain.IDVerification, error)
	RepairIncomplete(ctx context.Context) (int64, error)
}

type Notifications interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID, readAt time.Time) error
}
