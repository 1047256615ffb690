package service

import (
	"context"
	"io"
	"time"

	"github.com/gigmarket/backend/internal/blob"
	"github.com/gigmarket/backend/internal/cache"
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/hash"
	"github.com/gigmarket/backend/pkg/otp"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Services struct {
	Users           Users
	IDVerifications IDVerifications
	Notifications   Notifications
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
	Storage      blob.Storage
	Locker       cache.Locker
	Dispatcher   NotificationDispatcher
	Tracer       trace.Tracer
	Now          func() time.Time
}

func NewServices(deps Deps) *Services {
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer("github.com/gigmarket/backend/internal/service")
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Services{
		Users: newUserService(deps.Repos.Users,
			deps.Hasher,
			deps.TokenManager,
		),
		IDVerifications: newIDVerificationService(
			deps.Repos.Users,
			deps.Repos.IDVerifications,
			deps.Storage,
			deps.Locker,
			deps.Dispatcher,
			deps.OtpGenerator,
			deps.Tracer,
			deps.Config.IDVerification,
			deps.Now,
		),
		Notifications: newNotificationService(deps.Repos.Notifications, deps.Now),
	}
}

type Users interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email string, password string) (*Tokens, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetProfile(ctx context.Context, viewer Viewer, userID uuid.UUID) (*Profile, error)
}

// UploadFile is an image submitted for ID verification. Field names the form field it came from.
type UploadFile struct {
	Field    string
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

type UploadResult struct {
	URL    string
	Status domain.VerificationStatus
}

type IDVerifications interface {
	UploadFront(ctx context.Context, userID uuid.UUID, file *UploadFile) (*UploadResult, error)
	UploadBack(ctx context.Context, userID uuid.UUID, file *UploadFile) (*UploadResult, error)
	Resubmit(ctx context.Context, userID uuid.UUID, front *UploadFile, back *UploadFile) error
	GetStatus(ctx context.Context, userID uuid.UUID) (*domain.IDVerification, error)
	ListByStatus(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.User, int64, error)
	Approve(ctx context.Context, adminID uuid.UUID, userID uuid.UUID) error
	Reject(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, reason string) error
}

type Notifications interface {
	Store(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

// NotificationDispatcher hands a notification over for delivery.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) error
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
