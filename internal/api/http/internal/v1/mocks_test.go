package v1

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
)

type mockIDVerifications struct {
	mock.Mock
}

func (m *mockIDVerifications) UploadFront(ctx context.Context, userID uuid.UUID, file *service.UploadFile) (*service.UploadResult, error) {
	args := m.Called(ctx, userID, file)
	res, _ := args.Get(0).(*service.UploadResult)
	return res, args.Error(1)
}

func (m *mockIDVerifications) UploadBack(ctx context.Context, userID uuid.UUID, file *service.UploadFile) (*service.UploadResult, error) {
	args := m.Called(ctx, userID, file)
	res, _ := args.Get(0).(*service.UploadResult)
	return res, args.Error(1)
}

func (m *mockIDVerifications) Resubmit(ctx context.Context, userID uuid.UUID, front *service.UploadFile, back *service.UploadFile) error {
	return m.Called(ctx, userID, front, back).Error(0)
}

func (m *mockIDVerifications) GetStatus(ctx context.Context, userID uuid.UUID) (*domain.IDVerification, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*domain.IDVerification)
	return v, args.Error(1)
}

func (m *mockIDVerifications) ListByStatus(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, status, page, limit)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockIDVerifications) Approve(ctx context.Context, adminID uuid.UUID, userID uuid.UUID) error {
	return m.Called(ctx, adminID, userID).Error(0)
}

func (m *mockIDVerifications) Reject(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, reason string) error {
	return m.Called(ctx, adminID, userID, reason).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUsers) Login(ctx context.Context, email string, password string) (*service.Tokens, error) {
	args := m.Called(ctx, email, password)
	t, _ := args.Get(0).(*service.Tokens)
	return t, args.Error(1)
}

func (m *mockUsers) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetProfile(ctx context.Context, viewer service.Viewer, userID uuid.UUID) (*service.Profile, error) {
	args := m.Called(ctx, viewer, userID)
	p, _ := args.Get(0).(*service.Profile)
	return p, args.Error(1)
}

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) Store(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) (*domain.Notification, error) {
	args := m.Called(ctx, userID, payload)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *mockNotifications) List(ctx context.Context, userID uuid.UUID, page, limit int) (*service.NotificationPage, error) {
	args := m.Called(ctx, userID, page, limit)
	p, _ := args.Get(0).(*service.NotificationPage)
	return p, args.Error(1)
}

func (m *mockNotifications) MarkRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}
