package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigmarket/backend/internal/blob"
	"github.com/gigmarket/backend/internal/cache"
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/hash"
	"github.com/gigmarket/backend/pkg/otp"
)

const maxUploadSize = 5 * 1024 * 1024

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	fixedNow   = time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
	onPut   func(key string)
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, obj blob.Object) (string, error) {
	if m.onPut != nil {
		m.onPut(obj.Key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj.Body); err != nil {
		return "", err
	}
	url := "https://cdn.test/" + obj.Key
	m.objects[url] = buf.Bytes()
	return url, nil
}

func (m *memStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, userID uuid.UUID, payload domain.NotificationPayload) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}

type stubLocker struct {
	err      error
	released int
}

func (l *stubLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

type fixture struct {
	services   *service.Services
	repos      *repository.Repositories
	storage    *memStorage
	dispatcher *mockDispatcher
	locker     *stubLocker
	admin      *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))

	tokenManager, err := auth.NewManager(config.JWTConfig{SigningKey: "test", AccessTokenTTL: time.Minute})
	require.NoError(t, err)

	f := &fixture{
		repos:      repository.NewRepositories(conn),
		storage:    newMemStorage(),
		dispatcher: &mockDispatcher{},
		locker:     &stubLocker{},
	}

	f.services = service.NewServices(service.Deps{
		Config: &config.Config{
			IDVerification: config.IDVerification{MaxUploadSize: maxUploadSize, LockTTL: time.Minute},
		},
		Hasher:       hash.NewBcryptHasher(bcrypt.MinCost),
		TokenManager: tokenManager,
		OtpGenerator: otp.NewGOTPGenerator(),
		Repos:        f.repos,
		Storage:      f.storage,
		Locker:       f.locker,
		Dispatcher:   f.dispatcher,
		Now:          func() time.Time { return fixedNow },
	})

	f.admin = &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Ada Admin",
		Email:        "admin@example.com",
		PasswordHash: "x",
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, f.repos.Users.Create(context.Background(), f.admin))

	return f
}

func (f *fixture) newWorker(t *testing.T) *domain.User {
	t.Helper()
	user, err := f.services.Users.Register(context.Background(), service.RegisterInput{
		Name:     "Gina Worker",
		Email:    uuid.NewString() + "@example.com",
		Phone:    "+15550001111",
		Password: "secret123",
		Role:     domain.RoleGigWorker,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) record(t *testing.T, userID uuid.UUID) *domain.IDVerification {
	t.Helper()
	v, err := f.repos.IDVerifications.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return v
}

// submit takes a fresh account to pending.
func (f *fixture) submit(t *testing.T, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	_, err := f.services.IDVerifications.UploadFront(ctx, userID, image(service.FieldFrontID, pngHeader))
	require.NoError(t, err)
	_, err = f.services.IDVerifications.UploadBack(ctx, userID, image(service.FieldBackID, jpegHeader))
	require.NoError(t, err)
}

func image(field string, header []byte) *service.UploadFile {
	content := append(append([]byte{}, header...), bytes.Repeat([]byte{0}, 512)...)
	return &service.UploadFile{
		Field:    field,
		Filename: field + ".img",
		Size:     int64(len(content)),
		Content:  bytes.NewReader(content),
	}
}

func textFile(field string) *service.UploadFile {
	content := []byte(strings.Repeat("not an image ", 20))
	return &service.UploadFile{Field: field, Filename: "id.txt", Size: int64(len(content)), Content: bytes.NewReader(content)}
}

var errStorageDown = errors.New("connection refused")

var _ cache.Locker = (*stubLocker)(nil)
