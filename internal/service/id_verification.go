package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gigmarket/backend/internal/blob"
	"github.com/gigmarket/backend/internal/cache"
	"github.com/gigmarket/backend/internal/config"
	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/pkg/logger"
	"github.com/gigmarket/backend/pkg/otp"
)

const (
	FieldFrontID = "front_id"
	FieldBackID  = "back_id"

	sideFront = "front"
	sideBack  = "back"

	objectKeyRandomLength = 16
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
}

type idVerificationService struct {
	userRepository           repository.Users
	idVerificationRepository repository.IDVerifications
	storage                  blob.Storage
	locker                   cache.Locker
	dispatcher               NotificationDispatcher
	otpGenerator             otp.Generator
	tracer                   trace.Tracer
	config                   config.IDVerification
	now                      func() time.Time
}

func newIDVerificationService(
	userRepository repository.Users,
	idVerificationRepository repository.IDVerifications,
	storage blob.Storage,
	locker cache.Locker,
	dispatcher NotificationDispatcher,
	otpGenerator otp.Generator,
	tracer trace.Tracer,
	config config.IDVerification,
	now func() time.Time,
) *idVerificationService {
	return &idVerificationService{
		userRepository:           userRepository,
		idVerificationRepository: idVerificationRepository,
		storage:                  storage,
		locker:                   locker,
		dispatcher:               dispatcher,
		otpGenerator:             otpGenerator,
		tracer:                   tracer,
		config:                   config,
		now:                      now,
	}
}

func (s *idVerificationService) UploadFront(ctx context.Context, userID uuid.UUID, file *UploadFile) (*UploadResult, error) {
	ctx, span, log := s.start(ctx, "IDVerification.UploadFront", userID)
	defer span.End()

	log.Info("id front upload started")

	result, err := s.upload(ctx, log, userID, sideFront, FieldFrontID, file,
		(*domain.IDVerification).CheckUploadAllowed,
		(*domain.IDVerification).AttachFront,
	)
	if err != nil {
		s.fail(span, log, "id front upload failed", err)
		return nil, err
	}

	log.Info("id front upload succeeded", zap.String("url", result.URL))
	return result, nil
}

func (s *idVerificationService) UploadBack(ctx context.Context, userID uuid.UUID, file *UploadFile) (*UploadResult, error) {
	ctx, span, log := s.start(ctx, "IDVerification.UploadBack", userID)
	defer span.End()

	log.Info("id back upload started")

	result, err := s.upload(ctx, log, userID, sideBack, FieldBackID, file,
		(*domain.IDVerification).CheckBackUploadAllowed,
		(*domain.IDVerification).AttachBack,
	)
	if err != nil {
		s.fail(span, log, "id back upload failed", err)
		return nil, err
	}

	log.Info("id back upload succeeded, submitted for review",
		zap.String("url", result.URL),
		zap.Stringer("status", result.Status),
	)
	return result, nil
}

// upload runs the shared single-image flow: guard, validate, store, then attach inside one transaction.
func (s *idVerificationService) upload(
	ctx context.Context,
	log *zap.Logger,
	userID uuid.UUID,
	side string,
	field string,
	file *UploadFile,
	guard func(*domain.IDVerification) error,
	attach func(*domain.IDVerification, string) error,
) (*UploadResult, error) {
	current, err := s.idVerificationRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := guard(current); err != nil {
		return nil, err
	}

	ext, err := s.validateImage(field, file)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	url, err := s.store(ctx, log, userID, side, ext, file)
	if err != nil {
		return nil, err
	}

	updated, err := s.idVerificationRepository.Update(ctx, userID, func(v *domain.IDVerification) error {
		return attach(v, url)
	})
	if err != nil {
		s.discard(log, url)
		return nil, s.mapNotFound(err)
	}

	return &UploadResult{URL: url, Status: updated.Status()}, nil
}

func (s *idVerificationService) Resubmit(ctx context.Context, userID uuid.UUID, front *UploadFile, back *UploadFile) error {
	ctx, span, log := s.start(ctx, "IDVerification.Resubmit", userID)
	defer span.End()

	log.Info("id resubmission started")

	if err := s.resubmit(ctx, log, userID, front, back); err != nil {
		s.fail(span, log, "id resubmission failed", err)
		return err
	}

	log.Info("id resubmission succeeded, submitted for review")
	return nil
}

func (s *idVerificationService) resubmit(ctx context.Context, log *zap.Logger, userID uuid.UUID, front *UploadFile, back *UploadFile) error {
	current, err := s.idVerificationRepository.GetByUserID(ctx, userID)
	if err != nil {
		return s.mapNotFound(err)
	}
	if err := current.CheckResubmitAllowed(); err != nil {
		return err
	}

	// both files are validated before anything is stored
	frontExt, err := s.validateImage(FieldFrontID, front)
	if err != nil {
		return err
	}
	backExt, err := s.validateImage(FieldBackID, back)
	if err != nil {
		return err
	}

	release, err := s.lock(ctx, log, userID)
	if err != nil {
		return err
	}
	defer release()

	var frontURL, backURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		frontURL, err = s.store(gctx, log, userID, sideFront, frontExt, front)
		return err
	})
	g.Go(func() error {
		var err error
		backURL, err = s.store(gctx, log, userID, sideBack, backExt, back)
		return err
	})
	if err := g.Wait(); err != nil {
		s.discard(log, frontURL, backURL)
		return err
	}

	_, err = s.idVerificationRepository.Update(ctx, userID, func(v *domain.IDVerification) error {
		return v.Resubmit(frontURL, backURL)
	})
	if err != nil {
		s.discard(log, frontURL, backURL)
		return s.mapNotFound(err)
	}

	return nil
}

func (s *idVerificationService) GetStatus(ctx context.Context, userID uuid.UUID) (*domain.IDVerification, error) {
	v, err := s.idVerificationRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return v, nil
}

func (s *idVerificationService) ListByStatus(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.User, int64, error) {
	return s.userRepository.ListByVerificationStatus(ctx, status, limit, offset(page, limit))
}

func (s *idVerificationService) Approve(ctx context.Context, adminID uuid.UUID, userID uuid.UUID) error {
	ctx, span, log := s.start(ctx, "IDVerification.Approve", userID)
	defer span.End()

	log = log.With(zap.String("admin_id", adminID.String()))
	log.Info("id verification approval started")

	admin, err := s.reviewer(ctx, adminID)
	if err != nil {
		s.fail(span, log, "id verification approval failed", err)
		return err
	}

	now := s.now()
	_, err = s.idVerificationRepository.Update(ctx, userID, func(v *domain.IDVerification) error {
		v.Approve(admin, now)
		return nil
	})
	if err != nil {
		err = s.mapNotFound(err)
		s.fail(span, log, "id verification approval failed", err)
		return err
	}

	log.Info("id verification approved")

	s.notify(ctx, log, userID, domain.IDVerificationApprovedNotification(userID))
	return nil
}

func (s *idVerificationService) Reject(ctx context.Context, adminID uuid.UUID, userID uuid.UUID, reason string) error {
	ctx, span, log := s.start(ctx, "IDVerification.Reject", userID)
	defer span.End()

	log = log.With(zap.String("admin_id", adminID.String()))
	log.Info("id verification rejection started")

	reason = strings.TrimSpace(reason)
	if reason == "" {
		err := domain.NewValidationError("reason", "The reason field is required.")
		s.fail(span, log, "id verification rejection failed", err)
		return err
	}

	admin, err := s.reviewer(ctx, adminID)
	if err != nil {
		s.fail(span, log, "id verification rejection failed", err)
		return err
	}

	now := s.now()
	_, err = s.idVerificationRepository.Update(ctx, userID, func(v *domain.IDVerification) error {
		return v.Reject(admin, reason, now)
	})
	if err != nil {
		err = s.mapNotFound(err)
		s.fail(span, log, "id verification rejection failed", err)
		return err
	}

	log.Info("id verification rejected", zap.String("reason", reason))

	s.notify(ctx, log, userID, domain.IDVerificationRejectedNotification(reason))
	return nil
}

func (s *idVerificationService) reviewer(ctx context.Context, adminID uuid.UUID) (domain.Reviewer, error) {
	admin, err := s.userRepository.GetOneByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reviewer{}, ErrReviewerNotFound
		}
		return domain.Reviewer{}, err
	}
	return admin.Reviewer(), nil
}

// notify dispatches after the state change has committed. Failures are logged and swallowed.
func (s *idVerificationService) notify(ctx context.Context, log *zap.Logger, userID uuid.UUID, payload domain.NotificationPayload) {
	if s.dispatcher == nil {
		return
	}

	if err := s.dispatcher.Dispatch(ctx, userID, payload); err != nil {
		log.Error("failed to send id verification notification",
			zap.String("user_id", userID.String()),
			zap.String("notification_type", string(payload.Type)),
			zap.Error(fmt.Errorf("%w: %w", ErrNotificationDelivery, err)),
		)
		return
	}

	log.Debug("id verification notification dispatched", zap.String("notification_type", string(payload.Type)))
}

func (s *idVerificationService) validateImage(field string, file *UploadFile) (string, error) {
	if file == nil || file.Content == nil {
		return "", domain.NewValidationError(field, fmt.Sprintf("The %s field is required.", field))
	}

	if s.config.MaxUploadSize > 0 && file.Size > s.config.MaxUploadSize {
		return "", domain.NewValidationError(field,
			fmt.Sprintf("The %s must not be greater than %d kilobytes.", field, s.config.MaxUploadSize/1024))
	}

	mtype, err := mimetype.DetectReader(file.Content)
	if err != nil {
		return "", domain.NewValidationError(field, fmt.Sprintf("The %s could not be read.", field))
	}
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", field, err)
	}

	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", domain.NewValidationError(field, fmt.Sprintf("The %s must be an image.", field))
	}

	return mtype.Extension(), nil
}

func (s *idVerificationService) lock(ctx context.Context, log *zap.Logger, userID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	release, err := s.locker.Acquire(ctx, "idv:upload:"+userID.String(), s.config.LockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockNotAcquired) {
			return nil, ErrUploadInProgress
		}
		// the row lock in the transaction still protects the record
		log.Warn("upload lock unavailable, continuing without it", zap.Error(err))
		return func() {}, nil
	}

	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Warn("release upload lock failed", zap.Error(err))
		}
	}, nil
}

func (s *idVerificationService) store(ctx context.Context, log *zap.Logger, userID uuid.UUID, side string, ext string, file *UploadFile) (string, error) {
	key := fmt.Sprintf("id-verification/%s/%s-%s%s", userID, side, s.otpGenerator.RandomSecret(objectKeyRandomLength), ext)

	url, err := s.storage.Put(ctx, blob.Object{
		Key:  key,
		Size: file.Size,
		Body: file.Content,
	})
	if err != nil {
		log.Error("id image storage failed",
			zap.String("side", side),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", ErrUploadFailed
	}

	return url, nil
}

// discard removes blobs that never made it into a committed record.
func (s *idVerificationService) discard(log *zap.Logger, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.storage.Delete(ctx, url); err != nil {
			log.Warn("delete orphaned id image failed", zap.String("url", url), zap.Error(err))
		}
		cancel()
	}
}

func (s *idVerificationService) mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *idVerificationService) start(ctx context.Context, name string, userID uuid.UUID) (context.Context, trace.Span, *zap.Logger) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", userID.String())))
	log := logger.Logger().With(zap.String("op", name), zap.String("user_id", userID.String()))
	return ctx, span, log
}

// fail logs expected rejections at warn level and everything else at error level.
func (s *idVerificationService) fail(span trace.Span, log *zap.Logger, msg string, err error) {
	var (
		guardErr      *domain.GuardError
		validationErr *domain.ValidationError
	)
	switch {
	case errors.As(err, &guardErr), errors.As(err, &validationErr), errors.Is(err, ErrUploadInProgress):
		log.Warn(msg, zap.Error(err))
	default:
		log.Error(msg, zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
