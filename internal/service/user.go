package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/repository"
	"github.com/gigmarket/backend/pkg/auth"
	"github.com/gigmarket/backend/pkg/hash"

	"github.com/google/uuid"
)

type userService struct {
	userRepository repository.Users
	hasher         hash.PasswordHasher
	tokenManager   auth.TokenManager
}

func newUserService(userRepository repository.Users,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *userService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenManager:   tokenManager,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.UserRole
}

type Tokens struct {
	AccessToken string
	AccessTTL   time.Duration
}

// Viewer is whoever is looking at a profile.
type Viewer struct {
	ID   uuid.UUID
	Role domain.UserRole
}

type Profile struct {
	User         *domain.User
	Verification domain.IDVerificationView
}

// Register creates an account. Every account starts with an unset ID verification.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if !input.Role.IsSelfService() {
		return nil, ErrRoleNotAllowed
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:    userID,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Phone: sql.NullString{
			String: input.Phone,
			Valid:  input.Phone != "",
		},
		PasswordHash: passwordHash,
		Role:         input.Role,
		Verification: domain.NewIDVerification(),
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email string, password string) (*Tokens, error) {
	user, err := s.userRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password failed: %w", err)
	}

	var res Tokens
	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &res, nil
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetProfile shows the verification status to everyone. Images and review notes
// are only shown to the owner and administrators.
func (s *userService) GetProfile(ctx context.Context, viewer Viewer, userID uuid.UUID) (*Profile, error) {
	user, err := s.GetOneByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	full := viewer.ID == user.ID || viewer.Role == domain.RoleAdmin

	return &Profile{
		User:         user,
		Verification: user.Verification.View(full),
	}, nil
}
