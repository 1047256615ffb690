package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gigmarket/backend/internal/db"
	"github.com/gigmarket/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, phone, password_hash, role,
	id_verification_status, id_front_image, id_back_image, id_verified_at, id_verification_notes,
	created_at, updated_at, deleted_at`

type userRow struct {
	domain.User
	domain.IDVerificationSnapshot
}

func (r userRow) toDomain() domain.User {
	user := r.User
	user.Verification = domain.RestoreIDVerification(r.IDVerificationSnapshot)
	return user
}

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "repository.user.Create"

	const query = `
	INSERT INTO users
	(id, name, email, phone, password_hash, role,
	 id_verification_status, id_front_image, id_back_image, id_verified_at, id_verification_notes,
	 created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if user.Verification == nil {
		user.Verification = domain.NewIDVerification()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	verification := user.Verification.Snapshot()

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		verification.Status,
		verification.FrontImage,
		verification.BackImage,
		verification.VerifiedAt,
		verification.Notes,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user failed: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected failed: %w", op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "repository.user.GetOneByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`

	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by id failed: %w", op, err)
	}

	user := row.toDomain()
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "repository.user.GetByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND deleted_at IS NULL`

	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by email failed: %w", op, err)
	}

	user := row.toDomain()
	return &user, nil
}

// ListByVerificationStatus returns users in the given state, oldest update first, plus the total.
func (r *userRepository) ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.User, int64, error) {
	const op = "repository.user.ListByVerificationStatus"

	where := `deleted_at IS NULL AND id_verification_status = ?`
	args := []interface{}{status}
	if status == domain.VerificationStatusUnset {
		where = `deleted_at IS NULL AND id_verification_status IS NULL`
		args = nil
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE `+where), args...); err != nil {
		return nil, 0, fmt.Errorf("%s: count users failed: %w", op, err)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` ORDER BY updated_at ASC, id ASC LIMIT ? OFFSET ?`

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("%s: select users failed: %w", op, err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}

	return users, total, nil
}
