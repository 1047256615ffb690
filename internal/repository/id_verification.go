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

const idVerificationColumns = `id_verification_status, id_front_image, id_back_image, id_verified_at, id_verification_notes`

type idVerificationRepository struct {
	db *sqlx.DB
}

func newIDVerificationRepository(db *sqlx.DB) *idVerificationRepository {
	return &idVerificationRepository{
		db: db,
	}
}

func (r *idVerificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.IDVerification, error) {
	const op = "repository.idVerification.GetByUserID"

	query := `SELECT ` + idVerificationColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`

	var snapshot domain.IDVerificationSnapshot
	if err := r.db.GetContext(ctx, &snapshot, r.db.Rebind(query), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select id verification failed: %w", op, err)
	}

	return domain.RestoreIDVerification(snapshot), nil
}

// Update loads the user's record with a row lock, applies mutate and writes the result back
// in the same transaction. Errors from mutate are returned unwrapped and nothing is written.
func (r *idVerificationRepository) Update(ctx context.Context, userID uuid.UUID, mutate IDVerificationMutator) (*domain.IDVerification, error) {
	const op = "repository.idVerification.Update"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	selectQuery := `SELECT ` + idVerificationColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL` + db.ForUpdate(r.db)

	var snapshot domain.IDVerificationSnapshot
	if err := tx.GetContext(ctx, &snapshot, r.db.Rebind(selectQuery), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select id verification for update failed: %w", op, err)
	}

	verification := domain.RestoreIDVerification(snapshot)
	if err := mutate(verification); err != nil {
		return nil, err
	}

	if err := verification.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invariant violated: %w", op, err)
	}

	if err := r.updateWithTx(ctx, tx, userID, verification.Snapshot()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return verification, nil
}

func (r *idVerificationRepository) updateWithTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, next domain.IDVerificationSnapshot) error {
	const query = `
	UPDATE users
	SET id_verification_status = ?, id_front_image = ?, id_back_image = ?, id_verified_at = ?, id_verification_notes = ?, updated_at = ?
	WHERE id = ?
	`

	res, err := tx.ExecContext(ctx, r.db.Rebind(query),
		next.Status,
		next.FrontImage,
		next.BackImage,
		next.VerifiedAt,
		next.Notes,
		time.Now().UTC(),
		userID,
	)
	if err != nil {
		return fmt.Errorf("update id verification failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// RepairIncomplete resets pending records that are missing an image back to unset.
func (r *idVerificationRepository) RepairIncomplete(ctx context.Context) (int64, error) {
	const op = "repository.idVerification.RepairIncomplete"

	const query = `
	UPDATE users
	SET id_verification_status = NULL, updated_at = ?
	WHERE id_verification_status = ?
	  AND (id_front_image IS NULL OR id_front_image = '' OR id_back_image IS NULL OR id_back_image = '')
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), time.Now().UTC(), domain.VerificationStatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: update incomplete records failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
