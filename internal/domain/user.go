package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleEmployer  UserRole = "employer"
	RoleGigWorker UserRole = "gig_worker"
	RoleAdmin     UserRole = "admin"
)

// IsSelfService reports whether the role can be chosen during onboarding.
func (r UserRole) IsSelfService() bool {
	return r == RoleEmployer || r == RoleGigWorker
}

type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Phone        sql.NullString `db:"phone" json:"-"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         UserRole       `db:"role" json:"role"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	Verification *IDVerification `db:"-" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Reviewer() Reviewer {
	return Reviewer{ID: u.ID, Name: u.Name}
}
