package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// OwnerID is the portfolio lookup key for this account. The seed accounts use
// their email address as the owner identity.
func (u *User) OwnerID() string {
	return u.Email
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Save(ctx context.Context, u *User) error
}
