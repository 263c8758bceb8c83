package service

import (
	"context"

	"autoshop/api/internal/models"
)

// Store interfaces are declared here, on the consumer side, and satisfied
// by the pgx repositories. Tests substitute in-memory fakes.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
	DeleteAccount(ctx context.Context, id string, email string) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type ResetStore interface {
	Create(ctx context.Context, reset models.PasswordReset) error
	GetByToken(ctx context.Context, token string) (models.PasswordReset, error)
	ConsumeAndSetPassword(ctx context.Context, token string, email string, passwordHash []byte) error
	DeleteExpiredForEmail(ctx context.Context, email string) error
}
