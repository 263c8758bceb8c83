package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoshop/api/internal/models"
)

var ErrResetNotFound = errors.New("reset token not found")

type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset models.PasswordReset) error {
	const query = `
		INSERT INTO password_resets (id, email, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		reset.ID,
		reset.Email,
		reset.Token,
		reset.ExpiresAt,
		reset.Used,
	)
	return err
}

func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (models.PasswordReset, error) {
	const query = `
		SELECT id, email, token, expires_at, used, created_at
		FROM password_resets WHERE token = $1
	`

	row := r.pool.QueryRow(ctx, query, token)
	var reset models.PasswordReset
	if err := row.Scan(
		&reset.ID,
		&reset.Email,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.Used,
		&reset.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PasswordReset{}, ErrResetNotFound
		}
		return models.PasswordReset{}, err
	}
	return reset, nil
}

// ConsumeAndSetPassword performs the one multi-write unit in the system:
// the password update and the token consumption commit together or not at
// all. The token row is guarded in SQL (unused, unexpired) so a concurrent
// consumer of the same token loses the race and gets ErrResetNotFound.
func (r *PasswordResetRepository) ConsumeAndSetPassword(ctx context.Context, token string, email string, passwordHash []byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE password_resets
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > NOW()
	`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrResetNotFound
	}

	cmd, err = tx.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE email = $1
	`, email, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return tx.Commit(ctx)
}

// DeleteExpiredForEmail is the opportunistic cleanup after a successful
// reset; failures are for the caller to log, not to surface.
func (r *PasswordResetRepository) DeleteExpiredForEmail(ctx context.Context, email string) error {
	const query = `DELETE FROM password_resets WHERE email = $1 AND expires_at <= NOW()`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}

// DeleteExpiredOrUsed sweeps dead tokens; returns the number removed.
func (r *PasswordResetRepository) DeleteExpiredOrUsed(ctx context.Context) (int64, error) {
	const query = `DELETE FROM password_resets WHERE expires_at <= NOW() OR used`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
