package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"autoshop/api/internal/config"
	"autoshop/api/internal/ids"
	"autoshop/api/internal/mail"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/security"
)

var ErrWeakPassword = errors.New("password does not meet the strength policy")

type ResetService struct {
	users  UserStore
	resets ResetStore
	mailer mail.Mailer
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewResetService(users UserStore, resets ResetStore, mailer mail.Mailer, cfg *config.AppConfig, log zerolog.Logger) *ResetService {
	return &ResetService{
		users:  users,
		resets: resets,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

// RequestReset starts the reset flow. It returns nil whether or not the
// email belongs to an account; the caller's response must not reveal which.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		return err
	}
	if !user.IsActive {
		s.log.Debug().Str("user_id", user.ID).Msg("reset requested for inactive account")
		return nil
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	reset := models.PasswordReset{
		ID:        ids.NewReset(),
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.Security.ResetTokenTTL),
		Used:      false,
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s",
		strings.TrimSuffix(s.cfg.Security.FrontendURL, "/"), token)

	// Delivery is best-effort: a mail outage must not fail the request or
	// leak through the response.
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
	} else {
		s.log.Info().Str("user_id", user.ID).Msg("reset email sent")
	}

	return nil
}

// VerifyToken reports whether a reset token is still usable. Unknown,
// expired, and already-used tokens are indistinguishable to the caller.
func (s *ResetService) VerifyToken(ctx context.Context, token string) error {
	reset, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if time.Now().After(reset.ExpiresAt) {
		return repository.ErrResetNotFound
	}
	if reset.Used {
		return repository.ErrResetNotFound
	}
	return nil
}

// ResetPassword validates the new password and the token, then performs
// the password update and token consumption as one atomic store operation.
func (s *ResetService) ResetPassword(ctx context.Context, token string, password string) error {
	if err := security.ValidatePasswordStrength(password); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err)
	}

	reset, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if time.Now().After(reset.ExpiresAt) || reset.Used {
		return repository.ErrResetNotFound
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.resets.ConsumeAndSetPassword(ctx, token, reset.Email, hash); err != nil {
		return err
	}

	s.log.Info().Str("email", reset.Email).Msg("password reset completed")

	// Opportunistic cleanup of this email's dead tokens.
	if err := s.resets.DeleteExpiredForEmail(ctx, reset.Email); err != nil {
		s.log.Warn().Err(err).Str("email", reset.Email).Msg("expired reset token cleanup failed")
	}

	return nil
}
