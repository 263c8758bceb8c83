package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"autoshop/api/internal/config"
	"autoshop/api/internal/ids"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/security"
	"autoshop/api/internal/useragent"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCurrentSession     = errors.New("cannot terminate the current session")
	ErrSessionForbidden   = errors.New("session belongs to another user")
)

type AuthService struct {
	users    UserStore
	sessions SessionStore
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Token     string
	SessionID string
	User      models.User
}

// Login authenticates and opens a session. The unknown-email and
// wrong-password branches return the same error so the response cannot be
// used to probe for accounts, but each is logged with its real reason.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Warn().Str("email", email).Str("reason", "unknown_email").Msg("login rejected")
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !user.IsActive {
		s.log.Warn().Str("user_id", user.ID).Str("reason", "inactive_account").Msg("login rejected")
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		s.log.Warn().Str("user_id", user.ID).Str("reason", "password_mismatch").Msg("login rejected")
		return LoginResult{}, ErrInvalidCredentials
	}

	agent := useragent.Parse(input.UserAgent)
	session := models.Session{
		ID:        ids.NewSession(),
		UserID:    user.ID,
		Device:    agent.Device,
		Browser:   agent.Browser,
		IPAddress: input.IPAddress,
		ExpiresAt: time.Now().Add(s.cfg.Security.JWTTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, err
	}

	token, err := security.GenerateAccessToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		session.ID,
		string(user.Role),
		s.cfg.Security.JWTTTL,
	)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("login succeeded")

	return LoginResult{
		Token:     token,
		SessionID: session.ID,
		User:      user,
	}, nil
}

// Logout invalidates the session a token names. Callers treat a failure as
// non-fatal; the client-side logout proceeds regardless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteByID(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// SessionEntry is one row of the session list; Current marks the session
// behind the caller's own token. The token itself is never included.
type SessionEntry struct {
	Session models.Session
	Current bool
}

func (s *AuthService) ListSessions(ctx context.Context, userID string, currentSessionID string) ([]SessionEntry, error) {
	sessions, err := s.sessions.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The store query already filters and orders; re-applied here so the
	// guarantee holds regardless of the backing store.
	now := time.Now()
	entries := make([]SessionEntry, 0, len(sessions))
	for _, session := range sessions {
		if !session.ExpiresAt.After(now) {
			continue
		}
		entries = append(entries, SessionEntry{
			Session: session,
			Current: session.ID == currentSessionID,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Session.LastActiveAt.After(entries[j].Session.LastActiveAt)
	})
	return entries, nil
}

// TerminateSession removes one of the caller's other sessions. Targeting
// the current session is rejected before any ownership check; logout is
// the only way to end it.
func (s *AuthService) TerminateSession(ctx context.Context, userID string, sessionID string, currentSessionID string) error {
	if sessionID == currentSessionID {
		return ErrCurrentSession
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.UserID != userID {
		return ErrSessionForbidden
	}

	return s.sessions.DeleteByID(ctx, sessionID)
}
