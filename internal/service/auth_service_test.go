package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/api/internal/config"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/security"
)

var testParams = security.Argon2Params{
	Time:    1,
	Memory:  8 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret:     "test-secret",
			JWTTTL:        time.Hour,
			ResetTokenTTL: time.Hour,
			FrontendURL:   "http://localhost:5173",
		},
	}
}

func testUser(t *testing.T, password string) models.User {
	t.Helper()
	hash, err := security.HashPasswordWithParams(password, testParams)
	require.NoError(t, err)
	return models.User{
		ID:           "usr-test",
		Email:        "owner@dadjauto.shop",
		PasswordHash: hash,
		Name:         "Shop Owner",
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	user := testUser(t, "Str0ngPass")
	users := newFakeUserStore(user)
	sessions := newFakeSessionStore()
	cfg := testConfig()
	svc := NewAuthService(users, sessions, cfg, zerolog.Nop())

	result, err := svc.Login(context.Background(), LoginInput{
		Email:     "Owner@dadjauto.shop",
		Password:  "Str0ngPass",
		IPAddress: "203.0.113.9",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := security.ParseAccessToken(result.Token, cfg.Security.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, result.SessionID, claims.SessionID)
	assert.Equal(t, "admin", claims.Role)

	stored, err := sessions.GetByID(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, "Windows 10", stored.Device)
	assert.Equal(t, "Chrome", stored.Browser)
	assert.Equal(t, "203.0.113.9", stored.IPAddress)
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAuthService(users, newFakeSessionStore(), testConfig(), zerolog.Nop())

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "owner@dadjauto.shop",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, result.Token)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAuthService(users, newFakeSessionStore(), testConfig(), zerolog.Nop())

	_, errUnknown := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@dadjauto.shop",
		Password: "Str0ngPass",
	})
	_, errMismatch := svc.Login(context.Background(), LoginInput{
		Email:    "owner@dadjauto.shop",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errMismatch, errUnknown)
}

func TestLoginInactiveAccountRejected(t *testing.T) {
	user := testUser(t, "Str0ngPass")
	user.IsActive = false
	svc := NewAuthService(newFakeUserStore(user), newFakeSessionStore(), testConfig(), zerolog.Nop())

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "owner@dadjauto.shop",
		Password: "Str0ngPass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutUnknownSessionIsNoop(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newFakeSessionStore(), testConfig(), zerolog.Nop())
	assert.NoError(t, svc.Logout(context.Background(), "sess-gone"))
}

func TestListSessionsMarksCurrent(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	sessions := newFakeSessionStore(
		models.Session{ID: "sess-a", UserID: "usr-test", ExpiresAt: expiry},
		models.Session{ID: "sess-b", UserID: "usr-test", ExpiresAt: expiry},
		models.Session{ID: "sess-other", UserID: "usr-other", ExpiresAt: expiry},
	)
	svc := NewAuthService(newFakeUserStore(), sessions, testConfig(), zerolog.Nop())

	entries, err := svc.ListSessions(context.Background(), "usr-test", "sess-a")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	current := 0
	for _, e := range entries {
		assert.Equal(t, "usr-test", e.Session.UserID)
		if e.Current {
			current++
			assert.Equal(t, "sess-a", e.Session.ID)
		}
	}
	assert.Equal(t, 1, current)
}

func TestListSessionsFiltersExpiredAndOrdersByActivity(t *testing.T) {
	now := time.Now()
	sessions := newFakeSessionStore(
		models.Session{
			ID: "sess-stale", UserID: "usr-test",
			LastActiveAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour),
		},
		models.Session{
			ID: "sess-fresh", UserID: "usr-test",
			LastActiveAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour),
		},
		models.Session{
			ID: "sess-dead", UserID: "usr-test",
			LastActiveAt: now, ExpiresAt: now.Add(-time.Minute),
		},
	)
	svc := NewAuthService(newFakeUserStore(), sessions, testConfig(), zerolog.Nop())

	entries, err := svc.ListSessions(context.Background(), "usr-test", "sess-fresh")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "sess-fresh", entries[0].Session.ID)
	assert.Equal(t, "sess-stale", entries[1].Session.ID)
}

func TestTerminateCurrentSessionAlwaysFails(t *testing.T) {
	sessions := newFakeSessionStore(models.Session{ID: "sess-a", UserID: "usr-test"})
	svc := NewAuthService(newFakeUserStore(), sessions, testConfig(), zerolog.Nop())

	err := svc.TerminateSession(context.Background(), "usr-test", "sess-a", "sess-a")
	assert.ErrorIs(t, err, ErrCurrentSession)

	_, err = sessions.GetByID(context.Background(), "sess-a")
	assert.NoError(t, err)
}

func TestTerminateOtherUsersSessionForbidden(t *testing.T) {
	sessions := newFakeSessionStore(models.Session{ID: "sess-x", UserID: "usr-other"})
	svc := NewAuthService(newFakeUserStore(), sessions, testConfig(), zerolog.Nop())

	err := svc.TerminateSession(context.Background(), "usr-test", "sess-x", "sess-current")
	assert.ErrorIs(t, err, ErrSessionForbidden)
}

func TestTerminateUnknownSessionNotFound(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newFakeSessionStore(), testConfig(), zerolog.Nop())

	err := svc.TerminateSession(context.Background(), "usr-test", "sess-gone", "sess-current")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestTerminateOtherSessionSucceeds(t *testing.T) {
	sessions := newFakeSessionStore(
		models.Session{ID: "sess-a", UserID: "usr-test"},
		models.Session{ID: "sess-b", UserID: "usr-test"},
	)
	svc := NewAuthService(newFakeUserStore(), sessions, testConfig(), zerolog.Nop())

	require.NoError(t, svc.TerminateSession(context.Background(), "usr-test", "sess-b", "sess-a"))

	_, err := sessions.GetByID(context.Background(), "sess-b")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
