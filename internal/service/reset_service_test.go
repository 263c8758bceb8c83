package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/security"
)

func TestRequestResetIndistinguishableForUnknownEmail(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	mailer := &fakeMailer{}
	svc := NewResetService(users, resets, mailer, testConfig(), zerolog.Nop())

	errKnown := svc.RequestReset(context.Background(), "owner@dadjauto.shop")
	errUnknown := svc.RequestReset(context.Background(), "nobody@dadjauto.shop")

	assert.NoError(t, errKnown)
	assert.NoError(t, errUnknown)
	assert.Equal(t, []string{"owner@dadjauto.shop"}, mailer.sentTo())
}

func TestRequestResetSkipsInactiveAccount(t *testing.T) {
	user := testUser(t, "Str0ngPass")
	user.IsActive = false
	users := newFakeUserStore(user)
	resets := newFakeResetStore(users)
	mailer := &fakeMailer{}
	svc := NewResetService(users, resets, mailer, testConfig(), zerolog.Nop())

	require.NoError(t, svc.RequestReset(context.Background(), "owner@dadjauto.shop"))
	assert.Empty(t, mailer.sentTo())
}

func TestRequestResetSurvivesMailFailure(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	mailer := &fakeMailer{err: assert.AnError}
	svc := NewResetService(users, resets, mailer, testConfig(), zerolog.Nop())

	assert.NoError(t, svc.RequestReset(context.Background(), "owner@dadjauto.shop"))
}

func seedReset(t *testing.T, resets *fakeResetStore, email string, expiresAt time.Time, used bool) string {
	t.Helper()
	token, err := security.GenerateResetToken()
	require.NoError(t, err)
	require.NoError(t, resets.Create(context.Background(), models.PasswordReset{
		ID:        "rst-test",
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		Used:      used,
	}))
	return token
}

func TestVerifyToken(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	svc := NewResetService(users, resets, &fakeMailer{}, testConfig(), zerolog.Nop())

	valid := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(time.Hour), false)
	expired := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(-time.Minute), false)
	used := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(time.Hour), true)

	assert.NoError(t, svc.VerifyToken(context.Background(), valid))
	assert.ErrorIs(t, svc.VerifyToken(context.Background(), expired), repository.ErrResetNotFound)
	assert.ErrorIs(t, svc.VerifyToken(context.Background(), used), repository.ErrResetNotFound)
	assert.ErrorIs(t, svc.VerifyToken(context.Background(), "no-such-token"), repository.ErrResetNotFound)
}

func TestResetPasswordConsumesTokenOnce(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	svc := NewResetService(users, resets, &fakeMailer{}, testConfig(), zerolog.Nop())

	token := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(time.Hour), false)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "N3wStrongPass"))

	user, err := users.FindByEmail(context.Background(), "owner@dadjauto.shop")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("N3wStrongPass", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	err = svc.ResetPassword(context.Background(), token, "An0therStrongPass")
	assert.ErrorIs(t, err, repository.ErrResetNotFound)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	svc := NewResetService(users, resets, &fakeMailer{}, testConfig(), zerolog.Nop())

	token := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(-time.Minute), false)

	err := svc.ResetPassword(context.Background(), token, "N3wStrongPass")
	assert.ErrorIs(t, err, repository.ErrResetNotFound)

	user, err := users.FindByEmail(context.Background(), "owner@dadjauto.shop")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("Str0ngPass", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResetPasswordRejectsWeakPassword(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	resets := newFakeResetStore(users)
	svc := NewResetService(users, resets, &fakeMailer{}, testConfig(), zerolog.Nop())

	token := seedReset(t, resets, "owner@dadjauto.shop", time.Now().Add(time.Hour), false)

	err := svc.ResetPassword(context.Background(), token, "weak")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// A rejected password must not consume the token.
	assert.NoError(t, svc.VerifyToken(context.Background(), token))
}
