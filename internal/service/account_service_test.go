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
)

func TestUpdateProfileAppliesFields(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAccountService(users, newFakeSessionStore(), zerolog.Nop())

	avatar := "https://cdn.dadjauto.shop/avatars/usr-test.png"
	updated, err := svc.UpdateProfile(context.Background(), "usr-test", ProfileUpdateInput{
		Name:      "New Owner",
		Email:     "New.Owner@dadjauto.shop",
		AvatarURL: &avatar,
		Address:   models.Address{City: "Davao", Country: "PH"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Owner", updated.Name)
	assert.Equal(t, "new.owner@dadjauto.shop", updated.Email)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, avatar, *updated.AvatarURL)
	assert.Equal(t, "Davao", updated.Address.City)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	other := testUser(t, "Str0ngPass")
	other.ID = "usr-other"
	other.Email = "taken@dadjauto.shop"
	users := newFakeUserStore(testUser(t, "Str0ngPass"), other)
	svc := NewAccountService(users, newFakeSessionStore(), zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), "usr-test", ProfileUpdateInput{
		Email: "taken@dadjauto.shop",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestExportBundleOmitsSecrets(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	sessions := newFakeSessionStore(models.Session{
		ID:        "sess-a",
		UserID:    "usr-test",
		Device:    "macOS",
		Browser:   "Safari",
		IPAddress: "203.0.113.9",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	svc := NewAccountService(users, sessions, zerolog.Nop())

	bundle, err := svc.Export(context.Background(), "usr-test")
	require.NoError(t, err)
	assert.Equal(t, "usr-test", bundle.Profile.ID)
	assert.Equal(t, "owner@dadjauto.shop", bundle.Profile.Email)
	require.Len(t, bundle.Sessions, 1)
	assert.Equal(t, "sess-a", bundle.Sessions[0].ID)
	assert.False(t, bundle.Metadata.ExportedAt.IsZero())
}

func TestDeleteAccountWrongPassword(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAccountService(users, newFakeSessionStore(), zerolog.Nop())

	err := svc.DeleteAccount(context.Background(), "usr-test", DeleteAccountInput{
		Password:         "wrong",
		ConfirmationWord: "DELETE",
		ProvidedWord:     "DELETE",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.GetByID(context.Background(), "usr-test")
	assert.NoError(t, err)
}

func TestDeleteAccountConfirmationMismatch(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAccountService(users, newFakeSessionStore(), zerolog.Nop())

	err := svc.DeleteAccount(context.Background(), "usr-test", DeleteAccountInput{
		Password:         "Str0ngPass",
		ConfirmationWord: "DELETE",
		ProvidedWord:     "delete",
	})
	assert.ErrorIs(t, err, ErrConfirmationMismatch)
}

func TestDeleteAccountRemovesUser(t *testing.T) {
	users := newFakeUserStore(testUser(t, "Str0ngPass"))
	svc := NewAccountService(users, newFakeSessionStore(), zerolog.Nop())

	err := svc.DeleteAccount(context.Background(), "usr-test", DeleteAccountInput{
		Password:         "Str0ngPass",
		ConfirmationWord: "DELETE",
		ProvidedWord:     "DELETE",
	})
	require.NoError(t, err)

	_, err = users.GetByID(context.Background(), "usr-test")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
