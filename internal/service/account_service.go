package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"autoshop/api/internal/models"
	"autoshop/api/internal/security"
)

var ErrConfirmationMismatch = errors.New("confirmation word does not match")

type AccountService struct {
	users    UserStore
	sessions SessionStore
	log      zerolog.Logger
}

func NewAccountService(users UserStore, sessions SessionStore, log zerolog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

type ProfileUpdateInput struct {
	Name      string
	Email     string
	AvatarURL *string
	Address   models.Address
}

// UpdateProfile applies a profile edit for the caller's own account and
// returns the updated record. An email change that collides with another
// account surfaces repository.ErrDuplicateEmail.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(strings.ToLower(input.Email)); email != "" {
		user.Email = email
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	user.Address = input.Address

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

// ExportProfile is the user-facing view of an account in an export bundle.
// The password hash never leaves the store.
type ExportProfile struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	AvatarURL *string        `json:"avatarUrl,omitempty"`
	Address   models.Address `json:"address"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ExportSession struct {
	ID           string    `json:"id"`
	Device       string    `json:"device"`
	Browser      string    `json:"browser"`
	IPAddress    string    `json:"ipAddress"`
	Location     string    `json:"location,omitempty"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ExportBundle struct {
	Profile  ExportProfile   `json:"profile"`
	Sessions []ExportSession `json:"sessions"`
	Metadata ExportMetadata  `json:"metadata"`
}

type ExportMetadata struct {
	ExportedAt time.Time `json:"exportedAt"`
}

// Export assembles the caller's data bundle: profile, active sessions and
// an export timestamp.
func (s *AccountService) Export(ctx context.Context, userID string) (ExportBundle, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ExportBundle{}, err
	}

	sessions, err := s.sessions.ListActiveByUser(ctx, userID)
	if err != nil {
		return ExportBundle{}, err
	}

	entries := make([]ExportSession, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, ExportSession{
			ID:           session.ID,
			Device:       session.Device,
			Browser:      session.Browser,
			IPAddress:    session.IPAddress,
			Location:     session.Location,
			LastActiveAt: session.LastActiveAt,
			CreatedAt:    session.CreatedAt,
		})
	}

	return ExportBundle{
		Profile: ExportProfile{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      string(user.Role),
			AvatarURL: user.AvatarURL,
			Address:   user.Address,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		Sessions: entries,
		Metadata: ExportMetadata{ExportedAt: time.Now().UTC()},
	}, nil
}

type DeleteAccountInput struct {
	Password         string
	ConfirmationWord string
	ProvidedWord     string
}

// DeleteAccount permanently removes the caller's account along with its
// sessions and reset tokens. The password is checked first, then the typed
// confirmation word; only an exact match proceeds.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string, input DeleteAccountInput) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		s.log.Warn().Str("user_id", user.ID).Msg("account deletion rejected, password mismatch")
		return ErrInvalidCredentials
	}

	if input.ProvidedWord != input.ConfirmationWord || strings.TrimSpace(input.ConfirmationWord) == "" {
		return ErrConfirmationMismatch
	}

	if err := s.users.DeleteAccount(ctx, user.ID, user.Email); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("account deleted")
	return nil
}
