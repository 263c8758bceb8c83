package service

import (
	"context"
	"sync"

	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
)

// In-memory stores used across the service tests. They implement the same
// contracts the pgx repositories do, including sentinel errors.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, other := range s.users {
		if id != user.ID && other.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) DeleteAccount(_ context.Context, id string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) setPassword(email string, hash []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == email {
			u.PasswordHash = hash
			s.users[id] = u
		}
	}
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newFakeSessionStore(sessions ...models.Session) *fakeSessionStore {
	s := &fakeSessionStore{sessions: make(map[string]models.Session)}
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
	}
	return s
}

func (s *fakeSessionStore) Create(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) GetByID(_ context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fakeSessionStore) ListActiveByUser(_ context.Context, userID string) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

type fakeResetStore struct {
	mu     sync.Mutex
	resets map[string]models.PasswordReset
	users  *fakeUserStore
}

func newFakeResetStore(users *fakeUserStore) *fakeResetStore {
	return &fakeResetStore{
		resets: make(map[string]models.PasswordReset),
		users:  users,
	}
}

func (s *fakeResetStore) Create(_ context.Context, reset models.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[reset.Token] = reset
	return nil
}

func (s *fakeResetStore) GetByToken(_ context.Context, token string) (models.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reset, ok := s.resets[token]
	if !ok {
		return models.PasswordReset{}, repository.ErrResetNotFound
	}
	return reset, nil
}

func (s *fakeResetStore) ConsumeAndSetPassword(_ context.Context, token string, email string, passwordHash []byte) error {
	s.mu.Lock()
	reset, ok := s.resets[token]
	if !ok || reset.Used {
		s.mu.Unlock()
		return repository.ErrResetNotFound
	}
	reset.Used = true
	s.resets[token] = reset
	s.mu.Unlock()

	s.users.setPassword(email, passwordHash)
	return nil
}

func (s *fakeResetStore) DeleteExpiredForEmail(_ context.Context, _ string) error {
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) SendPasswordReset(to string, _ string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}
