package service

import (
	"context"
	"sync"
	"testing"
	"time"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return entity.ErrEmailExists
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) Log(_ context.Context, action, _, _, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *recordingAudit) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	audit := &recordingAudit{}
	svc := NewAuthService(users, audit, "test-secret", time.Hour)

	req := &RegisterRequest{
		Email:     "alice@example.com",
		Password:  "correct horse battery",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	user, token, err := svc.Register(context.Background(), req, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleClient, user.Role)
	assert.Empty(t, user.Password, "credential must never leave the service")

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(context.Background(), req, "127.0.0.1")
		assert.ErrorIs(t, err, entity.ErrEmailExists)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		got, token, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "correct horse battery",
		}, "127.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.Password)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}, "127.0.0.1")
		assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		}, "127.0.0.1")
		assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	})

	assert.Contains(t, audit.recorded(), "USER_REGISTERED")
	assert.Contains(t, audit.recorded(), "LOGIN_SUCCESS")
	assert.Contains(t, audit.recorded(), "LOGIN_FAILED")
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), &recordingAudit{}, "test-secret", time.Hour)

	_, _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:     "mallory@example.com",
		Password:  "password123",
		FirstName: "Mallory",
		LastName:  "Jones",
		Role:      "ADMIN",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestParseToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, &recordingAudit{}, "test-secret", time.Hour)

	user, token, err := svc.Register(context.Background(), &RegisterRequest{
		Email:     "bob@example.com",
		Password:  "password123",
		FirstName: "Bob",
		LastName:  "Brown",
		Role:      "ORGANIZER",
	}, "127.0.0.1")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		principal, err := svc.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.ID)
		assert.Equal(t, entity.RoleOrganizer, principal.Role)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ParseToken("not-a-token")
		assert.ErrorIs(t, err, entity.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(users, &recordingAudit{}, "other-secret", time.Hour)
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, entity.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService(users, &recordingAudit{}, "test-secret", -time.Hour)
		_, token, err := expired.Login(context.Background(), &LoginRequest{
			Email:    "bob@example.com",
			Password: "password123",
		}, "127.0.0.1")
		require.NoError(t, err)

		_, err = expired.ParseToken(token)
		assert.ErrorIs(t, err, entity.ErrUnauthorized)
	})
}
