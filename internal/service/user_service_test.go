package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	smodel "minerops/pkg/store/mysql/model"
)

// memUserStore is an in-memory userStore.
type memUserStore struct {
	mu    sync.Mutex
	users map[int64]*smodel.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*smodel.User)}
}

func (m *memUserStore) Create(_ context.Context, user *smodel.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = int64(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}

func (m *memUserStore) Get(_ context.Context, id int64) (*smodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*smodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) List(_ context.Context, limit, offset int) ([]smodel.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []smodel.User
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

func (m *memUserStore) UpdateFields(_ context.Context, id int64, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	if active, found := updates["is_active"]; found {
		user.IsActive = active.(bool)
	}
	return nil
}

func (m *memUserStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newMemUserStore()
	s := NewUserService(store)

	user, err := s.Register(context.Background(), "miner1", "miner1@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "miner1", user.Username)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "hunter2hunter2", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("hunter2hunter2")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	s := NewUserService(newMemUserStore())

	_, err := s.Register(context.Background(), "miner1", "miner1@example.com", "short")
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	store := newMemUserStore()
	s := NewUserService(store)

	_, err := s.Register(context.Background(), "miner1", "a@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "miner1", "b@example.com", "hunter2hunter2")
	assert.Error(t, err)
}

func TestAuthenticateChecksCredentials(t *testing.T) {
	store := newMemUserStore()
	s := NewUserService(store)

	registered, err := s.Register(context.Background(), "miner1", "miner1@example.com", "hunter2hunter2")
	require.NoError(t, err)

	user, err := s.Authenticate(context.Background(), "miner1", "hunter2hunter2")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)

	wrong, err := s.Authenticate(context.Background(), "miner1", "wrong-password")
	require.NoError(t, err)
	assert.Nil(t, wrong)

	unknown, err := s.Authenticate(context.Background(), "ghost", "hunter2hunter2")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestAuthenticateRejectsDeactivatedAccount(t *testing.T) {
	store := newMemUserStore()
	s := NewUserService(store)

	user, err := s.Register(context.Background(), "miner1", "miner1@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, s.Deactivate(context.Background(), user.ID))

	got, err := s.Authenticate(context.Background(), "miner1", "hunter2hunter2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
