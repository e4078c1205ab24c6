package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	smodel "minerops/pkg/store/mysql/model"
)

type userStore interface {
	Create(ctx context.Context, user *smodel.User) error
	Get(ctx context.Context, id int64) (*smodel.User, error)
	GetByUsername(ctx context.Context, username string) (*smodel.User, error)
	List(ctx context.Context, limit, offset int) ([]smodel.User, error)
	UpdateFields(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// UserService handles operator accounts.
type UserService struct {
	users userStore
}

// NewUserService creates the user service.
func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

// Register creates a new account. The password is stored as a bcrypt
// hash, never in clear.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*smodel.User, error) {
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username already taken: %s", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &smodel.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account, nil when
// the username is unknown, the account is disabled or the password does
// not match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*smodel.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// Get returns one account by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*smodel.User, error) {
	return s.users.Get(ctx, id)
}

// List returns accounts page by page.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]smodel.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.users.List(ctx, limit, offset)
}

// Deactivate disables an account without deleting its history.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	return s.users.UpdateFields(ctx, id, map[string]interface{}{"is_active": false})
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
