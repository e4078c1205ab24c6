package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// UserRepository handles user persistence in MySQL
type UserRepository struct {
	ds *Datastore
}

// NewUserRepository creates a new user repository
func NewUserRepository(ds *Datastore) *UserRepository {
	return &UserRepository{ds: ds}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.ds.DB(ctx).Create(user).Error
}

// Get retrieves a user by ID, nil when not found
func (r *UserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.ds.DB(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username, nil when not found
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.ds.DB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// List retrieves users ordered by creation time
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.ds.DB(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateFields updates specific fields of a user
func (r *UserRepository) UpdateFields(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}
