package users

import (
	"context"
	"fmt"

	"github.com/iiTONELOC/web-app-auth-server/database"
)

// GormStore persists users in the SQLite database.
type GormStore struct {
	db *database.DB
}

// NewGormStore migrates the users table and returns the store.
func NewGormStore(db *database.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("users: migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *GormStore) findOne(ctx context.Context, query string, arg string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s *GormStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *GormStore) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).Where(query, arg).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) Insert(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if database.IsDuplicateError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) Replace(ctx context.Context, user *User) error {
	result := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", user.ID).
		Select("Username", "Email", "PasswordHash", "PasswordSalt", "UpdatedAt").
		Updates(user)
	if database.IsDuplicateError(result.Error) {
		return ErrDuplicate
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
