// Package users implements account registration, login, and user management.
package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/database"
)

// Store is the persistence interface for users.
type Store interface {
	Create(ctx context.Context, user *blog.User) error
	GetByID(ctx context.Context, id int64) (*blog.User, error)
	GetByEmail(ctx context.Context, email string) (*blog.User, error)
	List(ctx context.Context, params blog.ListParams) ([]blog.User, int64, error)
	Update(ctx context.Context, user *blog.User) error
	Delete(ctx context.Context, id int64) error
}

// GormStore implements Store on a PostgreSQL database.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, user *blog.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return database.TranslateError(err, "user")
	}
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (*blog.User, error) {
	var user blog.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, database.TranslateError(err, "user")
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user has the given email so callers
// can distinguish absence from infrastructure failure.
func (s *GormStore) GetByEmail(ctx context.Context, email string) (*blog.User, error) {
	var user blog.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "user")
	}
	return &user, nil
}

func (s *GormStore) List(ctx context.Context, params blog.ListParams) ([]blog.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&blog.User{}).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "user")
	}

	var list []blog.User
	err := s.db.WithContext(ctx).
		Order("id").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, database.TranslateError(err, "user")
	}
	return list, total, nil
}

func (s *GormStore) Update(ctx context.Context, user *blog.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return database.TranslateError(err, "user")
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&blog.User{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "user")
	}
	return nil
}
