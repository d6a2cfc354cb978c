// Package posts implements article publishing and management.
package posts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/database"
)

// Store is the persistence interface for posts.
type Store interface {
	Create(ctx context.Context, post *blog.Post) error
	GetByID(ctx context.Context, id int64) (*blog.Post, error)
	List(ctx context.Context, params blog.ListParams) ([]blog.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, params blog.ListParams) ([]blog.Post, int64, error)
	Update(ctx context.Context, post *blog.Post) error
	Delete(ctx context.Context, id int64) error

	// AuthorID returns the author of a post without loading the full row.
	// The second return is false when the post does not exist.
	AuthorID(ctx context.Context, id int64) (int64, bool, error)
}

// GormStore implements Store on a PostgreSQL database.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, post *blog.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return database.TranslateError(err, "post")
	}
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (*blog.Post, error) {
	var post blog.Post
	err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		return nil, database.TranslateError(err, "post")
	}
	return &post, nil
}

func (s *GormStore) List(ctx context.Context, params blog.ListParams) ([]blog.Post, int64, error) {
	return s.list(ctx, s.db.WithContext(ctx).Model(&blog.Post{}), params)
}

func (s *GormStore) ListByAuthor(ctx context.Context, authorID int64, params blog.ListParams) ([]blog.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&blog.Post{}).Where("author_id = ?", authorID)
	return s.list(ctx, query, params)
}

func (s *GormStore) list(_ context.Context, query *gorm.DB, params blog.ListParams) ([]blog.Post, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "post")
	}

	var list []blog.Post
	err := query.
		Preload("Author").
		Order("id DESC").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, database.TranslateError(err, "post")
	}
	return list, total, nil
}

func (s *GormStore) Update(ctx context.Context, post *blog.Post) error {
	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return database.TranslateError(err, "post")
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&blog.Post{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error, "post")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "post")
	}
	return nil
}

func (s *GormStore) AuthorID(ctx context.Context, id int64) (int64, bool, error) {
	var authorID int64
	err := s.db.WithContext(ctx).
		Model(&blog.Post{}).
		Select("author_id").
		Where("id = ?", id).
		Take(&authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, database.TranslateError(err, "post")
	}
	return authorID, true, nil
}
