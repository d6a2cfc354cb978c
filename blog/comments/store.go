// Package comments implements replies attached to posts.
package comments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/database"
)

// Store is the persistence interface for comments.
type Store interface {
	Create(ctx context.Context, comment *blog.Comment) error
	GetByID(ctx context.Context, id int64) (*blog.Comment, error)
	List(ctx context.Context, params blog.ListParams) ([]blog.Comment, int64, error)
	ListByPost(ctx context.Context, postID int64, params blog.ListParams) ([]blog.Comment, int64, error)
	Update(ctx context.Context, comment *blog.Comment) error
	Delete(ctx context.Context, id int64) error

	// AuthorID returns the author of a comment without loading the full row.
	// The second return is false when the comment does not exist.
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

func (s *GormStore) Create(ctx context.Context, comment *blog.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return database.TranslateError(err, "comment")
	}
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (*blog.Comment, error) {
	var comment blog.Comment
	err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, database.TranslateError(err, "comment")
	}
	return &comment, nil
}

func (s *GormStore) List(ctx context.Context, params blog.ListParams) ([]blog.Comment, int64, error) {
	return s.list(s.db.WithContext(ctx).Model(&blog.Comment{}), params)
}

func (s *GormStore) ListByPost(ctx context.Context, postID int64, params blog.ListParams) ([]blog.Comment, int64, error) {
	query := s.db.WithContext(ctx).Model(&blog.Comment{}).Where("post_id = ?", postID)
	return s.list(query, params)
}

func (s *GormStore) list(query *gorm.DB, params blog.ListParams) ([]blog.Comment, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "comment")
	}

	var list []blog.Comment
	err := query.
		Preload("Author").
		Order("id").
		Limit(params.Take).
		Offset(params.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, database.TranslateError(err, "comment")
	}
	return list, total, nil
}

func (s *GormStore) Update(ctx context.Context, comment *blog.Comment) error {
	if err := s.db.WithContext(ctx).Save(comment).Error; err != nil {
		return database.TranslateError(err, "comment")
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&blog.Comment{}, id)
	if result.Error != nil {
		return database.TranslateError(result.Error, "comment")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "comment")
	}
	return nil
}

func (s *GormStore) AuthorID(ctx context.Context, id int64) (int64, bool, error) {
	var authorID int64
	err := s.db.WithContext(ctx).
		Model(&blog.Comment{}).
		Select("author_id").
		Where("id = ?", id).
		Take(&authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, database.TranslateError(err, "comment")
	}
	return authorID, true, nil
}
