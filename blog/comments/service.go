package comments

import (
	"context"

	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/errors"
	"github.com/kbukum/blogapi/logger"
)

// PostChecker verifies that a post exists before a comment is attached to it.
type PostChecker interface {
	AuthorID(ctx context.Context, postID int64) (int64, bool, error)
}

// Service implements comment management.
type Service struct {
	store Store
	posts PostChecker
	log   *logger.Logger
}

// NewService creates a comment Service.
func NewService(store Store, posts PostChecker, log *logger.Logger) *Service {
	return &Service{store: store, posts: posts, log: log.WithComponent("comments")}
}

// Create attaches a new comment to a post, authored by authorID.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRequest) (*blog.Comment, error) {
	_, exists, err := s.posts.AuthorID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NotFound("post", "")
	}

	comment := &blog.Comment{
		Content:  req.Content,
		AuthorID: authorID,
		PostID:   req.PostID,
	}
	if err := s.store.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info("Comment created", map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"author_id":  authorID,
	})
	return comment, nil
}

// Get returns a single comment by id.
func (s *Service) Get(ctx context.Context, id int64) (*blog.Comment, error) {
	return s.store.GetByID(ctx, id)
}

// List returns a page of comments, optionally restricted to one post.
func (s *Service) List(ctx context.Context, postID int64, params blog.ListParams) ([]blog.Comment, int64, error) {
	if postID > 0 {
		return s.store.ListByPost(ctx, postID, params)
	}
	return s.store.List(ctx, params)
}

// Update modifies a comment's content.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*blog.Comment, error) {
	comment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.store.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Comment deleted", map[string]interface{}{
		"comment_id": id,
	})
	return nil
}
