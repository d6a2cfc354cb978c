package posts

import (
	"context"

	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/logger"
)

// Service implements post management. Authorization happens in the route
// middleware; the service trusts the caller identity it is given.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a post Service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.WithComponent("posts")}
}

// Create publishes a new post authored by authorID.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRequest) (*blog.Post, error) {
	post := &blog.Post{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		AuthorID: authorID,
	}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info("Post created", map[string]interface{}{
		"post_id":   post.ID,
		"author_id": authorID,
	})
	return post, nil
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, id int64) (*blog.Post, error) {
	return s.store.GetByID(ctx, id)
}

// List returns a page of posts, optionally filtered by author.
func (s *Service) List(ctx context.Context, authorID int64, params blog.ListParams) ([]blog.Post, int64, error) {
	if authorID > 0 {
		return s.store.ListByAuthor(ctx, authorID, params)
	}
	return s.store.List(ctx, params)
}

// Update modifies a post's title and content. Empty fields are left unchanged.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*blog.Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if err := s.store.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and, via cascading foreign keys, its comments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Post deleted", map[string]interface{}{
		"post_id": id,
	})
	return nil
}
