package blog

import "context"

// authorSource yields the author of a resource by id.
type authorSource interface {
	AuthorID(ctx context.Context, id int64) (int64, bool, error)
}

// AuthorLookup adapts the post and comment stores to the authorization
// pipeline's ownership queries.
type AuthorLookup struct {
	posts    authorSource
	comments authorSource
}

// NewAuthorLookup creates an AuthorLookup over the given stores.
func NewAuthorLookup(posts, comments authorSource) *AuthorLookup {
	return &AuthorLookup{posts: posts, comments: comments}
}

// PostAuthorID returns the author of a post, or false when it does not exist.
func (l *AuthorLookup) PostAuthorID(ctx context.Context, postID int64) (int64, bool, error) {
	return l.posts.AuthorID(ctx, postID)
}

// CommentAuthorID returns the author of a comment, or false when it does not
// exist.
func (l *AuthorLookup) CommentAuthorID(ctx context.Context, commentID int64) (int64, bool, error) {
	return l.comments.AuthorID(ctx, commentID)
}
