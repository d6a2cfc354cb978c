package authz

import (
	"context"
	"fmt"
)

// AuthorLookup is the read-only storage capability the ownership resolver
// depends on. Implementations must not mutate storage; the second return
// value reports whether the resource exists.
type AuthorLookup interface {
	// PostAuthorID returns the author id of the post with the given id.
	PostAuthorID(ctx context.Context, postID int64) (int64, bool, error)

	// CommentAuthorID returns the author id of the comment with the given id.
	CommentAuthorID(ctx context.Context, commentID int64) (int64, bool, error)
}

// PathParams carries the raw path parameters of the request, as extracted by
// the transport. Values are uncoerced strings; the resolver applies the
// canonical integer parse itself.
type PathParams struct {
	// ID is the ":id" parameter (user id or comment id depending on route).
	ID string
	// PostID is the ":postId" parameter.
	PostID string
}

// OwnershipResolver derives the per-request ownership fact: does the acting
// identity own the resource the path refers to? Results are never cached
// across requests; ownership can change between requests.
type OwnershipResolver struct {
	lookup AuthorLookup
}

// NewOwnershipResolver creates a resolver over the given lookup capability.
func NewOwnershipResolver(lookup AuthorLookup) *OwnershipResolver {
	return &OwnershipResolver{lookup: lookup}
}

// Resolve evaluates the ownership rule. It performs at most one storage read.
// A resource that does not exist yields ownership false (fail closed), not an
// error; an error is returned only when the lookup capability itself fails.
func (r *OwnershipResolver) Resolve(ctx context.Context, check OwnershipCheck, params PathParams, id Identity) (bool, error) {
	switch check {
	case OwnershipNone:
		return false, nil

	case OwnershipUserIDParam:
		target, ok := ParseResourceID(params.ID)
		if !ok {
			return false, nil
		}
		return target == id.ID, nil

	case OwnershipPostAuthor:
		postID, ok := ParseResourceID(params.PostID)
		if !ok {
			return false, nil
		}
		author, found, err := r.lookup.PostAuthorID(ctx, postID)
		if err != nil {
			return false, fmt.Errorf("authz: post author lookup: %w", err)
		}
		if !found {
			return false, nil
		}
		return author == id.ID, nil

	case OwnershipCommentAuthor:
		commentID, ok := ParseResourceID(params.ID)
		if !ok {
			return false, nil
		}
		author, found, err := r.lookup.CommentAuthorID(ctx, commentID)
		if err != nil {
			return false, fmt.Errorf("authz: comment author lookup: %w", err)
		}
		if !found {
			return false, nil
		}
		return author == id.ID, nil

	default:
		return false, fmt.Errorf("authz: unknown ownership check %v", check)
	}
}

// ParseResourceID parses a path parameter as a resource id under the
// canonical rule: decimal digits only, no sign, no surrounding whitespace,
// no leading zeros ("5" parses; "05", "5 ", "+5" do not).
func ParseResourceID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	var v int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int64(c - '0')
		if v > (1<<63-1-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}
