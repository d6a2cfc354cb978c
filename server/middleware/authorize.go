package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/errors"
)

// identityKey is the Gin context key under which the caller identity is stored.
const identityKey = "identity"

// Authorize guards a route with the given operation descriptor. It extracts
// the bearer credential, runs the authorization pipeline, and aborts with 401
// or 403 on denial. On success the caller identity is available through
// GetIdentity and the request context.
func Authorize(pipeline *authz.Pipeline, op authz.Operation) gin.HandlerFunc {
	if err := op.Validate(); err != nil {
		// A malformed descriptor is a programming error in the route table.
		panic(fmt.Sprintf("invalid operation descriptor %q: %v", op.Name, err))
	}

	return func(c *gin.Context) {
		credential := bearerToken(c)
		params := authz.PathParams{
			ID:     c.Param("id"),
			PostID: c.Param("postId"),
		}

		identity, decision, err := pipeline.Authorize(c.Request.Context(), credential, op, params)
		if err != nil {
			appErr := errors.Internal(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		if !decision.Allowed {
			var appErr *errors.AppError
			switch decision.Reason {
			case authz.ReasonUnauthenticated:
				appErr = errors.Unauthorized("Authentication required")
			default:
				appErr = errors.Forbidden("You do not have permission to perform this action")
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(authz.ContextWithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// GetIdentity returns the authenticated caller for the current request. The
// second return is false on routes that did not run the Authorize middleware.
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return authz.Identity{}, false
	}
	identity, ok := v.(authz.Identity)
	return identity, ok
}

// bearerToken extracts the credential from the Authorization header. A
// missing or non-Bearer header yields "", which the pipeline treats as an
// absent credential.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
