package main

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog/comments"
	"github.com/kbukum/blogapi/blog/posts"
	"github.com/kbukum/blogapi/blog/users"
	"github.com/kbukum/blogapi/server/endpoint"
	"github.com/kbukum/blogapi/server/middleware"
)

// handlers groups the domain handlers for route registration.
type handlers struct {
	users    *users.Handler
	posts    *posts.Handler
	comments *comments.Handler
}

// registerRoutes binds every endpoint and its operation descriptor. Reads are
// public except the single-user lookup, which is admin-only. Writes on an
// existing resource are open to admins or the resource owner.
func registerRoutes(engine *gin.Engine, pipeline *authz.Pipeline, h handlers, service string) {
	engine.GET("/health", endpoint.Health(service))

	guard := func(op authz.Operation) gin.HandlerFunc {
		return middleware.Authorize(pipeline, op)
	}

	api := engine.Group("/api")

	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", h.users.Register)
		userRoutes.POST("/login", h.users.Login)
		userRoutes.GET("", h.users.List)
		userRoutes.GET("/:id", guard(authz.Operation{
			Name:  "users.get",
			Roles: []authz.Role{authz.RoleAdmin},
		}), h.users.Get)
		userRoutes.PUT("/:id", guard(authz.Operation{
			Name:       "users.update",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipUserIDParam,
			Combinator: authz.RoleOrOwnership,
		}), h.users.Update)
		userRoutes.DELETE("/:id", guard(authz.Operation{
			Name:       "users.delete",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipUserIDParam,
			Combinator: authz.RoleOrOwnership,
		}), h.users.Delete)
	}

	postRoutes := api.Group("/posts")
	{
		postRoutes.POST("", guard(authz.Operation{
			Name:  "posts.create",
			Roles: []authz.Role{authz.RoleAdmin, authz.RoleUser},
		}), h.posts.Create)
		postRoutes.GET("", h.posts.List)
		postRoutes.GET("/:postId", h.posts.Get)
		postRoutes.PUT("/:postId", guard(authz.Operation{
			Name:       "posts.update",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipPostAuthor,
			Combinator: authz.RoleOrOwnership,
		}), h.posts.Update)
		postRoutes.DELETE("/:postId", guard(authz.Operation{
			Name:       "posts.delete",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipPostAuthor,
			Combinator: authz.RoleOrOwnership,
		}), h.posts.Delete)
	}

	commentRoutes := api.Group("/comments")
	{
		commentRoutes.POST("", guard(authz.Operation{
			Name:  "comments.create",
			Roles: []authz.Role{authz.RoleUser},
		}), h.comments.Create)
		commentRoutes.GET("", h.comments.List)
		commentRoutes.GET("/:id", h.comments.Get)
		commentRoutes.PUT("/:id", guard(authz.Operation{
			Name:       "comments.update",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipCommentAuthor,
			Combinator: authz.RoleOrOwnership,
		}), h.comments.Update)
		commentRoutes.DELETE("/:id", guard(authz.Operation{
			Name:       "comments.delete",
			Roles:      []authz.Role{authz.RoleAdmin},
			Ownership:  authz.OwnershipCommentAuthor,
			Combinator: authz.RoleOrOwnership,
		}), h.comments.Delete)
	}
}
