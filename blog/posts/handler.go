package posts

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/errors"
	"github.com/kbukum/blogapi/server"
	"github.com/kbukum/blogapi/server/middleware"
	"github.com/kbukum/blogapi/util"
	"github.com/kbukum/blogapi/validation"
)

// CreateRequest is the payload for publishing a post.
type CreateRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateRequest is the payload for editing a post. All fields optional; a
// present tags array replaces the existing tags, an absent one leaves them.
type UpdateRequest struct {
	Title   string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content string   `json:"content" validate:"omitempty,min=1"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// Handler exposes post endpoints over Gin.
type Handler struct {
	service *Service
}

// NewHandler creates a post Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /posts. The author is the authenticated caller.
func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), identity.ID, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, post)
}

// List handles GET /posts with optional author filter.
func (h *Handler) List(c *gin.Context) {
	params := blog.ListParams{
		Take: util.ParseIntInRange(c.Query("take"), 10, 1, 100),
		Skip: util.ParseIntInRange(c.Query("skip"), 0, 0, 1<<30),
	}

	var authorID int64
	if raw := c.Query("author"); raw != "" {
		id, ok := authz.ParseResourceID(raw)
		if !ok {
			server.RespondWithError(c, errors.InvalidInput("author", "must be a positive integer"))
			return
		}
		authorID = id
	}

	list, total, err := h.service.List(c.Request.Context(), authorID, params)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOKWithMeta(c, list, server.Meta{Take: params.Take, Skip: params.Skip, Total: total})
}

// Get handles GET /posts/:postId.
func (h *Handler) Get(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("postId"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("postId", "must be a positive integer"))
		return
	}

	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, post)
}

// Update handles PUT /posts/:postId.
func (h *Handler) Update(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("postId"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("postId", "must be a positive integer"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, post)
}

// Delete handles DELETE /posts/:postId.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("postId"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("postId", "must be a positive integer"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
