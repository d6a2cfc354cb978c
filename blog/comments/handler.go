package comments

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

// CreateRequest is the payload for posting a comment.
type CreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	PostID  int64  `json:"post_id" validate:"required,gt=0"`
}

// UpdateRequest is the payload for editing a comment.
type UpdateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Handler exposes comment endpoints over Gin.
type Handler struct {
	service *Service
}

// NewHandler creates a comment Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /comments. The author is the authenticated caller.
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

	comment, err := h.service.Create(c.Request.Context(), identity.ID, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, comment)
}

// List handles GET /comments with an optional post filter.
func (h *Handler) List(c *gin.Context) {
	var postID int64
	if raw := c.Query("post"); raw != "" {
		id, ok := authz.ParseResourceID(raw)
		if !ok {
			server.RespondWithError(c, errors.InvalidInput("post", "must be a positive integer"))
			return
		}
		postID = id
	}

	params := blog.ListParams{
		Take: util.ParseIntInRange(c.Query("take"), 10, 1, 100),
		Skip: util.ParseIntInRange(c.Query("skip"), 0, 0, 1<<30),
	}

	list, total, err := h.service.List(c.Request.Context(), postID, params)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOKWithMeta(c, list, server.Meta{Take: params.Take, Skip: params.Skip, Total: total})
}

// Get handles GET /comments/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("id"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("id", "must be a positive integer"))
		return
	}

	comment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, comment)
}

// Update handles PUT /comments/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("id"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("id", "must be a positive integer"))
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

	comment, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, comment)
}

// Delete handles DELETE /comments/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("id"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("id", "must be a positive integer"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
