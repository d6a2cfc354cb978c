package users

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/errors"
	"github.com/kbukum/blogapi/server"
	"github.com/kbukum/blogapi/util"
	"github.com/kbukum/blogapi/validation"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateRequest is the payload for modifying a profile. All fields optional.
type UpdateRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=8,max=72"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string     `json:"token"`
	User  *blog.User `json:"user"`
}

// Handler exposes user endpoints over Gin.
type Handler struct {
	service *Service
}

// NewHandler creates a user Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /users/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, user)
}

// Login handles POST /users/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("", "request body must be valid JSON"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, LoginResponse{Token: token, User: user})
}

// List handles GET /users.
func (h *Handler) List(c *gin.Context) {
	params := blog.ListParams{
		Take: util.ParseIntInRange(c.Query("take"), 10, 1, 100),
		Skip: util.ParseIntInRange(c.Query("skip"), 0, 0, 1<<30),
	}

	list, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOKWithMeta(c, list, server.Meta{Take: params.Take, Skip: params.Skip, Total: total})
}

// Get handles GET /users/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := authz.ParseResourceID(c.Param("id"))
	if !ok {
		server.RespondWithError(c, errors.InvalidInput("id", "must be a positive integer"))
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, user)
}

// Update handles PUT /users/:id.
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

	user, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, user)
}

// Delete handles DELETE /users/:id.
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
