package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/errors"
)

// DataResponse is the envelope for successful responses.
type DataResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta carries pagination information for collection responses.
type Meta struct {
	Take  int   `json:"take"`
	Skip  int   `json:"skip"`
	Total int64 `json:"total"`
}

// RespondOK writes a 200 response with the standard envelope.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondOKWithMeta writes a 200 response with pagination metadata.
func RespondOKWithMeta(c *gin.Context, data interface{}, meta Meta) {
	c.JSON(http.StatusOK, DataResponse{Data: data, Meta: &meta})
}

// RespondCreated writes a 201 response with the standard envelope.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}

// RespondNoContent writes an empty 204 response.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondWithError writes an error response. AppErrors map to their own
// status and code; anything else becomes an opaque 500.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	internal := errors.Internal(err)
	c.AbortWithStatusJSON(internal.HTTPStatus, internal.ToResponse())
}
