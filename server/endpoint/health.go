// Package endpoint holds HTTP handlers that do not belong to a domain
// package.
package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/version"
)

// HealthResponse is the body returned by the health endpoint.
type HealthResponse struct {
	Status  string       `json:"status"`
	Service string       `json:"service"`
	Build   version.Info `json:"build"`
}

// Health returns a liveness handler reporting the service name and build
// information.
func Health(service string) gin.HandlerFunc {
	build := version.Get()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: service,
			Build:   build,
		})
	}
}
