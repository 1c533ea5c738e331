// README: Liveness endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping handles GET /api/ping.
func Ping(c *gin.Context) {
	writeJSON(c, http.StatusOK, messageResponse{Success: true, Message: "pong"})
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// NotFound answers unmatched routes with the failure envelope.
func NotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "Not found")
}
