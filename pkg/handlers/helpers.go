package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck answers external health checkers (e.g. a load balancer).
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
