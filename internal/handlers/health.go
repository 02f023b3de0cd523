package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdhq/orgd/pkg/response"
)

// Health returns a simple status payload useful for readiness checks.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

// Home reports that the service is running.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"message": "Service is running."})
	}
}
