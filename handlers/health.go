package handlers

import (
	"net/http"

	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest dependency snapshot.
func HealthHandler(c *gin.Context) {
	snapshot := utils.GetHealthStatus()
	status := "ok"
	if !snapshot.Healthy() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"message":      "Hi, I'm StudyBuddy",
		"dependencies": snapshot,
	})
}
