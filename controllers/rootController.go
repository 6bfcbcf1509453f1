package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler reports service liveness.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "cgm-system",
		"status":  "ok",
	})
}

// SetupRootRoute sets up routes for the application
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
