package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/handlers"
	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{Handler: authHandler}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/change-password", ac.Handler.ChangePassword)
	router.POST("/auth/refresh-token", ac.Handler.RefreshToken)

	// Protected routes: requires a valid token
	authGroup := router.Group("/auth").Use(middlewares.SessionAuthMiddleware())
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
		authGroup.GET("/session", ac.Handler.CurrentUserRole)
		authGroup.GET("/profile", ac.Handler.Profile)
	}

	// The frontend polls this one to rebuild its menu on reload.
	router.GET("/current-user-role", middlewares.SessionAuthMiddleware(), ac.Handler.CurrentUserRole)
}
