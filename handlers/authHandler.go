package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
)

type AuthHandler struct {
	service *services.AuthService
	users   *services.UserService
}

func NewAuthHandler(service *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{service: service, users: users}
}

// Login authenticates the user, sets the auth cookies and returns the
// session payload the frontend needs for scoping.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role, user.AssignedStates)
	if err != nil {
		middlewares.HttpError(c, "failed to generate tokens", http.StatusInternalServerError, err)
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	middlewares.RespondJSON(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	}, http.StatusOK)
}

// RefreshToken rotates both tokens from a valid refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(utils.RefreshTokenCookie)
	if err != nil || token == "" {
		token = c.DefaultQuery("refreshToken", "")
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
		return
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(claims.UserID, claims.Role, claims.AssignedStates)
	if err != nil {
		middlewares.HttpError(c, "failed to generate tokens", http.StatusInternalServerError, err)
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	middlewares.RespondJSON(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, http.StatusOK)
}

// Logoff clears the auth cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(http.StatusOK)
}

// CurrentUserRole returns the session's role and scope without a database
// lookup.
func (h *AuthHandler) CurrentUserRole(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}
	middlewares.RespondJSON(c, gin.H{
		"userId":         session.UserID,
		"role":           session.Role,
		"assignedStates": session.AssignedStates,
	}, http.StatusOK)
}

// Profile returns the full account record of the session user.
func (h *AuthHandler) Profile(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), session.UserID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, user, http.StatusOK)
}

// SendResetCode mails a password-reset code. Unknown emails still return
// 200 so addresses cannot be enumerated.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.SendResetCode(c.Request.Context(), payload.Email); err != nil {
		middlewares.HttpError(c, "failed to send reset code", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Reset code sent if the email is registered"}, http.StatusOK)
}

// ChangePassword verifies the reset code and replaces the password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var payload struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), payload.Email, payload.ResetCode, payload.NewPassword); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Password updated"}, http.StatusOK)
}
