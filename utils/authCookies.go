package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names for the browser session. The middleware and the auth
// handler read them back under these names, with lifetimes tracking the
// token expiries.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetAuthCookies stores both tokens as httpOnly cookies.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	setCookie(c, AccessTokenCookie, accessToken, AccessTokenExpiry)
	setCookie(c, RefreshTokenCookie, refreshToken, RefreshTokenExpiry)
}

// ClearAuthCookies expires both cookies, logging the browser out.
func ClearAuthCookies(c *gin.Context) {
	setCookie(c, AccessTokenCookie, "", -time.Second)
	setCookie(c, RefreshTokenCookie, "", -time.Second)
}

// setCookie writes an httpOnly cookie. Secure is dropped in debug mode so
// a plain-http local frontend still receives the session.
func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}
