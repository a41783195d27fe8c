package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/domain/model"
	pkgAuth "github.com/polkiloo/restomart/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated operator.
	PrincipalContextKey = "principal"
	authCookieName      = "restomart_token"
)

// TokenParser resolves a bearer token to an operator.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if principal.IsGuest() {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// RoleRequired rejects operators whose role is not listed. Must run after AuthRequired.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, Principal(c).Role) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated operator, or the guest principal.
func Principal(c *gin.Context) model.Principal {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return model.Guest
	}
	p, ok := val.(model.Principal)
	if !ok {
		return model.Guest
	}
	return p
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
