package httpserver

import (
	"net/http"
	"strings"

	"storefront/internal/auth"

	"github.com/gin-gonic/gin"
)

const claimsKey = "authClaims"

// extractToken pulls the access token from the cookie (browser) or the
// Authorization header (API clients).
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// authRequired resolves the request credential to a user identity and stores
// the claims on the context. Handlers never touch the credential themselves.
func authRequired(tokens *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := tokens.ValidateToken(tokenString, auth.PurposeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// adminRequired must run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || !claims.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

type maintenanceChecker interface {
	MaintenanceMode() bool
}

// maintenanceGuard closes the storefront while maintenance mode is on.
// The auth and admin groups stay reachable so an admin can turn it off.
func maintenanceGuard(settings maintenanceChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if settings != nil && settings.MaintenanceMode() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "store is down for maintenance"})
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func currentUserID(c *gin.Context) string {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
