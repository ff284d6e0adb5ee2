package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// CodeExpiredToken is the wire error code the web client watches for.
// Receiving it forces the client to drop its session and reload.
// Keep this string stable; it is part of the client contract.
const CodeExpiredToken = "EXPIREDTOKEN"

// RequireToken verifies a token and injects identity into request context.
// The web client sends the raw token in the Authorization header; a Bearer
// prefix is tolerated for other callers. RBAC checks belong to internal/rbac.
func RequireToken(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "missing token"})
			return
		}

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				// The one signal that forces the client to log out.
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": CodeExpiredToken, "message": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "invalid token"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.UserID, claims.OrgID, claims.Name, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("user_id", claims.UserID)
		c.Set("org_id", claims.OrgID)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	}
	return raw
}
