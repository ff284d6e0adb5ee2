package rbac

import (
	"net/http"

	"fintrack-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireOrganization enforces the tenancy invariant: org_id must exist in context.
// This does not validate membership; handlers scope every query by org_id.
func RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := auth.OrgID(c.Request.Context())
		if err != nil || oid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "org_id required"})
			return
		}
		c.Next()
	}
}

// RequireAnyRole allows access if the caller has any of the provided roles.
// Role strings from the token are normalized before comparison, so the check
// is case-insensitive on both sides. An empty allowed list admits any
// authenticated caller.
func RequireAnyRole(allowed ...Role) gin.HandlerFunc {
	allowedSet := make(map[Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		raw, err := auth.Role(c.Request.Context())
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "role required"})
			return
		}

		if len(allowedSet) == 0 {
			c.Next()
			return
		}

		role := Normalize(raw)
		if role == RoleUnknown {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "message": "forbidden"})
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "message": "forbidden"})
			return
		}
		c.Next()
	}
}
