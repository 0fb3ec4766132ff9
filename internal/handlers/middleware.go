package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/services"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

const principalKey = "principal"

// AuthMiddleware validates the bearer token, rebuilds the principal and
// binds the tenant scope for the rest of the request. Binding happens
// here, once, before any handler touches the store.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		principal, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		scope, err := tenant.Bind(principal.ActiveCourseID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no active course"})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(tenant.WithScope(c.Request.Context(), scope))
		c.Next()
	}
}

// getPrincipal recovers the authenticated principal set by AuthMiddleware.
func getPrincipal(c *gin.Context) (authz.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok && p.Authenticated()
}

// requirePrincipal aborts with 401 when no principal is attached.
func requirePrincipal(c *gin.Context) (authz.Principal, bool) {
	p, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
	}
	return p, ok
}
