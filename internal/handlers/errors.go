package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	if e, ok := err.(*authz.Error); ok {
		switch e.Kind {
		case authz.KindUnauthenticated:
			c.JSON(http.StatusUnauthorized, gin.H{"error": e.Reason})
		case authz.KindLifecycle:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Reason})
		case authz.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"error": e.Reason})
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": e.Reason})
		}
		return
	}
	if repository.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err == tenant.ErrUnboundScope {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active course"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
