package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
	"github.com/Malithmadhushantha/asali-frontend/internal/session"
)

// Sessions exposes the current session snapshot to route guards.
type Sessions interface {
	Snapshot() session.Snapshot
}

// RequireAdmin gates the admin console routes on the current session.
// This is a UI convenience only; the backend enforces the role on
// every admin endpoint regardless.
func RequireAdmin(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sessions.Snapshot()
		if !snap.IsAuthenticated || snap.Identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if snap.Identity.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
