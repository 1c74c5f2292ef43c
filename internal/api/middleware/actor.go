package middleware

import (
	"net/http"

	"placehub/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"
)

// Actor reads the caller identity from the X-Student-ID and X-Role headers.
// The UI keeps the session client-side, so the server only echoes identity
// back into the request context; this is identification, not authentication.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if idStr := c.GetHeader("X-Student-ID"); idStr != "" {
			if id, err := uuid.Parse(idStr); err == nil {
				c.Set(ActorIDKey, id)
			}
		}
		if role := c.GetHeader("X-Role"); role != "" {
			c.Set(ActorRoleKey, user.Role(role))
		}
		c.Next()
	}
}

// RequireRole rejects requests whose X-Role header does not carry the
// expected role.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual, ok := c.Get(ActorRoleKey)
		if !ok || actual.(user.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient role for this operation",
			})
			return
		}
		c.Next()
	}
}

// ActorID returns the caller's student ID from the request context.
func ActorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ActorIDKey)
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
