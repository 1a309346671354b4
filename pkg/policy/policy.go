package policy

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role names seeded at migration time.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the caller as attached to the gin context by the auth
// middleware: the login name and the resolved role.
type Identity struct {
	UserID string
	Role   string
}

// FromContext reads the identity the auth middleware stored on the request.
// A missing role downgrades to the regular user role.
func FromContext(c *gin.Context) Identity {
	id := Identity{Role: RoleUser}
	if v, ok := c.Get("userId"); ok {
		if s, ok := v.(string); ok {
			id.UserID = s
		}
	}
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok && s != "" {
			id.Role = s
		}
	}
	return id
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// CanView reports whether the caller may read a record owned by ownerID,
// including its documents. Admins see everything, users only their own.
func (id Identity) CanView(ownerID string) bool {
	return id.IsAdmin() || id.UserID == ownerID
}

// RequireAdmin gates a route on the admin role before the handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
