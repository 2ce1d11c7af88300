package auth

import "github.com/gin-gonic/gin"

// Roles a caller can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the request-scoped caller identity extracted from the bearer
// token. Handlers receive it explicitly instead of reading any global session
// state.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller carries the admin role.
func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

const identityKey = "auth.identity"

// CurrentUser returns the identity stored on the gin context by RequireUser.
// ok is false when the request was not authenticated.
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func setCurrentUser(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}
