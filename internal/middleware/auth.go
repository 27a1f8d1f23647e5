package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// Context keys under which the access gate stores the identity.
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// DenyFunc answers a request that carries no valid identity. It must abort.
type DenyFunc func(c *gin.Context)

// DenyJSON rejects with 401 and a JSON error body.
func DenyJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

// DenyRedirect sends the browser to the login page.
func DenyRedirect(location string) DenyFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, location)
		c.Abort()
	}
}

// RequireIdentity lets requests for the public paths through untouched and
// requires a valid identity on every other path. Path comparison ignores
// case and a trailing slash.
func RequireIdentity(authn auth.Authenticator, deny DenyFunc, public ...string) gin.HandlerFunc {
	allow := make(map[string]struct{}, len(public))
	for _, p := range public {
		allow[normalizePath(p)] = struct{}{}
	}
	toucher, sliding := authn.(auth.Toucher)

	return func(c *gin.Context) {
		if _, ok := allow[normalizePath(c.Request.URL.Path)]; ok {
			c.Next()
			return
		}

		id, err := authn.CurrentIdentity(c.Request)
		if err != nil {
			deny(c)
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(EmailKey, id.Email)

		if sliding {
			if err := toucher.Touch(c.Writer, c.Request); err != nil {
				Logger(c).WarnContext(c.Request.Context(), "failed to refresh session", "error", err)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireIdentity.
func CurrentIdentity(c *gin.Context) (types.Identity, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return types.Identity{}, false
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return types.Identity{}, false
	}
	return types.Identity{UserID: id, Email: c.GetString(EmailKey)}, true
}

func normalizePath(p string) string {
	p = strings.ToLower(p)
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
