package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/aurascribe/auth"
)

// Context keys set by Authenticate.
const (
	ContextPrincipal = "principal"
	ContextUserID    = "user_id"
)

// Authenticate returns a Gin middleware that admits requests carrying a
// valid API key (X-API-Key header) or bearer token (Authorization
// header). SkipPaths prefixes bypass the check (health probes, login).
func Authenticate(svc *auth.Service, skipPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hasPrefix(c.Request.URL.Path, skipPaths) {
			c.Next()
			return
		}

		credential := c.GetHeader("Authorization")
		if credential == "" {
			credential = c.GetHeader("X-API-Key")
		}
		principal, err := svc.Authenticate(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		c.Set(ContextPrincipal, principal)
		c.Set(ContextUserID, principal.UserID)
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal, if any.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}
