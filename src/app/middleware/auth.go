package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inventory/src/app/http/response"
	"inventory/src/infra/auth"
)

// PrincipalKey is the context key for the authenticated caller.
const PrincipalKey = "principal"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// Authenticate validates the bearer token in the Authorization header and
// stores the caller under PrincipalKey. With a nil parser authentication is
// disabled and every request acts as a local admin.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	local := &auth.Principal{Subject: "local", Roles: []string{auth.RoleAdmin}}

	return func(c *gin.Context) {
		if tokens == nil {
			c.Set(PrincipalKey, local)
			c.Next()
			return
		}
		requestID := GetRequestID(c)

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authorization header is missing", requestID)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "invalid token format, must be Bearer token", requestID)
			return
		}

		p, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, err.Error(), requestID)
			return
		}

		c.Set(PrincipalKey, p)
		c.Next()
	}
}

// RequireRole rejects callers holding none of roles. It must run after
// Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			response.Unauthorized(c, "authentication required", GetRequestID(c))
			return
		}
		if !p.HasAnyRole(roles...) {
			response.Forbidden(c, "permission denied: requires role "+strings.Join(roles, " or "), GetRequestID(c))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, or nil.
func GetPrincipal(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}
