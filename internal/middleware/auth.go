package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/orgdhq/orgd/internal/auth"
	"github.com/orgdhq/orgd/pkg/errors"
	"github.com/orgdhq/orgd/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxEmailKey  = "authEmail"
	CtxOrgKey    = "authOrg"
)

// Auth enforces JWT authentication using the supplied JWT service.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxEmailKey, claims.Subject)
		c.Set(CtxOrgKey, claims.Org)

		c.Next()
	}
}

// ClaimsFromContext returns the validated claims stored by Auth, or nil.
func ClaimsFromContext(c *gin.Context) *iauth.Claims {
	value, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*iauth.Claims)
	return claims
}
