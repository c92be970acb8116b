package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
)

// RequireOwner guards /api/users/:id routes. It re-validates the bearer
// token from scratch rather than trusting upstream middleware, and denies
// unless the token's subject is the resource owner. There is no elevated
// role that bypasses this check.
func RequireOwner(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			Deny(c)
			return
		}

		claims, err := tokens.ExtractClaims(token)
		if err != nil {
			Deny(c)
			return
		}

		id := c.Param("id")
		if id == "" || claims.UserID != id {
			Deny(c)
			return
		}
		c.Next()
	}
}
