package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/iiTONELOC/web-app-auth-server/auth/authctx"
	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/logger"
	"github.com/iiTONELOC/web-app-auth-server/users"
)

// IdentityStore is the slice of the user store the gatekeeper needs for its
// zero-trust re-check: the token's subject must still exist and still match
// the stored record.
type IdentityStore interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

// Gatekeeper guards the /api/users route space:
//
//   - POST /api/users and POST /api/users/login pass with no token
//     (registration and login cannot require one);
//   - GET /api/users/all is denied unconditionally;
//   - everything else requires a bearer token that validates and whose
//     claims still match a live account.
//
// Every denial is the same 401 envelope; the sub-cause is logged, never
// surfaced.
type Gatekeeper struct {
	tokens    *jwt.Service
	store     IdentityStore
	log       *logger.Logger
	decisions metric.Int64Counter
}

// NewGatekeeper wires the gatekeeper over the token service and user store.
func NewGatekeeper(tokens *jwt.Service, store IdentityStore) *Gatekeeper {
	meter := otel.Meter("github.com/iiTONELOC/web-app-auth-server/server/middleware")
	decisions, _ := meter.Int64Counter("gatekeeper.decisions",
		metric.WithDescription("Gatekeeper allow/deny decisions by outcome"),
	)
	return &Gatekeeper{
		tokens:    tokens,
		store:     store,
		log:       logger.WithComponent("gatekeeper"),
		decisions: decisions,
	}
}

// Handler returns the Gin middleware enforcing the gate policy.
func (g *Gatekeeper) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		if isOpenRoute(method, path) {
			g.record(c, "allow", "open")
			c.Next()
			return
		}

		if path == "/api/users/all" {
			g.record(c, "deny", "blanket")
			Deny(c)
			return
		}

		token, ok := ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			g.record(c, "deny", "no_token")
			Deny(c)
			return
		}

		claims, err := g.tokens.ExtractClaims(token)
		if err != nil {
			g.log.Warn("Token rejected", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			g.record(c, "deny", "invalid_token")
			Deny(c)
			return
		}

		// Zero-trust: the token alone is not enough, its subject must still
		// exist and still carry the same identity.
		user, err := g.store.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || user.Username != claims.Name || user.Email != claims.Email {
			g.record(c, "deny", "stale_subject")
			Deny(c)
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		g.record(c, "allow", "token")
		c.Next()
	}
}

func (g *Gatekeeper) record(c *gin.Context, outcome, policy string) {
	g.decisions.Add(c.Request.Context(), 1,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
			attribute.String("policy", policy),
		),
	)
}

// isOpenRoute reports whether the route is reachable without a token.
func isOpenRoute(method, path string) bool {
	if method != http.MethodPost {
		return false
	}
	return path == "/api/users" || path == "/api/users/login"
}

// ExtractBearer pulls the token out of an Authorization header. Reports
// false for a missing header, a non-Bearer scheme, or an empty token.
func ExtractBearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Deny aborts the request with the uniform 401 envelope.
func Deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": http.StatusUnauthorized,
		"error":  "Unauthorized",
		"data":   nil,
	})
}
