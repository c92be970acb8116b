package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/server/middleware"
	"github.com/iiTONELOC/web-app-auth-server/users"
	"github.com/iiTONELOC/web-app-auth-server/version"
)

// RegisterRoutes mounts the user API behind the gatekeeper, plus an
// ungated health endpoint.
//
// GET /api/users/all is a real route, but the gatekeeper's blanket policy
// denies it before the handler runs; it exists so the denial is a policy
// decision rather than a 404 that maps the API surface.
func RegisterRoutes(engine *gin.Engine, accounts *users.Service, tokens *jwt.Service, store middleware.IdentityStore) {
	h := &userHandler{accounts: accounts}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Short()})
	})

	gatekeeper := middleware.NewGatekeeper(tokens, store)
	owner := middleware.RequireOwner(tokens)

	api := engine.Group("/api/users")
	api.Use(gatekeeper.Handler())

	api.POST("", h.register)
	api.POST("/login", h.login)
	api.GET("/all", h.list)

	api.GET("/:id", owner, h.get)
	api.PUT("/:id", owner, h.update)
	api.DELETE("/:id", owner, h.remove)
}
