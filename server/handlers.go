package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/iiTONELOC/web-app-auth-server/errors"
	"github.com/iiTONELOC/web-app-auth-server/users"
	"github.com/iiTONELOC/web-app-auth-server/validation"
)

// tracer spans the account operations behind each route.
var tracer = otel.Tracer("github.com/iiTONELOC/web-app-auth-server/server")

type userHandler struct {
	accounts *users.Service
}

// loginRequest is the login payload. Unlike registration it binds plain
// strings: a missing field is simply a failed login, not a schema fault.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register handles POST /api/users.
func (h *userHandler) register(c *gin.Context) {
	var sub validation.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		RespondWithError(c, apperrors.SchemaMismatch().WithCause(err))
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "users.register")
	user, err := h.accounts.Register(ctx, sub)
	endSpan(span, err)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondCreated(c, user)
}

// login handles POST /api/users/login.
func (h *userHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Unauthorized().WithCause(err))
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "users.login")
	user, token, err := h.accounts.Login(ctx, req.Username, req.Password)
	endSpan(span, err)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "token": token})
}

// get handles GET /api/users/:id.
func (h *userHandler) get(c *gin.Context) {
	user, err := h.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, user)
}

// update handles PUT /api/users/:id. Only the fields present in the body
// are validated and written.
func (h *userHandler) update(c *gin.Context) {
	var sub validation.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		RespondWithError(c, apperrors.SchemaMismatch().WithCause(err))
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "users.update")
	user, err := h.accounts.Update(ctx, c.Param("id"), sub)
	endSpan(span, err)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, user)
}

// remove handles DELETE /api/users/:id.
func (h *userHandler) remove(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// list handles GET /api/users/all. The gatekeeper denies the route before
// this runs; the handler stays for completeness of the API surface.
func (h *userHandler) list(c *gin.Context) {
	all, err := h.accounts.List(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, all)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
