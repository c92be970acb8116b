package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iiTONELOC/web-app-auth-server/logger"
)

func requestIDEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.FieldRequestID))
	})
	return engine
}

func TestRequestIDMintsAndEchoes(t *testing.T) {
	engine := requestIDEngine()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid in %s, got %q", RequestIDHeader, id)
	}
	if rec.Body.String() != id {
		t.Fatalf("handler saw %q, response header carries %q", rec.Body.String(), id)
	}
}

func TestRequestIDReusesInboundHeader(t *testing.T) {
	engine := requestIDEngine()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "upstream-id-42" {
		t.Fatalf("expected inbound id to be reused, got %q", got)
	}
}
