package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iiTONELOC/web-app-auth-server/auth/authctx"
	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenService(t *testing.T) *jwt.Service {
	t.Helper()
	tokens, err := jwt.NewService(&jwt.Config{Secret: "gatekeeper-test-secret"})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return tokens
}

func seedUser(t *testing.T, store *users.MemoryStore, id, username, email string) {
	t.Helper()
	err := store.Insert(context.Background(), &users.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "HASH$x",
		PasswordSalt: "salt",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func issueFor(t *testing.T, tokens *jwt.Service, id, username, email string) string {
	t.Helper()
	token, err := tokens.Issue(jwt.Claims{UserID: id, Name: username, Email: email}, 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// gatedEngine mounts the gatekeeper in front of stub handlers that answer
// 200 so the test observes only the middleware's decision.
func gatedEngine(tokens *jwt.Service, store IdentityStore) *gin.Engine {
	engine := gin.New()
	gatekeeper := NewGatekeeper(tokens, store)

	api := engine.Group("/api/users")
	api.Use(gatekeeper.Handler())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	api.POST("", ok)
	api.POST("/login", ok)
	api.GET("/all", ok)
	api.GET("/:id", ok)
	api.DELETE("/:id", ok)
	return engine
}

func do(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGatekeeperOpenRoutes(t *testing.T) {
	tokens := newTokenService(t)
	engine := gatedEngine(tokens, users.NewMemoryStore())

	if rec := do(engine, http.MethodPost, "/api/users", ""); rec.Code != http.StatusOK {
		t.Fatalf("POST /api/users without token: expected 200, got %d", rec.Code)
	}
	if rec := do(engine, http.MethodPost, "/api/users/login", ""); rec.Code != http.StatusOK {
		t.Fatalf("POST /api/users/login without token: expected 200, got %d", rec.Code)
	}
}

func TestGatekeeperBlanketDenyAll(t *testing.T) {
	tokens := newTokenService(t)
	store := users.NewMemoryStore()
	seedUser(t, store, "u-1", "alice1", "alice@example.com")
	engine := gatedEngine(tokens, store)

	// Even a fully valid token must not open /api/users/all.
	token := issueFor(t, tokens, "u-1", "alice1", "alice@example.com")
	rec := do(engine, http.MethodGet, "/api/users/all", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGatekeeperDenyEnvelope(t *testing.T) {
	tokens := newTokenService(t)
	engine := gatedEngine(tokens, users.NewMemoryStore())

	rec := do(engine, http.MethodGet, "/api/users/u-1", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body struct {
		Status int             `json:"status"`
		Error  string          `json:"error"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != http.StatusUnauthorized || body.Error != "Unauthorized" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if string(body.Data) != "null" {
		t.Fatalf("expected null data, got %s", body.Data)
	}
}

func TestGatekeeperRequiresValidToken(t *testing.T) {
	tokens := newTokenService(t)
	store := users.NewMemoryStore()
	seedUser(t, store, "u-1", "alice1", "alice@example.com")
	engine := gatedEngine(tokens, store)

	cases := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"malformed token", "garbage"},
		{"foreign secret", mustForeignToken(t)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(engine, http.MethodGet, "/api/users/u-1", tc.token)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}

	token := issueFor(t, tokens, "u-1", "alice1", "alice@example.com")
	if rec := do(engine, http.MethodGet, "/api/users/u-1", token); rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
}

func mustForeignToken(t *testing.T) string {
	t.Helper()
	foreign, err := jwt.NewService(&jwt.Config{Secret: "some-other-secret"})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	token, err := foreign.Issue(jwt.Claims{UserID: "u-1", Name: "alice1", Email: "alice@example.com"}, 5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func TestGatekeeperZeroTrustRecheck(t *testing.T) {
	tokens := newTokenService(t)
	store := users.NewMemoryStore()
	seedUser(t, store, "u-1", "alice1", "alice@example.com")
	engine := gatedEngine(tokens, store)

	token := issueFor(t, tokens, "u-1", "alice1", "alice@example.com")

	// Account deleted after issuance: token no longer opens the gate.
	if err := store.Delete(context.Background(), "u-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec := do(engine, http.MethodGet, "/api/users/u-1", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted subject: expected 401, got %d", rec.Code)
	}

	// Account re-created with a different email: stale claims are refused.
	seedUser(t, store, "u-1", "alice1", "changed@example.com")
	if rec := do(engine, http.MethodGet, "/api/users/u-1", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale claims: expected 401, got %d", rec.Code)
	}
}

func TestGatekeeperStoresClaimsInContext(t *testing.T) {
	tokens := newTokenService(t)
	store := users.NewMemoryStore()
	seedUser(t, store, "u-1", "alice1", "alice@example.com")

	engine := gin.New()
	engine.Use(NewGatekeeper(tokens, store).Handler())
	engine.GET("/api/users/:id", func(c *gin.Context) {
		claims, ok := authctx.Get(c.Request.Context())
		if !ok || claims.UserID != "u-1" {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	token := issueFor(t, tokens, "u-1", "alice1", "alice@example.com")
	if rec := do(engine, http.MethodGet, "/api/users/u-1", token); rec.Code != http.StatusOK {
		t.Fatalf("expected claims in context, got %d", rec.Code)
	}
}

func TestRequireOwner(t *testing.T) {
	tokens := newTokenService(t)

	engine := gin.New()
	engine.DELETE("/api/users/:id", RequireOwner(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	alice := issueFor(t, tokens, "u-alice", "alice1", "alice@example.com")
	bob := issueFor(t, tokens, "u-bob", "bob22", "bob@example.com")

	if rec := do(engine, http.MethodDelete, "/api/users/u-alice", alice); rec.Code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", rec.Code)
	}
	if rec := do(engine, http.MethodDelete, "/api/users/u-alice", bob); rec.Code != http.StatusUnauthorized {
		t.Fatalf("foreign principal: expected 401, got %d", rec.Code)
	}
	if rec := do(engine, http.MethodDelete, "/api/users/u-alice", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "", false},
		{"Basic dXNlcg==", "", false},
		{"Bearer ", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := ExtractBearer(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Errorf("ExtractBearer(%q) = (%q, %v), expected (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
