package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"ppvstore/internal/catalog"
	"ppvstore/internal/config"
	"ppvstore/internal/handler"
	"ppvstore/internal/router"
	"ppvstore/internal/session"
	"ppvstore/internal/storage"
	"ppvstore/internal/view"
)

const testSecret = "test-secret"

// newTestServer wires the full route table over in-memory stores, the way
// the server entry point does.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	kv := storage.NewMemoryKV()
	sessions, err := session.New(kv, 0, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("init session store: %v", err)
	}
	cat, err := catalog.New(kv, 0)
	if err != nil {
		t.Fatalf("init catalog store: %v", err)
	}
	gate := view.NewGate(sessions)
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 5, BcryptCost: bcrypt.MinCost}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, sessions, gate), cfg.JWTSecret)
	router.RegisterPublic(e, &handler.PublicHandler{Catalog: cat}, passthrough)
	router.RegisterViewer(e, handler.NewViewerHandler(sessions, cat, gate), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(cat), cfg.JWTSecret)
	return e
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// login authenticates against the mock credentials and returns the token.
func login(t *testing.T, e *echo.Echo, email, password string, admin bool) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `","admin":`
	if admin {
		body += "true}"
	} else {
		body += "false}"
	}
	rec := doJSON(e, http.MethodPost, "/v1/auth/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Access.Token == "" {
		t.Fatalf("login response carries no token")
	}
	return resp.Access.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestServer(t)
	cases := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"user@example.com","password":"wrong","admin":false}`},
		{"role mismatch", `{"email":"user@example.com","password":"user123","admin":true}`},
		{"unknown account", `{"email":"ghost@example.com","password":"user123","admin":false}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/v1/auth/login", "", tc.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "invalid credentials") {
				t.Errorf("expected invalid credentials message, got %s", rec.Body.String())
			}
		})
	}
}

func TestLoginReturnsSeededPurchases(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/v1/auth/login", "",
		`{"email":"user@example.com","password":"user123","admin":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			Role      string   `json:"role"`
			Purchased []string `json:"purchased"`
		} `json:"user"`
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Role != "USER" {
		t.Errorf("role = %q, want USER", resp.User.Role)
	}
	if len(resp.User.Purchased) != 1 || resp.User.Purchased[0] != "1" {
		t.Errorf("purchased = %v, want [1]", resp.User.Purchased)
	}
	if resp.Redirect != "/" {
		t.Errorf("redirect = %q, want /", resp.Redirect)
	}
}

func TestPublicListingIsSanitized(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/v1/videos", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Live Concert: Summer Beats") {
		t.Errorf("expected seeded catalog in listing")
	}
	if strings.Contains(body, "youtube_id") || strings.Contains(body, "dQw4w9WgXcQ") {
		t.Errorf("public listing must not expose the player reference")
	}
	if strings.Contains(body, "revenue") {
		t.Errorf("public listing must not expose aggregates")
	}
}

func TestVideoDetailGatedByLogin(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/videos/1", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("guest detail access: expected 401, got %d", rec.Code)
	}
	var resp struct {
		Redirect string `json:"redirect"`
		From     string `json:"from"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Redirect != "/login" || resp.From != "/videos/1" {
		t.Errorf("redirect=%q from=%q, want /login and /videos/1", resp.Redirect, resp.From)
	}

	// After login the resume destination from the failed navigation is
	// handed back to the client.
	rec = doJSON(e, http.MethodPost, "/v1/auth/login", "",
		`{"email":"user@example.com","password":"user123","admin":false}`)
	var loginResp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loginResp.Redirect != "/videos/1" {
		t.Errorf("login redirect = %q, want /videos/1", loginResp.Redirect)
	}

	// Video 1 is the seeded purchase, so the detail is now watchable.
	rec = doJSON(e, http.MethodGet, "/v1/videos/1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after login, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "youtube.com/embed/dQw4w9WgXcQ") {
		t.Errorf("expected embed url in detail response")
	}
}

func TestVideoDetailRequiresPurchase(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e, "user@example.com", "user123", false)

	rec := doJSON(e, http.MethodGet, "/v1/videos/2", "", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unpurchased detail: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/v1/videos/2/purchase", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/videos/2", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("post-purchase detail: expected 200, got %d", rec.Code)
	}

	// Admins watch everything without purchasing.
	login(t, e, "admin@example.com", "admin123", true)
	rec = doJSON(e, http.MethodGet, "/v1/videos/3", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin detail: expected 200, got %d", rec.Code)
	}
}

func TestPurchaseRequiresToken(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/v1/videos/2/purchase", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	token := login(t, e, "user@example.com", "user123", false)
	rec = doJSON(e, http.MethodPost, "/v1/videos/no-such/purchase", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown video, got %d", rec.Code)
	}
}

func TestCommentEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/videos/1/comments", "", `{"text":"hi"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("guest comment: expected 401, got %d", rec.Code)
	}

	token := login(t, e, "user@example.com", "user123", false)

	rec = doJSON(e, http.MethodPost, "/v1/videos/1/comments", token, `{"text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank comment: expected 400, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/v1/videos/1/comments", token, `{"text":"great show"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/v1/videos/1/comments", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list comments: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "great show") {
		t.Errorf("expected comment in thread")
	}
	if !strings.Contains(rec.Body.String(), "user@example.com") {
		t.Errorf("expected author from session email")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	e := newTestServer(t)
	for _, path := range []string{"/v1/nope", "/v1/videos/1/nope", "/nope"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestAdminRoutesGatedByRole(t *testing.T) {
	e := newTestServer(t)
	userToken := login(t, e, "user@example.com", "user123", false)

	rec := doJSON(e, http.MethodPost, "/v1/videos", userToken, `{"title":"Nope"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin create: expected 403, got %d", rec.Code)
	}
	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Redirect != "/" {
		t.Errorf("non-admin redirect = %q, want /", resp.Redirect)
	}

	rec = doJSON(e, http.MethodGet, "/v1/admin/stats", userToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin stats: expected 403, got %d", rec.Code)
	}
}

func TestAdminCatalogManagement(t *testing.T) {
	e := newTestServer(t)
	token := login(t, e, "admin@example.com", "admin123", true)

	rec := doJSON(e, http.MethodPost, "/v1/videos", token,
		`{"title":"Jazz Night","youtube_ref":"https://youtu.be/dQw4w9WgXcQ","price":3.5,"status":"upcoming"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID        string `json:"id"`
		YouTubeID string `json:"youtube_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(created.ID, "video-") {
		t.Errorf("created id = %q, want video-<ms>", created.ID)
	}
	if created.YouTubeID != "dQw4w9WgXcQ" {
		t.Errorf("youtube_id = %q, want extracted id", created.YouTubeID)
	}

	rec = doJSON(e, http.MethodPatch, "/v1/videos/"+created.ID, token, `{"title":"Jazz Night II"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPut, "/v1/videos/no-such-id", token, `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", rec.Code)
	}

	// Deleting an unknown ID is the store's documented no-op.
	rec = doJSON(e, http.MethodDelete, "/v1/videos/no-such-id", token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete missing: expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/v1/videos/"+created.ID, token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/admin/stats", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "total_videos") {
		t.Errorf("expected totals in stats response")
	}
}
